package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScanner()
	c.normalizeSanitizer()
	c.normalizeReport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.ReportDir, err = expandPath(c.Paths.ReportDir); err != nil {
		return fmt.Errorf("paths.report_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeScanner() {
	if c.Scanner.LargeNumberThreshold <= 0 {
		c.Scanner.LargeNumberThreshold = defaultLargeNumberThreshold
	}
	if c.Scanner.MaxMatchesPerDetector <= 0 {
		c.Scanner.MaxMatchesPerDetector = defaultMaxMatchesPerDetector
	}
	for i := range c.Scanner.Detectors {
		c.Scanner.Detectors[i].Name = strings.TrimSpace(c.Scanner.Detectors[i].Name)
		c.Scanner.Detectors[i].Risk = strings.ToLower(strings.TrimSpace(c.Scanner.Detectors[i].Risk))
	}
}

func (c *Config) normalizeSanitizer() {
	c.Sanitizer.SkipFiles = trimAndLower(c.Sanitizer.SkipFiles)
	c.Sanitizer.SkipPathSubstrings = trimAndLower(c.Sanitizer.SkipPathSubstrings)
	c.Sanitizer.RemoveFields = trimNonEmpty(c.Sanitizer.RemoveFields)
}

func (c *Config) normalizeReport() {
	if c.Report.TopArtists <= 0 {
		c.Report.TopArtists = defaultTopArtists
	}
	if c.Report.TopTracks <= 0 {
		c.Report.TopTracks = defaultTopTracks
	}
	if c.Report.TopPlaylists <= 0 {
		c.Report.TopPlaylists = defaultTopPlaylists
	}
	if c.Report.DescriptionLimit <= 0 {
		c.Report.DescriptionLimit = defaultDescriptionLimit
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func trimAndLower(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
