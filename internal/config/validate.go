package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateScanner(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.OutputDir == c.Paths.DataDir {
		return errors.New("paths.output_dir must differ from paths.data_dir")
	}
	return nil
}

func (c *Config) validateScanner() error {
	for i, rule := range c.Scanner.Detectors {
		if rule.Name == "" {
			return fmt.Errorf("scanner.detectors[%d].name must be set", i)
		}
		if _, err := regexp.Compile(rule.Pattern); err != nil {
			return fmt.Errorf("scanner.detectors[%d].pattern: %w", i, err)
		}
		switch rule.Risk {
		case "", "high", "medium", "low":
		default:
			return fmt.Errorf("scanner.detectors[%d].risk must be high, medium, or low", i)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
