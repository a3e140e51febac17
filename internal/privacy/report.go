package privacy

// DefaultReportFile is the scanner report's filename.
const DefaultReportFile = "privacy_analysis_report.json"

// RiskyFile records a file with at least one finding.
type RiskyFile struct {
	File   string   `json:"file"`
	Issues []string `json:"issues"`
}

// Report is the scanner's output document. SafeFiles and RiskyFiles are
// disjoint and together cover every analyzed file.
type Report struct {
	FilesAnalyzed      int                 `json:"files_analyzed"`
	SensitiveDataFound map[string][]string `json:"sensitive_data_found"`
	Recommendations    []string            `json:"recommendations"`
	SafeFiles          []string            `json:"safe_files"`
	RiskyFiles         []RiskyFile         `json:"risky_files"`
	Timestamp          string              `json:"timestamp"`
}

// Summary condenses the report for downstream consumers.
type Summary struct {
	FilesAnalyzed   int      `json:"files_analyzed"`
	SafeFiles       int      `json:"safe_files"`
	RiskyFiles      int      `json:"risky_files"`
	Recommendations []string `json:"recommendations"`
}

// Summarize reduces the report to headline counts.
func (r *Report) Summarize() Summary {
	return Summary{
		FilesAnalyzed:   r.FilesAnalyzed,
		SafeFiles:       len(r.SafeFiles),
		RiskyFiles:      len(r.RiskyFiles),
		Recommendations: r.Recommendations,
	}
}
