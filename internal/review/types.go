package review

// Severity represents the severity level of an issue.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// SeverityRank returns a numeric rank for sorting (higher = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Issue represents a single finding reported by an analyzer.
type Issue struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Code        string   `json:"code,omitempty"`
	Suggestion  string   `json:"suggestion,omitempty"`
}

// AnalysisResult is produced exactly once per analyzer key.
type AnalysisResult struct {
	Issues  []Issue `json:"issues"`
	Summary string  `json:"summary"`
	Passed  bool    `json:"passed"`
}

// Unit is the immutable input to one pipeline run.
type Unit struct {
	Code      string `json:"code"`
	Extension string `json:"file_extension"`
	Language  string `json:"language,omitempty"`
}

// Status tracks a pipeline run through the state machine. Every run ends in
// exactly one of the terminal states: errored or done.
type Status string

const (
	StatusIngesting    Status = "ingesting"
	StatusAnalyzing    Status = "analyzing"
	StatusSynthesizing Status = "synthesizing"
	StatusErrored      Status = "errored"
	StatusDone         Status = "done"
)

// State accumulates through a pipeline run. Results keys are exactly the
// enabled analyzer names; each analyzer writes only its own key.
type State struct {
	Unit     Unit                      `json:"unit"`
	Results  map[string]AnalysisResult `json:"analysis_results,omitempty"`
	Feedback string                    `json:"feedback,omitempty"`
	Error    string                    `json:"error,omitempty"`
	Status   Status                    `json:"status"`
}
