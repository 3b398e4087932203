package diagnostics

import "fmt"

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

// Codes sent to control surfaces.
const (
	BadMessage        = "MSG.BAD_JSON"
	UnknownCommand    = "CMD.UNKNOWN"
	ControlDisabled   = "CMD.DISABLED"
	UnknownVisualizer = "VIZ.UNKNOWN"
	EmptySequence     = "VIZ.EMPTY"
	StepOutOfRange    = "VIZ.STEP_RANGE"
)

type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

func (d Diagnostic) Error() string {
	if d.Detail == "" {
		return fmt.Sprintf("%s: %s", d.Code, d.Summary)
	}
	return fmt.Sprintf("%s: %s (%s)", d.Code, d.Summary, d.Detail)
}

func Warning(code, summary string, evidence map[string]any) Diagnostic {
	return Diagnostic{Severity: Warn, Code: code, Summary: summary, Evidence: evidence}
}

func Note(code, summary string) Diagnostic {
	return Diagnostic{Severity: Info, Code: code, Summary: summary}
}
