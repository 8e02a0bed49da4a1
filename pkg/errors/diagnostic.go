package errors

import "fmt"

// Severity grades a diagnostic.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic is a non-fatal problem found while building a document.
// EventID is empty for page-level problems; Page is -1 when the problem
// is not tied to a page.
type Diagnostic struct {
	Code     Code     `json:"code"`
	Severity Severity `json:"severity"`
	EventID  string   `json:"event_id,omitempty"`
	Page     int      `json:"page"`
	Message  string   `json:"message"`
}

// String formats the diagnostic for logs.
func (d Diagnostic) String() string {
	if d.EventID != "" {
		return fmt.Sprintf("%s %s [%s]: %s", d.Severity, d.Code, d.EventID, d.Message)
	}
	return fmt.Sprintf("%s %s: %s", d.Severity, d.Code, d.Message)
}

// Diagnose converts an error into a diagnostic. Errors without a code
// become INTERNAL_ERROR diagnostics.
func Diagnose(err error, sev Severity, eventID string, page int) Diagnostic {
	code := GetCode(err)
	if code == "" {
		code = ErrCodeInternal
	}
	return Diagnostic{
		Code:     code,
		Severity: sev,
		EventID:  eventID,
		Page:     page,
		Message:  UserMessage(err),
	}
}

// CountCode returns how many diagnostics carry code.
func CountCode(diags []Diagnostic, code Code) int {
	n := 0
	for _, d := range diags {
		if d.Code == code {
			n++
		}
	}
	return n
}
