package domcmp

import "fmt"

// DiagLevel classifies a soft diagnostic raised during scope resolution or
// slot bookkeeping. Diagnostics never stop rendering - templates are
// hand-authored HTML and perfect uniqueness cannot be guaranteed.
type DiagLevel string

const (
	// DiagWarn marks conditions that were resolved deterministically
	// (duplicate names, auto-renames) but likely indicate an authoring bug.
	DiagWarn DiagLevel = "warn"

	// DiagInfo marks informational notes (e.g. an anonymous slot receiving
	// a synthesized name).
	DiagInfo DiagLevel = "info"
)

// Diagnostic is a non-fatal finding produced while walking a template scope
// or mounting into slots. Fatal conditions are errors, never diagnostics.
type Diagnostic struct {
	Level   DiagLevel
	Message string
	// Name is the ref or slot name the finding concerns, when applicable.
	Name string
}

func (d Diagnostic) String() string {
	if d.Name == "" {
		return fmt.Sprintf("[%s] %s", d.Level, d.Message)
	}
	return fmt.Sprintf("[%s] %s (name=%q)", d.Level, d.Message, d.Name)
}

func warnDiag(name, format string, args ...any) Diagnostic {
	return Diagnostic{Level: DiagWarn, Name: name, Message: fmt.Sprintf(format, args...)}
}

func infoDiag(name, format string, args ...any) Diagnostic {
	return Diagnostic{Level: DiagInfo, Name: name, Message: fmt.Sprintf(format, args...)}
}
