package report

import (
	"fmt"
	"sync"
)

// DiagKind classifies a diagnostic by the compilation stage that detected it.
type DiagKind int

// Enumeration of diagnostic kinds.
const (
	DiagLexical DiagKind = iota
	DiagSyntax
	DiagSemantic
)

func (dk DiagKind) String() string {
	switch dk {
	case DiagLexical:
		return "Lexical"
	case DiagSyntax:
		return "Syntax"
	default:
		return "Semantic"
	}
}

// Diagnostic is a single error or warning about the user's source text.
type Diagnostic struct {
	// The kind of the diagnostic.
	Kind DiagKind

	// The message describing the problem.
	Message string

	// The span of the offending source text.  This may be nil.
	Span *TextSpan

	// Whether this diagnostic is an error (as opposed to a warning).
	IsError bool
}

func (d *Diagnostic) Error() string {
	if d.Span == nil {
		return fmt.Sprintf("%s error: %s", d.Kind, d.Message)
	}

	return fmt.Sprintf("%s: %s error: %s", d.Span.Pos, d.Kind, d.Message)
}

// -----------------------------------------------------------------------------

// Reporter is responsible for collecting the errors and warnings produced over
// the course of compilation.  Diagnostics are stored in the order they are
// reported and are never removed.  The reporter is synchronized: its methods
// can be safely called from multiple goroutines.
type Reporter struct {
	// The mutex used to synchonize different report method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// The errors reported so far, in report order.
	errors []*Diagnostic

	// The warnings reported so far, in report order.
	warnings []*Diagnostic
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// ParseLogLevel converts the name of a log level into its enumerated value.
// Unknown names select the verbose log level.
func ParseLogLevel(name string) int {
	switch name {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarn
	default:
		return LogLevelVerbose
	}
}

// NewReporter creates a new reporter with the given log level.
func NewReporter(logLevel int) *Reporter {
	return &Reporter{
		m:        &sync.Mutex{},
		logLevel: logLevel,
	}
}

// LogLevel returns the reporter's log level.
func (r *Reporter) LogLevel() int {
	return r.logLevel
}

// Report records a compilation error of the given kind.
func (r *Reporter) Report(kind DiagKind, span *TextSpan, msg string, args ...interface{}) {
	r.m.Lock()
	defer r.m.Unlock()

	r.errors = append(r.errors, &Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf(msg, args...),
		Span:    span,
		IsError: true,
	})
}

// ReportWarning records a compilation warning of the given kind.
func (r *Reporter) ReportWarning(kind DiagKind, span *TextSpan, msg string, args ...interface{}) {
	r.m.Lock()
	defer r.m.Unlock()

	r.warnings = append(r.warnings, &Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf(msg, args...),
		Span:    span,
	})
}

// Diagnostics returns the errors reported so far in report order.
func (r *Reporter) Diagnostics() []*Diagnostic {
	r.m.Lock()
	defer r.m.Unlock()

	diags := make([]*Diagnostic, len(r.errors))
	copy(diags, r.errors)
	return diags
}

// Warnings returns the warnings reported so far in report order.
func (r *Reporter) Warnings() []*Diagnostic {
	r.m.Lock()
	defer r.m.Unlock()

	warnings := make([]*Diagnostic, len(r.warnings))
	copy(warnings, r.warnings)
	return warnings
}

// ErrorCount returns the number of errors reported.
func (r *Reporter) ErrorCount() int {
	r.m.Lock()
	defer r.m.Unlock()

	return len(r.errors)
}

// AnyErrors returns whether or not any errors were reported.
func (r *Reporter) AnyErrors() bool {
	return r.ErrorCount() > 0
}
