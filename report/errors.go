package report

import (
	"fmt"
	"os"
)

// LocalCompileError is a compilation error that occurs in a context in which
// the file is known by the error handler and thus doesn't need to be passed
// along with the error.
type LocalCompileError struct {
	// The error message.
	Message string

	// The span over which the error occurs.
	Span *TextSpan
}

func (lce *LocalCompileError) Error() string {
	return lce.Message
}

// Raise creates a new local compile error.
func Raise(span *TextSpan, msg string, args ...interface{}) *LocalCompileError {
	return &LocalCompileError{Message: fmt.Sprintf(msg, args...), Span: span}
}

// -----------------------------------------------------------------------------

// InternalError is the value thrown by ReportICE.  It indicates a bug in the
// compiler itself: never erroneous user input.
type InternalError struct {
	Message string
}

func (ie *InternalError) Error() string {
	return "internal compiler error: " + ie.Message
}

// ReportICE reports an internal compiler error.  These are errors that
// specifically result from a bug or unexpected condition occurring within the
// compiler: they are not intended to ever happen.  The error is thrown as a
// panic so that no further compilation takes place; the driver is expected to
// defer CatchICE to display it and terminate the process.
func ReportICE(message string, args ...interface{}) {
	panic(&InternalError{Message: fmt.Sprintf(message, args...)})
}

// CatchICE catches an internal compiler error thrown by ReportICE, displays it,
// and exits the process.  Any other panic is propagated unchanged.
// NB: This function must ALWAYS be deferred.
func CatchICE() {
	if x := recover(); x != nil {
		if ice, ok := x.(*InternalError); ok {
			displayICE(ice.Message)
			os.Exit(-1)
		}

		panic(x)
	}
}
