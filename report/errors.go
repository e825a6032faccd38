package report

import (
	"fmt"
	"os"
)

// TextSpan represents a range or "span" of source text.  Text spans are
// inclusive on both sides and zero-indexed.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// -----------------------------------------------------------------------------

// CompileMessage is an error or warning about the user's program.
type CompileMessage struct {
	// The path to the file (or manifest) the message concerns.
	Path string

	// The span the message refers to: may be nil.
	Span *TextSpan

	Message string
	IsError bool
}

// InternalError is an internal compiler error: a violation of the ordering
// between compilation passes.  It is raised as a panic by ReportICE and caught
// at the driver boundary by CatchErrors.
type InternalError struct {
	Message string
}

func (ie *InternalError) Error() string {
	return "internal compiler error: " + ie.Message
}

// -----------------------------------------------------------------------------

// ReportICE reports an internal compiler error.  These are errors that
// specifically result from a bug in the compiler: looking up an id that was
// never registered, reading an unfolded constant, reading a frame offset
// before frame layout, etc.  Compilation must never continue past one, so
// this function never returns.
func ReportICE(message string, args ...interface{}) {
	panic(&InternalError{Message: fmt.Sprintf(message, args...)})
}

// ReportFatal reports a fatal error.  These are expected errors that result
// from invalid configuration of some form: a missing manifest, a bad profile,
// etc.  They stop compilation immediately.
func ReportFatal(message string, args ...interface{}) {
	if rep.logLevel > LogLevelSilent {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayEndPhase(false)
		displayFatal(fmt.Sprintf(message, args...))
	}

	os.Exit(1)
}

// ReportCompileError reports a compilation error: ie. erroneous input code.
// The span may be nil in which case no position information is printed.
func ReportCompileError(path string, span *TextSpan, message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayEndPhase(false)

		(&CompileMessage{
			Path:    path,
			Span:    span,
			Message: fmt.Sprintf(message, args...),
			IsError: true,
		}).display()
	}
}

// ReportCompileWarning reports a compilation warning.  Warnings are displayed
// at the end of compilation.
func ReportCompileWarning(path string, span *TextSpan, message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.warnings = append(rep.warnings, &CompileMessage{
		Path:    path,
		Span:    span,
		Message: fmt.Sprintf(message, args...),
	})
}

// ReportStdError reports a non-fatal, standard Go error.
func ReportStdError(tag string, err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayEndPhase(false)
		PrintErrorMessage(tag, err)
	}
}

// -----------------------------------------------------------------------------

// ShouldProceed indicates whether or not there have been any errors that
// should cause compilation to stop at the current phase.
func ShouldProceed() bool {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount == 0
}

// ErrorCount returns the number of errors reported so far.
func ErrorCount() int {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount
}

// CatchErrors catches any errors thrown by a `panic` during compilation.  An
// internal compiler error is displayed regardless of log level and the
// program exits.  Other Go errors are reported as standard errors.
// NB: This function must ALWAYS be deferred.
func CatchErrors() {
	if x := recover(); x != nil {
		if ice, ok := x.(*InternalError); ok {
			rep.m.Lock()
			displayEndPhase(false)
			displayICE(ice.Message)
			rep.m.Unlock()

			os.Exit(-1)
		} else if serr, ok := x.(error); ok {
			ReportStdError("Error", serr)
		} else {
			ReportFatal("%v", x)
		}
	}
}
