package report

import (
	"sync"
)

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user during compilation.  The reporter respects the set log
// level and is synchronized: its methods can be safely called from multiple
// goroutines (eg. during concurrent function emission).
type Reporter struct {
	// The mutex used to synchonize different report method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// The number of errors reported so far.
	errorCount int

	// The warnings to display at the end of compilation.
	warnings []*CompileMessage
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// rep is the global reporter instance.  It starts out silent so that library
// users (and tests) never print unless they ask for it.
var rep = newReporter(LogLevelSilent)

func newReporter(logLevel int) *Reporter {
	return &Reporter{
		m:        &sync.Mutex{},
		logLevel: logLevel,
	}
}

// InitReporter (re)initializes the global reporter to the given log level.
func InitReporter(logLevel int) {
	rep = newReporter(logLevel)
}

// SetLogLevel changes the log level of the global reporter.  Errors and
// warnings reported so far are kept.
func SetLogLevel(logLevel int) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.logLevel = logLevel
}

// WarningCount returns the number of warnings queued for display.
func WarningCount() int {
	rep.m.Lock()
	defer rep.m.Unlock()

	return len(rep.warnings)
}

// LogLevelFromName converts a log level name as it is given on the command
// line or in a build profile into a log level.  Invalid names default to
// verbose.
func LogLevelFromName(name string) int {
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

// LogLevel returns the log level of the global reporter.
func LogLevel() int {
	return rep.logLevel
}
