package report

// -----------------------------------------------------------------------------
// Below are all the "aesthetic" reporting functions that will only run if the
// log level is verbose.  These provide additional information about the
// compilation process to make the compiler more friendly.

// ReportCompileHeader reports the pre-compilation header: the compiler version,
// the unit being compiled and its build ID.
func ReportCompileHeader(unitName, buildID string) {
	if rep.logLevel == LogLevelVerbose {
		displayCompileHeader(unitName, buildID)
	}
}

// ReportBeginPhase reports the beginning of a compilation phase.
func ReportBeginPhase(phase string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelVerbose {
		displayBeginPhase(phase)
	}
}

// ReportEndPhase reports the end of the current compilation phase.  Whether the
// phase succeeded is determined from the reporter's error count.
func ReportEndPhase() {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelVerbose {
		displayEndPhase(rep.errorCount == 0)
	}
}

// ReportCompilationFinished reports the concluding message for compilation:
// all deferred warnings followed by the closing summary.
func ReportCompilationFinished() {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel >= LogLevelWarn {
		for _, warning := range rep.warnings {
			warning.display()
		}
	}

	if rep.logLevel == LogLevelVerbose {
		displayCompilationFinished(rep.errorCount == 0, rep.errorCount, len(rep.warnings))
	}
}
