package report

import (
	"errors"
	"testing"
)

func TestLogLevelFromName(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"silent", LogLevelSilent},
		{"error", LogLevelError},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"verbose", LogLevelVerbose},
		{"", LogLevelVerbose},
		{"loud", LogLevelVerbose},
	}

	for _, tt := range tests {
		if got := LogLevelFromName(tt.name); got != tt.want {
			t.Errorf("LogLevelFromName(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestReporter_ErrorCount(t *testing.T) {
	InitReporter(LogLevelSilent)
	defer InitReporter(LogLevelSilent)

	if !ShouldProceed() {
		t.Fatal("fresh reporter should proceed")
	}

	ReportCompileWarning("a.toml", nil, "unused `%s`", "x")
	if !ShouldProceed() {
		t.Error("warnings should not stop compilation")
	}

	ReportCompileError("a.toml", &TextSpan{StartLine: 1}, "no function `%s`", "f")
	ReportStdError("Error", errors.New("disk full"))

	if ShouldProceed() || ErrorCount() != 2 {
		t.Errorf("ErrorCount() = %d, want 2", ErrorCount())
	}

	if LogLevel() != LogLevelSilent {
		t.Errorf("LogLevel() = %d", LogLevel())
	}
}

func TestReportICE(t *testing.T) {
	defer func() {
		ie, ok := recover().(*InternalError)
		if !ok {
			t.Fatal("ReportICE did not panic with an internal error")
		}

		if ie.Message != "function f3 was never linked" {
			t.Errorf("Message = %q", ie.Message)
		}

		if ie.Error() != "internal compiler error: function f3 was never linked" {
			t.Errorf("Error() = %q", ie.Error())
		}
	}()

	ReportICE("function f%d was never linked", 3)
}
