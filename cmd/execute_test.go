package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zscript/common"
	"zscript/report"
	"zscript/unit"
)

const staleManifest = `
[unit]
name = "stale"
zscript-version = "9.9.9"

[build]
loglevel = "warn"

[[globals]]
name = "counter"
type = "float"
init = 1
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), common.DefaultUnitFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	return path
}

// captureStdout returns everything written to os.Stdout while f runs.
func captureStdout(t *testing.T, f func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	stdout := os.Stdout
	os.Stdout = w

	done := make(chan string)
	go func() {
		out, _ := io.ReadAll(r)
		done <- string(out)
	}()

	f()

	os.Stdout = stdout
	w.Close()
	return <-done
}

func TestCompileUnit_ShowsLoadWarnings(t *testing.T) {
	defer report.InitReporter(report.LogLevelSilent)

	path := writeManifest(t, staleManifest)

	beginUnit("")
	u, err := unit.LoadUnit(path)
	if err != nil {
		t.Fatal(err)
	}

	if report.WarningCount() != 1 {
		t.Fatalf("WarningCount() = %d, want 1", report.WarningCount())
	}

	var ok bool
	out := captureStdout(t, func() {
		_, _, ok = compileUnit(u, "", false)
	})

	if !ok {
		t.Fatal("compileUnit failed")
	}

	if !strings.Contains(out, "does not match") {
		t.Errorf("version warning missing from output %q", out)
	}

	if report.WarningCount() != 1 {
		t.Errorf("WarningCount() after compile = %d, want 1", report.WarningCount())
	}
}

func TestApplyLogLevel(t *testing.T) {
	defer report.InitReporter(report.LogLevelSilent)

	u := &unit.Unit{Profile: &unit.BuildProfile{LogLevel: report.LogLevelWarn}}

	tests := []struct {
		arg  string
		want int
	}{
		{"", report.LogLevelWarn},
		{"verbose", report.LogLevelVerbose},
		{"silent", report.LogLevelSilent},
		{"error", report.LogLevelError},
	}

	for _, tt := range tests {
		report.InitReporter(report.LogLevelSilent)
		report.ReportCompileWarning("a.toml", nil, "queued")

		applyLogLevel(u, tt.arg)

		if got := report.LogLevel(); got != tt.want {
			t.Errorf("applyLogLevel(%q): LogLevel() = %d, want %d", tt.arg, got, tt.want)
		}

		if report.WarningCount() != 1 {
			t.Errorf("applyLogLevel(%q) dropped queued warnings", tt.arg)
		}
	}
}
