package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harrison/treedump/internal/aggregate"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	return string(data)
}

// TestNewFileLogger verifies the directory, run file and latest.log symlink
func TestNewFileLogger(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "nested", "logs")

	fl, err := NewFileLogger(logDir, "info")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer fl.Close()

	if filepath.Dir(fl.Path()) != logDir {
		t.Errorf("run log %q not in %q", fl.Path(), logDir)
	}
	if !strings.HasPrefix(filepath.Base(fl.Path()), "run-") || filepath.Ext(fl.Path()) != ".log" {
		t.Errorf("unexpected run log name %q", filepath.Base(fl.Path()))
	}

	target, err := os.Readlink(filepath.Join(logDir, LatestLogName))
	if err != nil {
		t.Fatalf("latest.log symlink missing: %v", err)
	}
	if target != filepath.Base(fl.Path()) {
		t.Errorf("latest.log -> %q, want %q", target, filepath.Base(fl.Path()))
	}

	if got := readLog(t, fl.Path()); !strings.HasPrefix(got, "=== treedump run log ===\n") {
		t.Errorf("missing header, got %q", got)
	}
}

// TestNewFileLoggerReplacesLatest repoints an existing latest.log
func TestNewFileLoggerReplacesLatest(t *testing.T) {
	logDir := t.TempDir()
	if err := os.Symlink("old.log", filepath.Join(logDir, LatestLogName)); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	fl, err := NewFileLogger(logDir, "info")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer fl.Close()

	target, err := os.Readlink(filepath.Join(logDir, LatestLogName))
	if err != nil {
		t.Fatalf("Readlink() error = %v", err)
	}
	if target == "old.log" {
		t.Error("latest.log was not updated")
	}
}

// TestNewFileLoggerBadDir fails when the directory cannot be created
func TestNewFileLoggerBadDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := NewFileLogger(filepath.Join(blocker, "logs"), "info"); err == nil {
		t.Fatal("expected error when log dir is below a file")
	}
}

// TestFileLoggerLevels filters messages below the configured level
func TestFileLoggerLevels(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir(), "warn")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	fl.LogTrace("trace message")
	fl.LogDebug("debug message")
	fl.LogInfo("info message")
	fl.LogWarn("warn message")
	fl.LogError("error message")
	if err := fl.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	got := readLog(t, fl.Path())
	for _, hidden := range []string{"trace message", "debug message", "info message"} {
		if strings.Contains(got, hidden) {
			t.Errorf("log should not contain %q", hidden)
		}
	}
	if !strings.Contains(got, "] [WARN] warn message\n") {
		t.Errorf("missing warn line in %q", got)
	}
	if !strings.Contains(got, "] [ERROR] error message\n") {
		t.Errorf("missing error line in %q", got)
	}
}

// TestFileLoggerSummary lists unreadable files and skipped directories
func TestFileLoggerSummary(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir(), "info")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	fl.LogRunStart("/src", "/src/output.txt")
	fl.LogSummary(&aggregate.Summary{
		RunID:      "abc",
		Included:   3,
		Failed:     []string{"bad.c"},
		WalkErrors: []error{errors.New("open /src/locked: permission denied")},
	}, 1500*time.Millisecond)
	fl.LogSummary(nil, time.Second)
	fl.Close()

	got := readLog(t, fl.Path())
	wants := []string{
		"[INFO] Aggregating /src -> /src/output.txt\n",
		"[WARN] run abc: 3 files written, 1 unreadable (1.5s)\n",
		"[WARN]   unreadable: bad.c\n",
		"[WARN]   skipped: open /src/locked: permission denied\n",
	}
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("log missing %q\ngot:\n%s", want, got)
		}
	}
}

// TestFileLoggerClose is idempotent and drops later writes
func TestFileLoggerClose(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir(), "info")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	if err := fl.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := fl.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	fl.LogError("after close")
	if strings.Contains(readLog(t, fl.Path()), "after close") {
		t.Error("message written after Close")
	}
}
