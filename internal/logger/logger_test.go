package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/harrison/treedump/internal/aggregate"
)

// TestMultiLogger sends each call to every logger
func TestMultiLogger(t *testing.T) {
	var first, second bytes.Buffer
	m := NewMultiLogger(NewConsoleLogger(&first, "trace"), nil, NewConsoleLogger(&second, "warn"))

	if len(m) != 2 {
		t.Fatalf("expected nil logger to be dropped, got %d loggers", len(m))
	}

	m.LogTrace("t")
	m.LogDebug("d")
	m.LogInfo("i")
	m.LogWarn("w")
	m.LogError("e")
	m.LogRunStart("/root", "/root/output.txt")
	m.LogSummary(&aggregate.Summary{RunID: "id", Included: 1}, time.Millisecond)

	if got := strings.Count(first.String(), "\n"); got != 7 {
		t.Errorf("trace logger got %d lines, want 7:\n%s", got, first.String())
	}
	if got := strings.Count(second.String(), "\n"); got != 2 {
		t.Errorf("warn logger got %d lines, want 2:\n%s", got, second.String())
	}
}
