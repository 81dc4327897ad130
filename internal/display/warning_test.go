package display

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
)

// plainOutput disables colors for the duration of a test.
func plainOutput(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestDisplayWarning_TitleOnly(t *testing.T) {
	plainOutput(t)

	var buf bytes.Buffer
	Warning{Title: "Configuration Missing"}.Display(&buf)

	if got := buf.String(); got != "Warning: Configuration Missing\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestDisplayWarning_Colored(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	var buf bytes.Buffer
	Warning{Title: "Colored"}.Display(&buf)

	output := buf.String()
	if !strings.Contains(output, "\x1b[33m") {
		t.Error("Expected yellow ANSI color code in output")
	}
	if !strings.Contains(output, "\x1b[0m") {
		t.Error("Expected ANSI reset code in output")
	}
}

func TestDisplayWarning_AllSections(t *testing.T) {
	plainOutput(t)

	var buf bytes.Buffer
	Warning{
		Title:      "Something happened",
		Message:    "Details here",
		Files:      []string{"a.go", "b/c.py"},
		Suggestion: "Fix it",
	}.Display(&buf)

	want := "Warning: Something happened\n" +
		"    Details here\n" +
		"    Affected files:\n" +
		"      1. a.go\n" +
		"      2. b/c.py\n" +
		"    Suggestion:\n" +
		"    Fix it\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestDisplayWarning_SingleFile(t *testing.T) {
	plainOutput(t)

	var buf bytes.Buffer
	Warning{Title: "One", Files: []string{"only.c"}}.Display(&buf)

	output := buf.String()
	if !strings.Contains(output, "Affected file:\n") {
		t.Error("Expected singular 'Affected file:'")
	}
	if strings.Contains(output, "Affected files:") {
		t.Error("Did not expect plural form for a single file")
	}
}

func TestWarnUnreadableFiles(t *testing.T) {
	tests := []struct {
		name      string
		files     []string
		wantTitle string
	}{
		{name: "single", files: []string{"broken.c"}, wantTitle: "1 file could not be read"},
		{name: "multiple", files: []string{"a.c", "b.c"}, wantTitle: "2 files could not be read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := WarnUnreadableFiles(tt.files)
			if w.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", w.Title, tt.wantTitle)
			}
			if len(w.Files) != len(tt.files) {
				t.Errorf("Files = %v, want %v", w.Files, tt.files)
			}
			if !strings.Contains(w.Message, "[Error reading file: ...]") {
				t.Errorf("Message should mention the placeholder, got %q", w.Message)
			}
		})
	}
}

func TestWarnSkippedDirectories(t *testing.T) {
	w := WarnSkippedDirectories([]error{errors.New("error accessing /x/locked: permission denied")})

	if len(w.Files) != 1 || !strings.Contains(w.Files[0], "/x/locked") {
		t.Errorf("Files = %v", w.Files)
	}
	if w.Title == "" {
		t.Error("Title should not be empty")
	}
}
