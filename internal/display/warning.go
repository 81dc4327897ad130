package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display writes the warning to out in yellow. fatih/color drops the color
// codes when stdout is not a terminal or NO_COLOR is set.
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected file:\n")
		} else {
			b.WriteString("Affected files:\n")
		}

		for i, file := range w.Files {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, file))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	color.New(color.FgYellow).Fprint(out, b.String())
}

// WarnUnreadableFiles creates a warning for entries written with an error
// placeholder instead of their content
func WarnUnreadableFiles(files []string) Warning {
	noun := "files"
	if len(files) == 1 {
		noun = "file"
	}
	return Warning{
		Title:      fmt.Sprintf("%d %s could not be read", len(files), noun),
		Message:    "Their entries contain an [Error reading file: ...] placeholder instead of content",
		Files:      files,
		Suggestion: "Check permissions and encoding (content must be UTF-8), then run again",
	}
}

// WarnSkippedDirectories creates a warning for parts of the tree that could
// not be listed
func WarnSkippedDirectories(errs []error) Warning {
	files := make([]string, 0, len(errs))
	for _, err := range errs {
		files = append(files, err.Error())
	}
	return Warning{
		Title:   "Some directories could not be listed",
		Message: "Files below them are missing from the output",
		Files:   files,
	}
}
