// Package display provides user-facing terminal messages for treedump.
//
// The dump itself is a plain file; this package only covers what the CLI
// prints around it.
//
// # Warning Messages
//
// Display warnings with optional components:
//
//	warning := display.Warning{
//	    Title:      "2 files could not be read",
//	    Files:      []string{"src/broken.c", "src/secret.txt"},
//	    Suggestion: "Check permissions and encoding",
//	}
//	warning.Display(os.Stderr)
//
// Or use the factories for the two non-fatal outcomes of a run:
//
//	if len(summary.Failed) > 0 {
//	    display.WarnUnreadableFiles(summary.Failed).Display(os.Stderr)
//	}
//	if len(summary.WalkErrors) > 0 {
//	    display.WarnSkippedDirectories(summary.WalkErrors).Display(os.Stderr)
//	}
//
// Output is colored yellow through fatih/color, which strips the escape codes
// when the process is not attached to a terminal.
package display
