package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/harrison/treedump/internal/logger"
)

// ErrStale is returned by the check command when the output file does not
// match a fresh rendering of the tree.
var ErrStale = errors.New("output is out of date")

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that the output file matches the tree",
		Long: `Render the tree in memory and compare it byte for byte with the existing
output file. Prints the changed lines and exits non-zero when they differ.
The output file is never modified.`,
		Args: cobra.NoArgs,
		RunE: checkCommand,
	}
}

func checkCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	var fresh bytes.Buffer
	if _, err := newAggregator(cfg, log).Run(&fresh); err != nil {
		return err
	}

	existing, err := os.ReadFile(cfg.Output)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s does not exist", ErrStale, cfg.Output)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cfg.Output, err)
	}

	if bytes.Equal(existing, fresh.Bytes()) {
		fmt.Fprintf(cmd.OutOrStdout(), "Output is up to date: %s\n", cfg.Output)
		return nil
	}

	writeLineDiff(cmd.OutOrStdout(), string(existing), fresh.String())
	return fmt.Errorf("%w: %s", ErrStale, cfg.Output)
}

// writeLineDiff prints removed lines with "- " and added lines with "+ ".
// Unchanged runs are collapsed into a single count line.
func writeLineDiff(w io.Writer, before, after string) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)

	for _, d := range diffs {
		chunk := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			for _, line := range chunk {
				added.Fprintln(w, "+ "+line)
			}
		case diffmatchpatch.DiffDelete:
			for _, line := range chunk {
				removed.Fprintln(w, "- "+line)
			}
		case diffmatchpatch.DiffEqual:
			fmt.Fprintf(w, "  ... %d unchanged lines\n", len(chunk))
		}
	}
}

func splitLines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
