package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/treedump/internal/aggregate"
	"github.com/harrison/treedump/internal/config"
	"github.com/harrison/treedump/internal/display"
	"github.com/harrison/treedump/internal/filelock"
	"github.com/harrison/treedump/internal/logger"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Write the dump file",
		Long: `Walk the root directory and write every matching file to the output file.

The output is replaced atomically: if the run fails, a previous output file is
left as it was. Files that cannot be read are still listed, with an
"[Error reading file: ...]" placeholder instead of their content.

Examples:
  # Dump the directory holding the executable
  treedump run

  # Dump ./src with paths relative to the current directory
  treedump run --root ./src --base . --output dump.txt

  # Show every included file
  treedump run --log-level debug`,
		Args: cobra.NoArgs,
		RunE: runCommand,
	}
}

// runCommand implements the run command logic
func runCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := newRunLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	summary, err := aggregateToFile(cfg, log)
	if err != nil {
		return err
	}

	if len(summary.WalkErrors) > 0 {
		display.WarnSkippedDirectories(summary.WalkErrors).Display(cmd.ErrOrStderr())
	}
	if len(summary.Failed) > 0 {
		display.WarnUnreadableFiles(summary.Failed).Display(cmd.ErrOrStderr())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Finished writing contents to %s\n", cfg.Output)
	return nil
}

// aggregateToFile scans the tree, then streams it into the output file under
// the output lock. The root is scanned first so a bad root never creates an
// output directory or touches an existing dump.
func aggregateToFile(cfg *config.Config, log logger.Logger) (*aggregate.Summary, error) {
	start := time.Now()
	agg := newAggregator(cfg, log)

	plan, err := agg.Scan()
	if err != nil {
		return nil, err
	}

	out, err := filelock.Create(cfg.Output)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	log.LogRunStart(cfg.Root, cfg.Output)
	summary, err := agg.Write(plan, out)
	if err != nil {
		return nil, err
	}

	if err := out.Commit(); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", cfg.Output, err)
	}

	log.LogSummary(summary, time.Since(start))
	return summary, nil
}

// newRunLogger returns the console logger, joined by a FileLogger when a log
// directory is configured. The returned func closes the file log.
func newRunLogger(cmd *cobra.Command, cfg *config.Config) (logger.Logger, func(), error) {
	console := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if cfg.LogDir == "" {
		return console, func() {}, nil
	}

	fileLog, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	console.LogDebug(fmt.Sprintf("run log: %s", fileLog.Path()))
	return logger.NewMultiLogger(console, fileLog), func() { fileLog.Close() }, nil
}
