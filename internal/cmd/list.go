package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/treedump/internal/display"
	"github.com/harrison/treedump/internal/logger"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the files a run would include",
		Long: `Print the marker path of every file that "treedump run" would write, one per
line and in the same order. No file content is read and no output file is written.`,
		Args: cobra.NoArgs,
		RunE: listCommand,
	}
}

func listCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	plan, err := newAggregator(cfg, log).Scan()
	if err != nil {
		return err
	}

	for _, entry := range plan.Entries {
		fmt.Fprintln(cmd.OutOrStdout(), entry.RelPath)
	}

	if len(plan.WalkErrors) > 0 {
		display.WarnSkippedDirectories(plan.WalkErrors).Display(cmd.ErrOrStderr())
	}
	log.LogDebug(fmt.Sprintf("%d files selected under %s", len(plan.Entries), cfg.Root))
	return nil
}
