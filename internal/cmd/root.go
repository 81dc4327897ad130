package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for treedump.
// Running it without a subcommand is the same as "treedump run".
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "treedump",
		Short: "Dump a source tree into a single text file",
		Long: `treedump walks a directory, keeps the files whose extension is in a fixed
allow-list (.txt .dart .c .py .java .js .cpp .h .cs .rb .go .ts .yaml .xml),
and concatenates them into one output file. Every file is introduced by a
"------<relative path>" marker line and followed by a divider of 80 '='.

Without flags the directory holding the treedump executable is dumped into
<that directory>/output.txt, with paths relative to its parent.

Configuration is loaded from .treedump.yaml if present.
CLI flags override configuration file settings.`,
		Version: Version,
		Args:    cobra.NoArgs,
		RunE:    runCommand,
		// main prints the error once
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addConfigFlags(cmd)

	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewCheckCommand())

	return cmd
}
