package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/treedump/internal/aggregate"
	"github.com/harrison/treedump/internal/config"
	"github.com/harrison/treedump/internal/filelock"
)

// addConfigFlags registers the flags shared by every command.
func addConfigFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default: "+config.DefaultConfigFile+")")
	flags.String("root", "", "Directory to walk (default: directory of the executable)")
	flags.String("base", "", "Directory that marker paths are relative to (default: parent of root)")
	flags.String("output", "", "Output file (default: <root>/"+config.DefaultOutputName+")")
	flags.String("self-name", "", "File name to leave out of the dump (default: executable name)")
	flags.String("log-level", "", "Log verbosity: trace, debug, info, warn, error")
	flags.String("log-dir", "", "Directory for per-run log files (default: none)")
}

// loadConfig resolves defaults, config file and flags into one validated
// configuration with absolute paths.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		if _, statErr := os.Stat(configPath); statErr != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, statErr)
		}
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfig(config.DefaultConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cfg.MergeWithFlags(
		changedString(cmd, "root"),
		changedString(cmd, "base"),
		changedString(cmd, "output"),
		changedString(cmd, "self-name"),
		changedString(cmd, "log-level"),
		changedString(cmd, "log-dir"),
	)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// changedString returns a pointer to the flag value only when the user set it.
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, _ := cmd.Flags().GetString(name)
	return &value
}

// newAggregator builds the Aggregator for cfg. The output file and its lock
// are always excluded so a dump never contains a previous dump.
func newAggregator(cfg *config.Config, log aggregate.Logger) *aggregate.Aggregator {
	return aggregate.New(cfg.Root, cfg.Base, aggregate.Options{
		SelfName:     cfg.SelfName,
		ExcludePaths: []string{cfg.Output, filelock.LockPath(cfg.Output)},
		Logger:       log,
	})
}
