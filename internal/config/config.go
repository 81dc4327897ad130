package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file looked up in the working directory
// when no --config flag is given.
const DefaultConfigFile = ".treedump.yaml"

// DefaultOutputName is the output file name placed in the root directory.
const DefaultOutputName = "output.txt"

// Config represents treedump run options
type Config struct {
	// Root is the directory to walk
	Root string `yaml:"root"`

	// Base is the directory that marker paths are relative to
	Base string `yaml:"base"`

	// Output is the path of the dump file
	Output string `yaml:"output"`

	// SelfName is a file name that is never aggregated
	SelfName string `yaml:"self_name"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir, when set, receives a run-<timestamp>.log file per run
	LogDir string `yaml:"log_dir"`
}

// DefaultConfig returns the configuration derived from the location of the
// running executable: root is the directory holding it, base is that
// directory's parent, the dump goes to root/output.txt, and the executable's
// own file name is excluded.
// If the executable cannot be located, the current working directory stands in
// for its directory.
func DefaultConfig() *Config {
	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return DefaultConfigFor(exe)
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return DefaultConfigFor(filepath.Join(cwd, "treedump"))
}

// DefaultConfigFor returns the defaults for an entry point at the given path.
func DefaultConfigFor(entryPoint string) *Config {
	root := filepath.Dir(entryPoint)
	return &Config{
		Root:     root,
		Base:     filepath.Dir(root),
		Output:   filepath.Join(root, DefaultOutputName),
		SelfName: filepath.Base(entryPoint),
		LogLevel: "info",
	}
}

// LoadConfig loads configuration from the specified file path on top of DefaultConfig.
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	return LoadConfigWithDefaults(path, DefaultConfig())
}

// LoadConfigWithDefaults loads configuration from path, merging non-empty
// values over defaults. Relative paths in the file are resolved against the
// directory containing the file.
func LoadConfigWithDefaults(path string, defaults *Config) (*Config, error) {
	cfg := *defaults

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	dir := filepath.Dir(path)
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}

	if fileCfg.Root != "" {
		cfg.Root = resolve(fileCfg.Root)
	}
	if fileCfg.Base != "" {
		cfg.Base = resolve(fileCfg.Base)
	}
	if fileCfg.Output != "" {
		cfg.Output = resolve(fileCfg.Output)
	}
	if fileCfg.SelfName != "" {
		cfg.SelfName = fileCfg.SelfName
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.LogDir != "" {
		cfg.LogDir = resolve(fileCfg.LogDir)
	}

	return &cfg, nil
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
// This allows CLI flags to take precedence over config file settings
func (c *Config) MergeWithFlags(root, base, output, selfName, logLevel, logDir *string) {
	if root != nil {
		c.Root = *root
	}
	if base != nil {
		c.Base = *base
	}
	if output != nil {
		c.Output = *output
	}
	if selfName != nil {
		c.SelfName = *selfName
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return fmt.Errorf("root cannot be empty")
	}
	if strings.TrimSpace(c.Base) == "" {
		return fmt.Errorf("base cannot be empty")
	}
	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("output cannot be empty")
	}
	if strings.ContainsRune(c.SelfName, filepath.Separator) {
		return fmt.Errorf("self_name must be a file name, got %q", c.SelfName)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	return nil
}

// Resolve makes Root, Base and Output absolute, and LogDir too when set.
func (c *Config) Resolve() error {
	paths := []*string{&c.Root, &c.Base, &c.Output}
	if c.LogDir != "" {
		paths = append(paths, &c.LogDir)
	}
	for _, p := range paths {
		abs, err := filepath.Abs(*p)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", *p, err)
		}
		*p = abs
	}
	return nil
}
