package config

import (
	"cleanup/internal/errors"
)

// DefaultSource is the pattern-source file read when --source is not given.
const DefaultSource = "cleanup_masks.txt"

// Options is the parsed command line. It is built once by the root command
// and passed by value afterwards.
type Options struct {
	Source  string // Pattern-source file, one glob mask per line
	Blank   bool   // Dry run: list matches, remove nothing
	Verbose bool   // Report each path after it is removed
	Debug   bool   // Write debug diagnostics to stderr
}

// Default returns the options used when no flags are given.
func Default() Options {
	return Options{Source: DefaultSource}
}

// Validate checks the rules the flag parser cannot express on its own.
func (o Options) Validate() error {
	if o.Source == "" {
		return errors.NewConfigError("pattern source must not be empty", "source", errors.InvalidConfig, nil)
	}
	if o.Blank && o.Verbose {
		return errors.NewConfigError("flags cannot be combined", "blank/verbose", errors.InvalidConfig, nil)
	}
	return nil
}
