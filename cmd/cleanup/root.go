package main

import (
	"fmt"
	"io"

	"cleanup/internal/collect"
	"cleanup/internal/config"
	"cleanup/internal/errors"
	"cleanup/internal/log"
	"cleanup/internal/remove"
	"cleanup/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// newRootCmd creates the root command. Flags are bound straight into opts,
// which is only read after cobra has parsed them.
func newRootCmd(opts *config.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Compiled file cleanup script",
		Long: `Removes files matching the masks listed in SOURCE.

SOURCE holds one glob mask per line. Each mask is matched recursively
below the current directory: '*' stays within one path segment, a '**'
segment stands for any number of directories. Matches are sorted and
then removed one by one; a failure on one path is reported and the run
continues.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			level := logrus.InfoLevel
			if opts.Debug {
				level = logrus.DebugLevel
			}
			log.Configure(log.WithOutput(cmd.ErrOrStderr()), log.WithLevel(level))
			return opts.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := run(*opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.Source, "source", "s", opts.Source, "File listing the masks to clean up")
	cmd.Flags().BoolVarP(&opts.Blank, "blank", "b", false, "Print the selected files without removing them. Cannot be combined with -v")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Print each file after it is removed. Cannot be combined with -b")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "Write debug diagnostics to stderr")

	return cmd
}

// run collects the targets below the working directory and acts on them.
// Only a failure to read the pattern source or walk the tree is returned
// as an error; per-path removal failures are reported and swallowed.
func run(opts config.Options, stdout, stderr io.Writer) (types.Summary, error) {
	logger := log.LogWithFields(log.F("source", opts.Source), log.F("blank", opts.Blank))
	logger.Debug("Collecting targets")

	targets, err := collect.New(".").Collect(opts.Source)
	if err != nil {
		return types.Summary{}, err
	}
	logger.Debugf("Collected %d targets", len(targets))

	summary := remove.New(stdout, stderr, opts.Verbose).Run(targets, opts.Blank)
	log.LogWithFields(summaryFields(summary)...).Debug("Run finished")
	return summary, nil
}

// summaryFields breaks the failures of a pass down by cause.
func summaryFields(summary types.Summary) []log.Field {
	var missing, denied, notEmpty int
	for _, r := range summary.Results {
		switch {
		case r.Error == nil:
		case errors.IsFileNotFound(r.Error):
			missing++
		case errors.IsFileAccessDenied(r.Error):
			denied++
		case errors.IsDirectoryNotEmpty(r.Error):
			notEmpty++
		}
	}
	return []log.Field{
		log.F("listed", summary.Listed),
		log.F("removed", summary.Removed()),
		log.F("failed", summary.Failed()),
		log.F("missing", missing),
		log.F("denied", denied),
		log.F("not_empty", notEmpty),
	}
}

// execute runs the CLI with args and returns the process exit status.
func execute(args []string, stdout, stderr io.Writer) int {
	opts := config.Default()
	cmd := newRootCmd(&opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		reportFatal(stderr, err)
		return 1
	}
	return 0
}

// reportFatal prints a context line followed by the underlying cause.
func reportFatal(stderr io.Writer, err error) {
	log.LogWithError(err).Debug("Aborting run")

	var fileErr *errors.FileError
	if !errors.As(err, &fileErr) {
		fmt.Fprintln(stderr, "Error:", err)
		if errors.IsInvalidConfig(err) {
			fmt.Fprintln(stderr, "Run 'cleanup --help' for usage.")
		}
		return
	}

	switch fileErr.Operation() {
	case errors.OpReadSource:
		switch {
		case errors.IsFileNotFound(fileErr):
			fmt.Fprintln(stderr, "could not open SOURCE file: not found")
		case errors.IsFileAccessDenied(fileErr):
			fmt.Fprintln(stderr, "could not open SOURCE file: permission denied")
		default:
			fmt.Fprintln(stderr, "could not open SOURCE file:")
		}
	case errors.OpWalk:
		fmt.Fprintf(stderr, "could not scan directory %s:\n", fileErr.Path())
	default:
		fmt.Fprintln(stderr, "Error:")
	}

	if cause := errors.Unwrap(fileErr); cause != nil {
		fmt.Fprintln(stderr, cause)
	} else {
		fmt.Fprintln(stderr, fileErr)
	}
}
