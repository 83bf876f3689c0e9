// Package remove acts on a collected target list: it either prints the
// paths (dry run) or removes them one by one, reporting as it goes.
package remove

import (
	"fmt"
	"io"
	"os"

	"cleanup/internal/errors"
	"cleanup/internal/log"
	"cleanup/pkg/types"
)

// RemoveFunc removes a single filesystem entry.
type RemoveFunc func(path string) error

// Executor removes paths sequentially. A failed removal is reported on the
// error writer and never stops the batch.
type Executor struct {
	stdout  io.Writer
	stderr  io.Writer
	verbose bool
	remove  RemoveFunc
}

// New creates an Executor writing listings and confirmations to stdout and
// failures to stderr.
func New(stdout, stderr io.Writer, verbose bool) *Executor {
	return &Executor{
		stdout:  stdout,
		stderr:  stderr,
		verbose: verbose,
		remove:  os.Remove,
	}
}

// SetRemoveFunc swaps the removal primitive. Tests use it to inject
// failures that do not depend on filesystem permissions.
func (e *Executor) SetRemoveFunc(fn RemoveFunc) {
	if fn == nil {
		fn = os.Remove
	}
	e.remove = fn
}

// Run lists paths when blank is set, otherwise removes them.
func (e *Executor) Run(paths []string, blank bool) types.Summary {
	if blank {
		return e.List(paths)
	}
	return e.Remove(paths)
}

// List prints every path on its own line, in order, and touches nothing.
func (e *Executor) List(paths []string) types.Summary {
	for _, p := range paths {
		fmt.Fprintln(e.stdout, p)
	}
	return types.Summary{Listed: len(paths)}
}

// Remove removes each path in order. Files and empty directories are
// removed; anything else fails for that path only.
func (e *Executor) Remove(paths []string) types.Summary {
	summary := types.Summary{Results: make([]types.RemoveResult, 0, len(paths))}

	for _, p := range paths {
		if err := e.remove(p); err != nil {
			fileErr := errors.ClassifyFileError("failed to remove", p, err).WithOperation(errors.OpRemove)
			log.LogWithError(fileErr).Debug("Removal failed")
			fmt.Fprintf(e.stderr, "failed to remove %s:\n", p)
			fmt.Fprintln(e.stderr, err)
			summary.Results = append(summary.Results, types.RemoveResult{Path: p, Error: fileErr})
			continue
		}

		if e.verbose {
			fmt.Fprintf(e.stdout, "%s removed.\n", p)
		}
		summary.Results = append(summary.Results, types.RemoveResult{Path: p, Removed: true})
	}

	return summary
}
