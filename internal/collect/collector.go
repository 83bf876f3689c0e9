// Package collect expands the masks of a pattern-source file into the
// sorted list of paths they match under a root directory.
package collect

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"cleanup/internal/errors"
	"cleanup/internal/log"
	"cleanup/pkg/types"
)

// maxMaskLine bounds a single line of the pattern source.
const maxMaskLine = 1 << 20

// Collector walks a directory tree and matches its entries against masks.
type Collector struct {
	root string
}

// New creates a Collector rooted at root. Use "." for the working directory.
func New(root string) *Collector {
	if root == "" {
		root = "."
	}
	return &Collector{root: root}
}

// Root returns the directory the collector walks.
func (c *Collector) Root() string {
	return c.root
}

// ReadPatterns reads one mask per line from source. Trailing whitespace is
// stripped; blank lines are kept as empty patterns so line numbers stay
// aligned. The file is closed before ReadPatterns returns.
func ReadPatterns(source string) ([]types.Pattern, error) {
	f, err := os.Open(source)
	if err != nil {
		return nil, errors.ClassifyFileError("could not open pattern source", source, err).WithOperation(errors.OpReadSource)
	}
	defer f.Close()

	var patterns []types.Pattern
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMaskLine)
	line := 0
	for scanner.Scan() {
		line++
		mask := strings.TrimRightFunc(scanner.Text(), unicode.IsSpace)
		patterns = append(patterns, types.Pattern{Glob: mask, Line: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.ClassifyFileError("could not read pattern source", source, err).WithOperation(errors.OpReadSource)
	}

	log.LogWithFields(log.F("source", source), log.F("lines", line)).Debug("Read pattern source")
	return patterns, nil
}

// Collect reads the masks in source and returns every matching path.
func (c *Collector) Collect(source string) ([]string, error) {
	patterns, err := ReadPatterns(source)
	if err != nil {
		return nil, err
	}
	return c.Expand(patterns)
}

// Expand matches each pattern independently against the tree. A path hit by
// several patterns appears once per pattern. The result is sorted by path
// string. Blank patterns match nothing; patterns that fail to compile are
// reported and skipped.
func (c *Collector) Expand(patterns []types.Pattern) ([]string, error) {
	var matchers []*Matcher
	for _, p := range patterns {
		if p.Empty() {
			continue
		}
		m, err := Compile(p)
		if err != nil {
			if !errors.IsInvalidPattern(err) {
				return nil, err
			}
			log.LogWithError(err).With(log.F("line", p.Line)).Warn("Skipping pattern")
			continue
		}
		matchers = append(matchers, m)
	}

	targets := []string{}
	if len(matchers) == 0 {
		return targets, nil
	}

	entries, err := c.walk()
	if err != nil {
		return nil, err
	}

	for _, m := range matchers {
		hits := 0
		for _, rel := range entries {
			if m.Match(rel) {
				targets = append(targets, filepath.Join(c.root, rel))
				hits++
			}
		}
		log.LogWithFields(log.F("pattern", m.Pattern().Glob), log.F("matches", hits)).Debug("Expanded pattern")
	}

	sort.Strings(targets)
	return targets, nil
}

// walk lists every entry below the root as a path relative to it. The root
// itself is excluded and symlinked directories are not followed. Unreadable
// subdirectories are skipped.
func (c *Collector) walk() ([]string, error) {
	var entries []string
	err := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == c.root {
				return err
			}
			log.LogWithFields(log.F("path", path), log.F("error", err.Error())).Debug("Skipping unreadable entry")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == c.root {
			return nil
		}
		rel, err := filepath.Rel(c.root, path)
		if err != nil {
			return err
		}
		entries = append(entries, rel)
		return nil
	})
	if err != nil {
		return nil, errors.ClassifyFileError("could not walk directory", c.root, err).WithOperation(errors.OpWalk)
	}
	return entries, nil
}
