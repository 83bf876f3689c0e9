package collect

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"cleanup/internal/errors"
	"cleanup/pkg/types"
)

// Matcher tests slash-separated relative paths against one mask.
// A mask matches at any depth: "*.o" matches "x.o" and "a/b/x.o".
type Matcher struct {
	pattern types.Pattern
	globs   []glob.Glob
}

// Compile builds a Matcher. '*' stops at '/'. A "**" segment stands for
// zero or more directories; "**" inside a longer segment acts like '*'.
func Compile(p types.Pattern) (*Matcher, error) {
	forms := expandMask(p.Glob)
	if len(forms) == 0 {
		return nil, errors.NewPatternError("pattern names no file", p.Glob, nil)
	}

	m := &Matcher{pattern: p}
	for _, form := range forms {
		g, err := glob.Compile(form, '/')
		if err != nil {
			return nil, errors.NewPatternError("invalid pattern", p.Glob, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Pattern returns the mask this matcher was compiled from.
func (m *Matcher) Pattern() types.Pattern {
	return m.pattern
}

// Match reports whether rel, a path relative to the collection root,
// matches the mask.
func (m *Matcher) Match(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, g := range m.globs {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// expandMask turns a mask into the gobwas expressions it stands for. The
// mask is implicitly prefixed with a "**" segment so it matches at any
// depth. Each "**" segment yields two forms: dropped (zero directories) and
// kept as gobwas "**" (one or more, since it sits between separators).
func expandMask(mask string) []string {
	segs := []string{"**"}
	named := false
	for _, s := range strings.Split(mask, "/") {
		if s == "" || s == "." {
			continue
		}
		if s != "**" {
			for strings.Contains(s, "**") {
				s = strings.ReplaceAll(s, "**", "*")
			}
			named = true
		} else if segs[len(segs)-1] == "**" {
			continue
		}
		segs = append(segs, s)
	}
	if !named {
		return nil
	}

	forms := []string{""}
	for _, s := range segs {
		next := make([]string, 0, len(forms)*2)
		for _, f := range forms {
			if s == "**" {
				next = append(next, f)
			}
			if f == "" {
				next = append(next, s)
			} else {
				next = append(next, f+"/"+s)
			}
		}
		forms = next
	}

	seen := make(map[string]bool, len(forms))
	out := forms[:0]
	for _, f := range forms {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
