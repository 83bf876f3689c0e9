package types

// Pattern is one mask read from the pattern-source file.
type Pattern struct {
	Glob string // Mask with trailing whitespace removed (e.g. "*.pyc", "build/**/*.o")
	Line int    // 1-based line number in the source file
}

// Empty reports whether the mask is blank and therefore matches nothing.
func (p Pattern) Empty() bool {
	return p.Glob == ""
}
