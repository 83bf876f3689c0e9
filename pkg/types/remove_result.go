package types

// RemoveResult holds the outcome of a removal attempt for a single path
type RemoveResult struct {
	Path    string
	Removed bool
	Error   error // Classified removal failure; nil when Removed
}

// Summary aggregates the results of one pass over the target list.
type Summary struct {
	Results []RemoveResult
	Listed  int // Paths printed in dry-run mode
}

// Removed counts the paths that were removed.
func (s Summary) Removed() int {
	n := 0
	for _, r := range s.Results {
		if r.Removed {
			n++
		}
	}
	return n
}

// Failed counts the paths whose removal failed.
func (s Summary) Failed() int {
	return len(s.Results) - s.Removed()
}
