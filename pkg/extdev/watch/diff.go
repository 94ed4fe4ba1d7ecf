package watch

import "sort"

// Kind classifies a detected change.
type Kind int

const (
	// Modified covers both newly created files and files whose content
	// changed. The renderer treats them the same way, so the detector
	// does not tell them apart.
	Modified Kind = iota

	// Deleted marks a file present in the previous snapshot but absent
	// from the current one.
	Deleted
)

// String returns the human-readable form of the kind.
func (k Kind) String() string {
	switch k {
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Change is a single detected file change.
type Change struct {
	// Path is the root-relative, slash-separated file path.
	Path string

	// Kind says whether the file was modified or deleted.
	Kind Kind
}

// ChangeSet is the outcome of comparing two snapshots. Modifications come
// first, then deletions, each group ordered by path.
type ChangeSet []Change

// Diff compares two snapshots and reports what changed between them.
// A path present in current but absent from previous, or present in both
// with differing fingerprints, is modified. A path present in previous but
// absent from current is deleted. Comparing a snapshot against itself
// yields an empty set.
func Diff(previous, current Snapshot) ChangeSet {
	var modified, deleted []string

	for path, fp := range current {
		prev, ok := previous[path]
		if !ok || prev != fp {
			modified = append(modified, path)
		}
	}

	for path := range previous {
		if _, ok := current[path]; !ok {
			deleted = append(deleted, path)
		}
	}

	if len(modified) == 0 && len(deleted) == 0 {
		return nil
	}

	sort.Strings(modified)
	sort.Strings(deleted)

	changes := make(ChangeSet, 0, len(modified)+len(deleted))
	for _, path := range modified {
		changes = append(changes, Change{Path: path, Kind: Modified})
	}
	for _, path := range deleted {
		changes = append(changes, Change{Path: path, Kind: Deleted})
	}
	return changes
}
