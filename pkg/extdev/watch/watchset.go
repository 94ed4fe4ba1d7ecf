// Package watch implements the polling change detector behind "extdev watch".
// A WatchSet describes which files under a root are eligible, Build captures
// them as a Snapshot of content fingerprints, Diff compares two snapshots,
// and Detector drives the poll cycle.
package watch

import (
	"path"
	"strings"

	"github.com/gobwas/glob"
)

// WatchSet defines which files under a root directory are watched.
// It is immutable after construction; build one per watch session.
type WatchSet struct {
	// Root is the directory tree to watch.
	Root string

	// Extensions contains file extensions to watch (e.g., ".js", ".css").
	// If empty, every file under the root is eligible.
	Extensions []string

	// Ignore contains exact filenames that are never watched.
	Ignore []string

	// IgnorePatterns contains glob patterns for paths that are never
	// watched. Patterns match slash-separated paths relative to the root,
	// so "node_modules/**" prunes the whole subtree.
	IgnorePatterns []string

	// compiled holds the pre-compiled ignore patterns.
	compiled []glob.Glob
}

// SetOption is a functional option for configuring a WatchSet.
type SetOption func(*WatchSet)

// NewSet creates a WatchSet for the given root directory.
func NewSet(root string, opts ...SetOption) *WatchSet {
	ws := &WatchSet{Root: root}

	for _, opt := range opts {
		opt(ws)
	}

	ws.compiled = make([]glob.Glob, 0, len(ws.IgnorePatterns))
	for _, pattern := range ws.IgnorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			continue // Skip invalid patterns
		}
		ws.compiled = append(ws.compiled, g)
	}

	return ws
}

// WithExtensions sets the file extensions to watch.
// Extensions are normalized: lowercase and prefixed with "." if missing.
func WithExtensions(extensions ...string) SetOption {
	return func(ws *WatchSet) {
		normalized := make([]string, 0, len(extensions))
		for _, ext := range extensions {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			normalized = append(normalized, ext)
		}
		ws.Extensions = normalized
	}
}

// WithIgnore sets the exact filenames to exclude from watching.
func WithIgnore(names ...string) SetOption {
	return func(ws *WatchSet) {
		ws.Ignore = names
	}
}

// WithIgnorePatterns sets glob patterns for paths to exclude from watching.
// Patterns are matched against slash-separated paths relative to the root.
func WithIgnorePatterns(patterns ...string) SetOption {
	return func(ws *WatchSet) {
		ws.IgnorePatterns = patterns
	}
}

// Match returns true if the relative file path is eligible for watching.
// It checks the extension filter, the ignored filename list, and the
// ignore patterns in that order.
func (ws *WatchSet) Match(rel string) bool {
	if !ws.matchExtension(rel) {
		return false
	}
	if ws.isIgnoredName(path.Base(rel)) {
		return false
	}
	if ws.matchesAnyPattern(rel) {
		return false
	}
	return true
}

// SkipDir returns true if the relative directory path should be pruned
// from the walk entirely. A pattern like "node_modules/**" matches the
// directory's children, so the directory itself is tested with a trailing
// separator as well.
func (ws *WatchSet) SkipDir(rel string) bool {
	if rel == "." || rel == "" {
		return false
	}
	return ws.matchesAnyPattern(rel) || ws.matchesAnyPattern(rel+"/")
}

// matchExtension checks if the path has a watched extension.
func (ws *WatchSet) matchExtension(rel string) bool {
	if len(ws.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(path.Ext(rel))
	for _, e := range ws.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// isIgnoredName checks if the filename is in the ignore list.
func (ws *WatchSet) isIgnoredName(name string) bool {
	for _, ignored := range ws.Ignore {
		if name == ignored {
			return true
		}
	}
	return false
}

// matchesAnyPattern returns true if the relative path matches any
// compiled ignore pattern.
func (ws *WatchSet) matchesAnyPattern(rel string) bool {
	for _, g := range ws.compiled {
		if g.Match(rel) {
			return true
		}
	}
	return false
}
