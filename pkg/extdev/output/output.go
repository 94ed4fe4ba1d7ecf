// Package output renders change reports for the extdev watcher in
// selectable styles (pretty, plain).
//
// The package uses a registry pattern to allow registration of multiple
// renderer implementations that can be selected at runtime.
//
// Basic usage:
//
//	renderer, err := output.Get("pretty")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	var buf bytes.Buffer
//	if err := renderer.Render(&buf, report); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(buf.String())
package output

import (
	"bytes"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kluelabs/extdev/pkg/extdev/logging"
)

// logger is the package-level logger for output operations.
var logger = logging.Get("output")

// Change is a single file change for rendering.
type Change struct {
	// Path is the changed file's path relative to the watched root.
	Path string

	// Deleted marks a file that disappeared; everything else is a
	// modification (created or changed content).
	Deleted bool
}

// Report is one poll cycle's worth of detected changes, ready for
// rendering. Changes arrive ordered: modifications first, then deletions,
// each sorted by path.
type Report struct {
	// Root is the watched root directory.
	Root string

	// Extension is the display name of the browser extension the reload
	// instructions refer to.
	Extension string

	// Changes are the detected changes. A report is only rendered when
	// this is non-empty.
	Changes []Change

	// At is when the changes were detected.
	At time.Time
}

// Summary returns the number of modifications and deletions in the report.
func (r *Report) Summary() (modified, deleted int) {
	for _, c := range r.Changes {
		if c.Deleted {
			deleted++
		} else {
			modified++
		}
	}
	return modified, deleted
}

// Renderer is the interface all report renderers implement.
type Renderer interface {
	// Render writes the rendered report to the buffer.
	// It returns an error if rendering fails.
	Render(w *bytes.Buffer, r *Report) error
}

// RendererFactory is a function that creates a new Renderer instance.
type RendererFactory func() Renderer

// Registry manages renderer registration and lookup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]RendererFactory
}

// NewRegistry creates a new renderer registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]RendererFactory),
	}
}

// Register adds a renderer factory to the registry.
// It will replace any existing renderer with the same name.
func (r *Registry) Register(name string, factory RendererFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get returns a new renderer instance by name.
// It returns an error if the renderer is not found.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown renderer: %s", name)
	}
	return factory(), nil
}

// Available returns a sorted list of all registered renderer names.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global renderer registry.
var DefaultRegistry = NewRegistry()

// Register adds a renderer factory to the default registry.
func Register(name string, factory RendererFactory) {
	DefaultRegistry.Register(name, factory)
}

// Get returns a new renderer instance from the default registry.
func Get(name string) (Renderer, error) {
	return DefaultRegistry.Get(name)
}

// Available returns all renderer names from the default registry.
func Available() []string {
	return DefaultRegistry.Available()
}
