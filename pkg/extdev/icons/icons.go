// Package icons generates placeholder browser-extension icons: a colored
// tile holding a white rounded panel with a single letter, written as
// icon{size}.png at the manifest's standard sizes.
package icons

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/kluelabs/extdev/pkg/extdev/config"
	"github.com/kluelabs/extdev/pkg/extdev/logging"
)

// Options configures icon generation.
type Options struct {
	// OutDir is the directory the icon files are written into. It is
	// created if missing.
	OutDir string

	// Sizes are the square pixel sizes to render, one file per size.
	Sizes []int

	// Label is the letter drawn on each icon.
	Label string

	// Background is the tile color as a hex string (e.g. "#4A90E2").
	Background string

	// Panel is the rounded panel color as a hex string.
	Panel string
}

// Validate checks the options and applies defaults in place.
// Explicitly configured sizes must be positive.
func (o *Options) Validate() error {
	if o.OutDir == "" {
		o.OutDir = config.DefaultIconsDir
	}
	if len(o.Sizes) == 0 {
		o.Sizes = config.DefaultIconSizes
	}
	for _, s := range o.Sizes {
		if s <= 0 {
			return fmt.Errorf("invalid icon size: %d", s)
		}
	}
	if o.Label == "" {
		o.Label = DefaultLabel(config.DefaultExtensionName)
	}
	if o.Background == "" {
		o.Background = config.DefaultIconBackground
	}
	if o.Panel == "" {
		o.Panel = config.DefaultIconPanel
	}
	return nil
}

// DefaultLabel derives an icon label from an extension name: its first
// letter, uppercased. An empty name yields an empty label.
func DefaultLabel(name string) string {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) == 0 {
		return ""
	}
	return strings.ToUpper(string(runes[0]))
}

// Rendered describes one written icon file.
type Rendered struct {
	// Path is the written file path.
	Path string

	// Size is the icon's pixel size.
	Size int

	// Bytes is the encoded file size.
	Bytes int64
}

// Generate renders and writes one PNG per configured size. It returns a
// record per written file; on error the already written files are
// returned alongside it.
func Generate(opts Options) ([]Rendered, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	log := logging.Get("icons")

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating icon dir: %w", err)
	}

	results := make([]Rendered, 0, len(opts.Sizes))
	for _, size := range opts.Sizes {
		img, err := Render(size, opts)
		if err != nil {
			return results, err
		}

		path := filepath.Join(opts.OutDir, fmt.Sprintf("icon%d.png", size))
		f, err := os.Create(path)
		if err != nil {
			return results, fmt.Errorf("creating %s: %w", path, err)
		}
		if err := png.Encode(f, img); err != nil {
			_ = f.Close()
			return results, fmt.Errorf("encoding %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return results, fmt.Errorf("closing %s: %w", path, err)
		}

		info, err := os.Stat(path)
		if err != nil {
			return results, err
		}

		log.Debug("icon written", "path", path, "size", size, "bytes", info.Size())
		results = append(results, Rendered{Path: path, Size: size, Bytes: info.Size()})
	}

	return results, nil
}
