package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"
)

// PlainRenderer renders reports as simple tab-separated rows.
// It produces plain text output suitable for scripting and piping.
// No colors or styling are applied.
type PlainRenderer struct{}

// Render writes the rendered report to the buffer.
func (p *PlainRenderer) Render(w *bytes.Buffer, r *Report) error {
	// Use tabwriter for aligned columns
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)

	if _, err := tw.Write([]byte("CHANGE\tPATH\n")); err != nil {
		return err
	}

	for _, c := range r.Changes {
		kind := "modified"
		if c.Deleted {
			kind = "deleted"
		}
		if _, err := tw.Write([]byte(kind + "\t" + c.Path + "\n")); err != nil {
			return err
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	name := r.Extension
	if name == "" {
		name = "the extension"
	}
	fmt.Fprintf(w, "\nreload needed: open chrome://extensions and reload %q\n", name)
	return nil
}

func init() {
	Register("plain", func() Renderer {
		return &PlainRenderer{}
	})
}

// Ensure PlainRenderer implements Renderer.
var _ Renderer = (*PlainRenderer)(nil)
