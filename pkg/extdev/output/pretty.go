package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize/english"
)

// PrettyRenderer renders reports with colors and styling using lipgloss.
// It produces a visually appealing output suitable for terminal display.
type PrettyRenderer struct{}

// Render writes the rendered report to the buffer.
func (p *PrettyRenderer) Render(w *bytes.Buffer, r *Report) error {
	w.WriteString(p.renderChanges(r))
	w.WriteString("\n")
	w.WriteString(p.renderReload(r))
	w.WriteString("\n")
	return nil
}

// renderChanges builds the box listing every detected change.
func (p *PrettyRenderer) renderChanges(r *Report) string {
	var lines []string

	title := TitleStyle.Render(english.Plural(len(r.Changes), "change", "") + " detected")
	when := MutedStyle.Render(r.At.Format("15:04:05"))
	lines = append(lines, fmt.Sprintf("%s %s", title, when))

	if modified, deleted := r.Summary(); deleted > 0 {
		lines = append(lines, MutedStyle.Render(
			fmt.Sprintf("%d modified, %d deleted", modified, deleted)))
	}

	for _, c := range r.Changes {
		line := "  • " + PathStyle.Render(c.Path)
		if c.Deleted {
			line += " " + DeletedStyle.Render("(deleted)")
		}
		lines = append(lines, line)
	}

	return ChangesBox.Render(strings.Join(lines, "\n"))
}

// renderReload builds the static reload instruction banner.
func (p *PrettyRenderer) renderReload(r *Report) string {
	name := r.Extension
	if name == "" {
		name = "the extension"
	}

	lines := []string{
		TitleStyle.Render("Reload needed"),
		LabelStyle.Render("1.") + " " + ValueStyle.Render("Open chrome://extensions"),
		LabelStyle.Render("2.") + " " + ValueStyle.Render(fmt.Sprintf("Click the reload icon for %q", name)),
		"",
		MutedStyle.Render("Tip: keep chrome://extensions open in a pinned tab"),
		MutedStyle.Render("for one-click reloads during development"),
	}

	return ReloadBox.Render(strings.Join(lines, "\n"))
}

func init() {
	Register("pretty", func() Renderer {
		return &PrettyRenderer{}
	})
}

// Ensure PrettyRenderer implements Renderer.
var _ Renderer = (*PrettyRenderer)(nil)
