package tui

import "github.com/charmbracelet/glamour"

// markdownRenderer turns assistant markdown into styled terminal output.
// One renderer is shared across the transcript and rebuilt on resize so
// word wrap follows the pane width.
type markdownRenderer struct {
	renderer *glamour.TermRenderer
}

func newMarkdownRenderer(width int) *markdownRenderer {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return &markdownRenderer{}
	}
	return &markdownRenderer{renderer: r}
}

// Render styles content as markdown. Any failure falls back to the raw
// text so the transcript never goes blank mid-stream.
func (m *markdownRenderer) Render(content string) string {
	if m.renderer == nil {
		return content
	}
	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
