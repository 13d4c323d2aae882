package ui

import "github.com/charmbracelet/glamour"

// renderMarkdown renders chapter markdown for the terminal. Renderer
// failures degrade to the raw text rather than showing nothing.
func renderMarkdown(text string, width int) string {
	if width < 20 {
		width = 20
	}
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return out
}
