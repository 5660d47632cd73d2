package style

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders markdown for the terminal. Other formats, and any
// renderer failure, return the markdown unchanged.
func RenderMarkdown(content string, f Format, width int) string {
	if f != FormatTerminal {
		return content
	}

	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
