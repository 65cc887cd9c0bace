package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// MarkdownRenderMargin is the left margin of rendered help.
const MarkdownRenderMargin = 2

// RenderMarkdown renders help text for the terminal. The output always ends
// with exactly one newline.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(helpStyle()),
		glamour.WithWordWrap(width-MarkdownRenderMargin),
	)
	if err != nil {
		return "", err
	}
	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(rendered, "\n") + "\n", nil
}

// helpStyle is the plain ASCII style with headings and command names in the
// accent color. Headings drop their "#" markers: in the shell help they name
// commands.
func helpStyle() ansi.StyleConfig {
	s := styles.ASCIIStyleConfig
	accent := AccentColor()

	s.Document.BlockPrefix = ""
	s.Document.BlockSuffix = ""
	s.Document.Margin = uintPtr(MarkdownRenderMargin)

	s.Heading.Color = &accent
	s.Heading.Bold = boolPtr(true)
	s.Heading.BlockSuffix = "\n"
	s.H1.Prefix = ""
	s.H2.Prefix = ""
	s.H3.Prefix = ""

	s.Code.Color = &accent
	s.Item.BlockPrefix = "- "
	return s
}

func boolPtr(v bool) *bool { return &v }

func uintPtr(v uint) *uint { return &v }
