// Package helptext serves the bundled Markdown help, whole or by section.
package helptext

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/aidanlsb/pbapi/docs"
	"github.com/aidanlsb/pbapi/internal/ui"
)

// ShellDoc is the shell help document inside docs.FS.
const ShellDoc = "help/shell.md"

// Section is one heading of a document and the text up to the next heading
// of the same or a higher level.
type Section struct {
	Level int
	Title string
	Body  string // Markdown, including the heading line
}

// Doc is a parsed help document.
type Doc struct {
	Source   string
	Sections []Section
}

// Load reads and parses name from fsys.
func Load(fsys fs.FS, name string) (*Doc, error) {
	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read help %s: %w", name, err)
	}
	return Parse(src), nil
}

// Shell returns the bundled shell help.
func Shell() (*Doc, error) {
	return Load(docs.FS, ShellDoc)
}

type heading struct {
	level int
	title string
	start int // offset of the heading line
}

// Parse splits src into sections using the document's headings.
func Parse(src []byte) *Doc {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var headings []heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		var title strings.Builder
		for child := h.FirstChild(); child != nil; child = child.NextSibling() {
			if t, ok := child.(*ast.Text); ok {
				title.Write(t.Segment.Value(src))
			}
		}
		start := 0
		if h.Lines().Len() > 0 {
			start = lineStart(src, h.Lines().At(0).Start)
		}
		headings = append(headings, heading{level: h.Level, title: strings.TrimSpace(title.String()), start: start})
		return ast.WalkSkipChildren, nil
	})

	out := &Doc{Source: string(src)}
	for i, h := range headings {
		end := len(src)
		for _, next := range headings[i+1:] {
			if next.level <= h.level {
				end = next.start
				break
			}
		}
		out.Sections = append(out.Sections, Section{
			Level: h.level,
			Title: h.title,
			Body:  strings.TrimSpace(string(src[h.start:end])) + "\n",
		})
	}
	return out
}

func lineStart(src []byte, offset int) int {
	if i := bytes.LastIndexByte(src[:offset], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

// Topic returns the section titled topic, ignoring case. Only the first
// word of a title is compared, so "help" finds "## help".
func (d *Doc) Topic(topic string) (Section, bool) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return Section{}, false
	}
	for _, s := range d.Sections {
		fields := strings.Fields(strings.ToLower(s.Title))
		if len(fields) > 0 && fields[0] == topic && s.Level > 1 {
			return s, true
		}
	}
	return Section{}, false
}

// Topics returns the titles of the second-level sections.
func (d *Doc) Topics() []string {
	var out []string
	for _, s := range d.Sections {
		if s.Level == 2 {
			out = append(out, s.Title)
		}
	}
	return out
}

// Render renders Markdown for the terminal at the given width, falling back
// to the raw text when rendering fails.
func Render(markdown string, width int) string {
	rendered, err := ui.RenderMarkdown(markdown, width)
	if err != nil {
		return markdown
	}
	return rendered
}
