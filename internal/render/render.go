// Package render prints service responses as indented text, in a long form
// by default and a condensed form when short output is requested.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/aidanlsb/pbapi/internal/api"
	"github.com/aidanlsb/pbapi/internal/ui"
)

// Renderer writes response objects to an output stream. It is not safe for
// concurrent use.
type Renderer struct {
	out    io.Writer
	short  bool
	indent int
}

// New returns a Renderer writing to out.
func New(out io.Writer, short bool) *Renderer {
	return &Renderer{out: out, short: short}
}

// Short reports whether the condensed form is active.
func (r *Renderer) Short() bool { return r.short }

// Writer returns the underlying stream.
func (r *Renderer) Writer() io.Writer { return r.out }

// Line writes one formatted line at the current indentation. Trailing
// blanks are dropped.
func (r *Renderer) Line(format string, args ...any) {
	text := format
	if len(args) > 0 {
		text = fmt.Sprintf(format, args...)
	}
	text = strings.TrimRight(text, " ")
	if text == "" {
		fmt.Fprintln(r.out)
		return
	}
	fmt.Fprintln(r.out, strings.Repeat("\t", r.indent)+text)
}

// Blank writes an empty line.
func (r *Renderer) Blank() {
	fmt.Fprintln(r.out)
}

// Nested runs fn one level deeper.
func (r *Renderer) Nested(fn func()) {
	r.indent++
	defer func() { r.indent-- }()
	fn()
}

// OperationCompleted is printed for operations whose response carries no
// data of interest.
func (r *Renderer) OperationCompleted() {
	r.Line("Operation completed")
}

// CreatedID prints the id of a newly created resource. The id is taken from
// field of the response object, or from the response itself when the
// service returned a bare value.
func (r *Renderer) CreatedID(label, field string, response any) {
	id := api.Stringify(response)
	if obj := api.AsObject(response); obj != nil {
		id = obj.String(field)
	}
	r.Line("%s: %s", label, ui.ID(id))
}

// DataCenterState prints the provisioning state returned by
// getDataCenterState.
func (r *Renderer) DataCenterState(state any) {
	r.Line("Provisioning state: %s", api.Stringify(state))
}

// RequestID prints the footer that follows long-form output of a remote
// operation.
func (r *Renderer) RequestID(id string) {
	if id == "" {
		id = api.Placeholder
	}
	r.Blank()
	r.Line("Request ID: %s", id)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return api.Placeholder
	}
	return strings.Join(items, " ; ")
}
