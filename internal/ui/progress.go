package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Dots prints one marker per poll iteration and a closing marker when the
// wait ends. On a terminal the markers are muted.
type Dots struct {
	out    io.Writer
	styled bool
	count  int
}

// NewDots returns a Dots writing to out.
func NewDots(out io.Writer) *Dots {
	d := &Dots{out: out}
	if f, ok := out.(*os.File); ok {
		d.styled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return d
}

// Tick prints a single ".".
func (d *Dots) Tick() {
	d.count++
	fmt.Fprint(d.out, d.render("."))
}

// Done prints "-" and ends the line.
func (d *Dots) Done() {
	fmt.Fprintln(d.out, d.render("-"))
}

// Count returns the number of ticks printed.
func (d *Dots) Count() int {
	return d.count
}

func (d *Dots) render(s string) string {
	if d.styled {
		return Muted.Render(s)
	}
	return s
}
