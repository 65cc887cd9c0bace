package exitcode

import (
	"fmt"
	"io"
	"sync"
)

// Reporter turns a command error into an exit code, printing its description.
type Reporter interface {
	Report(err error) int
}

// Terminator reports an error and ends the process through Exit. It is used
// by the one-shot CLI.
type Terminator struct {
	Out  io.Writer
	Exit func(code int)
}

// Report prints err and calls Exit with its code. A nil error exits 0.
func (t *Terminator) Report(err error) int {
	code := Code(err)
	if msg := Describe(err); msg != "" && t.Out != nil {
		fmt.Fprintln(t.Out, msg)
	}
	if t.Exit != nil {
		t.Exit(code)
	}
	return code
}

// Recorder reports an error and keeps running. The code of the most recent
// report is retained until read with Last.
type Recorder struct {
	Out io.Writer

	mu   sync.Mutex
	last int
}

// Report prints err and stores its code.
func (r *Recorder) Report(err error) int {
	code := Code(err)
	if msg := Describe(err); msg != "" && r.Out != nil {
		fmt.Fprintln(r.Out, msg)
	}
	r.mu.Lock()
	r.last = code
	r.mu.Unlock()
	return code
}

// Last returns the most recently recorded code and resets it to OK.
func (r *Recorder) Last() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	code := r.last
	r.last = OK
	return code
}
