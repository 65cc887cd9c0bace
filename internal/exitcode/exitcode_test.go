package exitcode

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type codedErr struct{ code int }

func (e codedErr) Error() string { return "coded" }
func (e codedErr) ExitCode() int { return e.code }

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, OK},
		{"usage", Usagef("Missing operation"), Usage},
		{"unknown op", &UnknownOperationError{Operation: "foo"}, Auth},
		{"explicit", &ExitError{Code: 7}, 7},
		{"wrapped usage", fmt.Errorf("parse: %w", Usagef("x")), Usage},
		{"custom coder", codedErr{code: 2}, 2},
		{"plain error", errors.New("boom"), Remote},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Code(tt.err); got != tt.want {
				t.Errorf("Code() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{Usagef("Missing username"), "Invalid arguments: Missing username"},
		{&UnknownOperationError{Operation: "getFoo"}, "Unknown operation: getFoo"},
		{&UnknownOperationError{Operation: "getFoo", Argv: []string{"pbapi", "getFoo", "-name", "a b"}}, "pbapi getFoo -name 'a b'\nUnknown operation: getFoo"},
		{errors.New("connection refused"), "Error: Unknown error: connection refused"},
		{&ExitError{Code: 1}, ""},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := Describe(tt.err); got != tt.want {
			t.Errorf("Describe(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestTerminatorCallsExit(t *testing.T) {
	var out bytes.Buffer
	exited := -1
	term := &Terminator{Out: &out, Exit: func(code int) { exited = code }}

	code := term.Report(Usagef("Missing operation"))
	if code != Usage || exited != Usage {
		t.Fatalf("code = %d, exited = %d, want %d", code, exited, Usage)
	}
	if !strings.Contains(out.String(), "Invalid arguments: Missing operation") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRecorderKeepsLastCode(t *testing.T) {
	var out bytes.Buffer
	rec := &Recorder{Out: &out}

	rec.Report(&UnknownOperationError{Operation: "nope"})
	if got := rec.Last(); got != Auth {
		t.Fatalf("Last() = %d, want %d", got, Auth)
	}
	if got := rec.Last(); got != OK {
		t.Errorf("Last() after read = %d, want reset to %d", got, OK)
	}
	rec.Report(nil)
	if got := rec.Last(); got != OK {
		t.Errorf("Last() after success = %d, want %d", got, OK)
	}
}
