// Package exitcode maps command failures to process exit codes and reports
// them, either terminating the process (one-shot mode) or recording the code
// and continuing (interactive mode).
package exitcode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aidanlsb/pbapi/internal/shellquote"
)

// Exit codes.
const (
	OK     = 0
	Usage  = 1
	Auth   = 2
	Remote = 3
)

// Coder is implemented by errors that carry their own exit code.
type Coder interface {
	ExitCode() int
}

// Describer is implemented by errors that know how they should be shown to a
// user. The returned text is printed verbatim.
type Describer interface {
	Describe() string
}

// UsageError signals malformed input: a missing operation, missing required
// arguments or unusable credentials.
type UsageError struct {
	Message string
}

// Usagef builds a UsageError from a format string.
func Usagef(format string, args ...any) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

func (e *UsageError) Error() string { return e.Message }

func (e *UsageError) ExitCode() int { return Usage }

func (e *UsageError) Describe() string { return "Invalid arguments: " + e.Message }

// UnknownOperationError is returned when no registered operation matches the
// requested token.
type UnknownOperationError struct {
	Operation string
	Argv      []string
}

func (e *UnknownOperationError) Error() string {
	return "unknown operation: " + e.Operation
}

func (e *UnknownOperationError) ExitCode() int { return Auth }

// Describe echoes the command line, when known, before naming the operation.
func (e *UnknownOperationError) Describe() string {
	msg := "Unknown operation: " + e.Operation
	if len(e.Argv) > 0 {
		msg = shellquote.Join(e.Argv) + "\n" + msg
	}
	return msg
}

// ExitError requests a specific exit code without printing anything extra.
// Commands that have already written their own diagnostics return it.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit code %d", e.Code) }

func (e *ExitError) ExitCode() int { return e.Code }

// Code returns the exit code for err. A nil error is OK; errors that do not
// carry a code are treated as remote failures.
func Code(err error) int {
	if err == nil {
		return OK
	}
	var coder Coder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return Remote
}

// Describe returns the user-facing text for err. An ExitError yields "".
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return ""
	}
	var d Describer
	if errors.As(err, &d) {
		return d.Describe()
	}
	return "Error: Unknown error: " + strings.TrimSpace(err.Error())
}
