package api

import (
	"fmt"

	"github.com/aidanlsb/pbapi/internal/exitcode"
)

// AuthError is returned when the service rejects the credentials.
type AuthError struct {
	Operation string
	Status    int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: authentication failed (HTTP %d)", e.Operation, e.Status)
}

func (e *AuthError) ExitCode() int { return exitcode.Auth }

func (e *AuthError) Describe() string { return "Error: Invalid username or password" }

// FaultError is an application-level failure reported by the service, such
// as a missing resource or an exceeded limit.
type FaultError struct {
	Operation string
	Code      string
	Message   string
}

func (e *FaultError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s: %s", e.Operation, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

func (e *FaultError) ExitCode() int { return exitcode.Remote }

func (e *FaultError) Describe() string { return "Error: " + e.Message }

// TransportError covers network failures, unexpected statuses and
// undecodable responses. Status is zero when no response was received.
type TransportError struct {
	Operation string
	Status    int
	Err       error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: HTTP %d: %v", e.Operation, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) ExitCode() int { return exitcode.Remote }

func (e *TransportError) Describe() string {
	if e.Status != 0 {
		return fmt.Sprintf("Error: Unknown error: HTTP %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("Error: Unknown error: %v", e.Err)
}
