package invoice

import (
	"fmt"
	"strings"
)

// InputShapeError indicates the raw input document matched none of the
// recognized shapes (single service, bulk services, services-only).
type InputShapeError struct {
	Reason string
}

func (e *InputShapeError) Error() string {
	return fmt.Sprintf("invalid input shape: %s", e.Reason)
}

// UnknownServiceTypeError indicates a service carried a type tag other than
// the supported service kinds.
type UnknownServiceTypeError struct {
	Type string
}

func (e *UnknownServiceTypeError) Error() string {
	return fmt.Sprintf("unknown service type: %q", e.Type)
}

// ValidationError carries the full ordered list of field violations found by
// the validator. It is raised by the orchestrator, never by the validator
// itself.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invoice validation failed:\n" + strings.Join(e.Messages, "\n")
}
