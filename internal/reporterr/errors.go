// Package reporterr defines the error taxonomy of the report pipeline.
package reporterr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoRestAPIs signals that the collaborator returned zero REST APIs. It is a
// condition, not a failure: callers decide whether to stop or write an empty report.
var ErrNoRestAPIs = errors.New("no REST APIs found")

// CollaboratorError is a non-success answer from the API Gateway (or EC2) client.
type CollaboratorError struct {
	Op         string
	StatusCode int
	Code       string
	Err        error
}

// Error implements the error interface.
func (e *CollaboratorError) Error() string {
	var b strings.Builder
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, "%d - ", e.StatusCode)
	}
	fmt.Fprintf(&b, "could not obtain %s", e.Op)
	if e.Code != "" {
		fmt.Fprintf(&b, " (%s)", e.Code)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap exposes the underlying error for errors.Is/As.
func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports an invalid user-supplied setting, with the valid
// alternatives when they are known.
type ConfigurationError struct {
	Field string
	Value string
	Valid []string
	Err   error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid %s %q", e.Field, e.Value)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if len(e.Valid) > 0 {
		fmt.Fprintf(&b, ". Available %ss:\n%s", e.Field, strings.Join(e.Valid, "\n"))
	}
	return b.String()
}

// Unwrap exposes the underlying error for errors.Is/As.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsCollaborator reports whether err carries a CollaboratorError.
func IsCollaborator(err error) bool {
	var ce *CollaboratorError
	return errors.As(err, &ce)
}

// IsConfiguration reports whether err carries a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
