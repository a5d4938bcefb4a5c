package specdoc

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is(). Every load failure is a
// *LoadError that matches exactly one of these.
var (
	// ErrNotFound indicates a local spec path that does not exist.
	ErrNotFound = errors.New("spec not found")

	// ErrUnsupportedFormat indicates a file extension other than
	// .yaml, .yml, or .json.
	ErrUnsupportedFormat = errors.New("unsupported spec format")

	// ErrNetwork indicates a remote fetch failure: connection error,
	// timeout, or non-2xx status.
	ErrNetwork = errors.New("network error")

	// ErrParse indicates malformed YAML or JSON.
	ErrParse = errors.New("parse error")

	// ErrInvalidSpec indicates a document that parsed but is not an
	// OpenAPI/Swagger spec (no "openapi" or "swagger" root key).
	ErrInvalidSpec = errors.New("invalid spec")
)

// Reason classifies a LoadError.
type Reason int

const (
	ReasonUnknown Reason = iota
	ReasonNotFound
	ReasonUnsupportedFormat
	ReasonNetwork
	ReasonParse
	ReasonInvalidSpec
)

// String returns a human-readable reason name.
func (r Reason) String() string {
	switch r {
	case ReasonNotFound:
		return "not found"
	case ReasonUnsupportedFormat:
		return "unsupported format"
	case ReasonNetwork:
		return "network error"
	case ReasonParse:
		return "parse error"
	case ReasonInvalidSpec:
		return "invalid spec"
	default:
		return "unknown"
	}
}

// sentinel returns the sentinel error this reason matches.
func (r Reason) sentinel() error {
	switch r {
	case ReasonNotFound:
		return ErrNotFound
	case ReasonUnsupportedFormat:
		return ErrUnsupportedFormat
	case ReasonNetwork:
		return ErrNetwork
	case ReasonParse:
		return ErrParse
	case ReasonInvalidSpec:
		return ErrInvalidSpec
	default:
		return nil
	}
}

// LoadError represents a failure to load a spec document. All load failures
// are terminal: the caller is expected to exit, not retry.
type LoadError struct {
	// Source is the path or URL that failed to load
	Source string
	// Reason classifies the failure
	Reason Reason
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message naming the offending source.
func (e *LoadError) Error() string {
	msg := fmt.Sprintf("failed to load spec (%s)", e.Reason)
	if e.Source != "" {
		msg += " from " + e.Source
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error's reason sentinel.
func (e *LoadError) Is(target error) bool {
	return target == e.Reason.sentinel()
}
