package core

import (
	"errors"
	"fmt"
)

// ErrorKind tags the pipeline stage an error came from
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindTransport
	KindResolution
	KindPublish
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindResolution:
		return "resolution"
	case KindPublish:
		return "publish"
	default:
		return "unknown"
	}
}

// TransportError indicates a non-success response from the repository source
type TransportError struct {
	Op         string
	Page       int
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	msg := e.Op
	if e.Page > 0 {
		msg = fmt.Sprintf("%s (page %d)", msg, e.Page)
	}

	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}

	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ResolutionError indicates a derived attribute could not be resolved.
// It is always recovered with a sentinel value.
type ResolutionError struct {
	Repository string
	Op         string
	Err        error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s for %s: %v", e.Op, e.Repository, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// PublishError indicates one publish step failed
type PublishError struct {
	Step string
	Err  error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish failed at %s: %v", e.Step, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// KindOf classifies err by the typed error found in its chain
func KindOf(err error) ErrorKind {
	var (
		transportErr  *TransportError
		resolutionErr *ResolutionError
		publishErr    *PublishError
	)

	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.As(err, &resolutionErr):
		return KindResolution
	case errors.As(err, &publishErr):
		return KindPublish
	default:
		return KindUnknown
	}
}
