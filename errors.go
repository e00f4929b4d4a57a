package statestore

import "errors"

var (
	// ErrInvalidMarker is returned when stored data does not start with the
	// archive marker.
	ErrInvalidMarker = errors.New("stored data does not start with the archive marker")

	// ErrSignatureMismatch is returned when a stored state space signature
	// does not match the signature of the live state space.
	ErrSignatureMismatch = errors.New("state space signatures do not match")

	// ErrTruncatedHeader is returned when the stream ends before all header
	// fields could be read.
	ErrTruncatedHeader = errors.New("truncated archive header")

	// ErrTruncatedData is returned when the state payload is shorter than
	// the header declares.
	ErrTruncatedData = errors.New("truncated state payload")

	// ErrUnavailable is returned when the target stream cannot be read from
	// or written to.
	ErrUnavailable = errors.New("stream unavailable")
)
