package json

import (
	"errors"
	"fmt"

	"github.com/sdkrystian/json/storage"
)

var (
	// ErrAllocationFailure is the storage layer's allocation failure,
	// re-exported so callers can match it without importing storage.
	ErrAllocationFailure = storage.ErrAllocationFailure

	// ErrLengthExceeded is returned when an operation would grow a container
	// beyond its fixed maximum size. It signals a logic or input error and is
	// never retried.
	ErrLengthExceeded = errors.New("json: maximum length exceeded")

	// ErrOutOfRange is returned when an index or position argument lies
	// outside the valid bound of the target container.
	ErrOutOfRange = errors.New("json: position out of range")
)

// OutOfRangeError reports a position argument outside the container's bound.
//
// ErrOutOfRange can be matched via errors.Is.
type OutOfRangeError struct {
	Pos  int
	Size int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("json: position %d out of range for size %d", e.Pos, e.Size)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

// LengthError reports a requested size beyond the container's maximum.
//
// ErrLengthExceeded can be matched via errors.Is.
type LengthError struct {
	Op     string
	Length int
	Max    int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("json: %s of %d exceeds maximum length %d", e.Op, e.Length, e.Max)
}

func (e *LengthError) Unwrap() error { return ErrLengthExceeded }

// SyntaxError reports malformed JSON input at a byte offset.
type SyntaxError struct {
	Offset int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("json: syntax error at offset %d: %s", e.Offset, e.Reason)
}

// KindError reports an operation applied to a Value of the wrong kind.
type KindError struct {
	Op   string
	Kind Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("json: %s on %s value", e.Op, e.Kind)
}

func outOfRange(pos, size int) error {
	return &OutOfRangeError{Pos: pos, Size: size}
}

func lengthExceeded(op string, n, max int) error {
	return &LengthError{Op: op, Length: n, Max: max}
}
