package anim

import (
	"errors"
	"fmt"
)

// ErrDanglingGlobalSequence indicates a track set that refers to a global
// sequence the model does not have.
var ErrDanglingGlobalSequence = errors.New("dangling global sequence reference")

// GlobalSequenceError reports the global sequence referenced by a track set
// that could not be bound. It matches ErrDanglingGlobalSequence.
type GlobalSequenceError struct {
	ID int32
	// Count is the number of global sequences in the model.
	Count int
}

func (err GlobalSequenceError) Error() string {
	return fmt.Sprintf("%s: id %d, model has %d", ErrDanglingGlobalSequence, err.ID, err.Count)
}

func (err GlobalSequenceError) Is(target error) bool {
	return target == ErrDanglingGlobalSequence
}

// OwnerError indicates the record whose track set failed to bind.
type OwnerError struct {
	Owner string
	Index int
	Cause error
}

func (err OwnerError) Error() string {
	return fmt.Sprintf("%s #%d: %s", err.Owner, err.Index, err.Cause)
}

func (err OwnerError) Unwrap() error {
	return err.Cause
}
