package tensorcore

import (
	"errors"
	"fmt"
)

var (
	// ErrNonSparseModifier is returned when a modify operation receives a
	// modifier with indexed dimensions.
	ErrNonSparseModifier = errors.New("modifier tensor must be sparse")
	// ErrDenseRemove is returned when cells are removed from a tensor
	// without mapped dimensions.
	ErrDenseRemove = errors.New("cannot remove cells from a dense tensor")
	// ErrTypeMismatch matches every *TypeMismatchError via errors.Is.
	ErrTypeMismatch = errors.New("tensor type mismatch")
)

// TypeMismatchError indicates that the operand of a partial update does not
// fit the input tensor's type.
type TypeMismatchError struct {
	Op    string
	Input string
	Other string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: tensor type mismatch: input %s, operand %s", e.Op, e.Input, e.Other)
}

// Unwrap lets errors.Is match ErrTypeMismatch.
func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }
