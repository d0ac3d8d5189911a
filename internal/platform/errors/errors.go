package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedInput     = errors.New("malformed input")
	ErrInvalidCommand     = errors.New("invalid command")
	ErrMalformedPartition = errors.New("malformed schedule partition")
	ErrCorruptState       = errors.New("corrupt schedule document")
	ErrTermination        = errors.New("input terminated")
)

// InputError reports a token that does not match the grammar expected at
// its position. It unwraps to ErrMalformedInput.
type InputError struct {
	Token    string
	Expected string
	Reason   string
}

func (e *InputError) Error() string {
	msg := fmt.Sprintf("malformed input %q: expected %s", e.Token, e.Expected)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

func (e *InputError) Unwrap() error {
	return ErrMalformedInput
}

// Malformed builds an InputError for token.
func Malformed(token, expected string) error {
	return &InputError{Token: token, Expected: expected}
}

// PartitionError names the persisted partition that has the wrong shape.
func PartitionError(partition, detail string) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformedPartition, partition, detail)
}
