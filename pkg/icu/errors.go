package icu

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMessage    = errors.New("icu: invalid message")
	ErrMissingValue      = errors.New("icu: missing value")
	ErrFormatting        = errors.New("icu: formatting failed")
	ErrUnsupportedLocale = errors.New("icu: unsupported locale")
)

// SyntaxError describes malformed message syntax.
// It matches ErrInvalidMessage with errors.Is.
type SyntaxError struct {
	Source string
	Reason string
	Offset int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("icu: invalid message at offset %d: %s", e.Offset, e.Reason)
}

// Is reports whether target is ErrInvalidMessage.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrInvalidMessage
}
