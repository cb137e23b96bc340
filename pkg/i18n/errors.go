package i18n

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrymomot/intl/pkg/icu"
	"github.com/dmitrymomot/intl/pkg/messages"
)

var (
	ErrNilMessages    = errors.New("i18n: messages catalog is not provided")
	ErrEmptyLocale    = errors.New("i18n: locale cannot be empty")
	ErrNilLoader      = errors.New("i18n: config loader is not provided")
	ErrNoRequestCache = errors.New("i18n: no request cache in context")
	ErrLoadConfig     = errors.New("i18n: failed to load config")
)

// Code classifies a translation failure.
type Code string

const (
	CodeMissingMessage      Code = "MISSING_MESSAGE"
	CodeMissingValue        Code = "MISSING_VALUE"
	CodeInvalidMessage      Code = "INVALID_MESSAGE"
	CodeFormattingError     Code = "FORMATTING_ERROR"
	CodeEnvironmentFallback Code = "ENVIRONMENT_FALLBACK"
	CodeInvalidKey          Code = "INVALID_KEY"
)

// Error describes a failure caught at the translator boundary.
// Unwrap exposes the underlying sentinel, so errors.Is works with
// messages.ErrMissingMessage, icu.ErrMissingValue and friends.
type Error struct {
	Code      Code
	Key       string
	Namespace string
	Locale    string
	Err       error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("i18n %s (locale %q): %v", e.Code, e.Locale, e.Err)
	}
	return fmt.Sprintf("i18n %s: %q in %q (locale %q): %v", e.Code, e.Key, e.Namespace, e.Locale, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf maps an error to its code. Unknown errors are formatting errors.
func CodeOf(err error) Code {
	var e *Error
	switch {
	case errors.As(err, &e):
		return e.Code
	case errors.Is(err, messages.ErrInvalidKey):
		return CodeInvalidKey
	case errors.Is(err, messages.ErrMissingMessage), errors.Is(err, messages.ErrNotMessage):
		return CodeMissingMessage
	case errors.Is(err, icu.ErrMissingValue):
		return CodeMissingValue
	case errors.Is(err, icu.ErrInvalidMessage):
		return CodeInvalidMessage
	case errors.Is(err, icu.ErrUnsupportedLocale):
		return CodeEnvironmentFallback
	default:
		return CodeFormattingError
	}
}

var reportedFallbacks sync.Map

// FirstReport reports whether e should be surfaced. It is false only for an
// ENVIRONMENT_FALLBACK of a locale already seen by this process, so
// translators built per request warn about a locale once.
func FirstReport(e *Error) bool {
	if e.Code != CodeEnvironmentFallback {
		return true
	}
	_, seen := reportedFallbacks.LoadOrStore(e.Locale, struct{}{})
	return !seen
}
