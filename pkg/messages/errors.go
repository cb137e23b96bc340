package messages

import "errors"

var (
	ErrMissingMessage   = errors.New("messages: missing message")
	ErrNotMessage       = errors.New("messages: key resolves to a namespace, not a message")
	ErrInvalidKey       = errors.New("messages: invalid key")
	ErrInvalidTree      = errors.New("messages: invalid message tree")
	ErrConflictingKeys  = errors.New("messages: key is both a message and a namespace")
	ErrInvalidFile      = errors.New("messages: invalid catalog file")
	ErrEmptyLocale      = errors.New("messages: locale cannot be empty")
	ErrSourceFailed     = errors.New("messages: failed to load source")
	ErrNoSources        = errors.New("messages: no sources provided")
	ErrInvalidRedisData = errors.New("messages: invalid catalog data in redis")
)
