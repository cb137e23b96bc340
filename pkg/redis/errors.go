package redis

import "errors"

var (
	// ErrEmptyConnectionURL is returned when REDIS_URL is not set.
	ErrEmptyConnectionURL = errors.New("redis: empty connection URL")
	// ErrFailedToParseURL is returned for URLs other than redis:// and rediss://.
	ErrFailedToParseURL  = errors.New("redis: failed to parse connection URL")
	ErrConnectionFailed  = errors.New("redis: failed to establish connection")
	ErrHealthcheckFailed = errors.New("redis: healthcheck failed")
)
