package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// New creates a logger writing to w in the configured format ("json" or
// "text"). Context extractors run on every record.
func New(w io.Writer, cfg Config, extractors ...ContextExtractor) (*slog.Logger, error) {
	h, err := newHandler(w, cfg)
	if err != nil {
		return nil, err
	}
	return slog.New(Decorate(h, extractors...)), nil
}

func newHandler(w io.Writer, cfg Config) (slog.Handler, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(cfg.Format) {
	case "", "json":
		return slog.NewJSONHandler(w, opts), nil
	case "text":
		return slog.NewTextHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, cfg.Format)
	}
}

// NewNope returns a logger that discards everything.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
