package logger

import (
	"context"
	"io"
	"log/slog"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// NewWithSentry is New plus a Sentry destination. Without a DSN, or when
// the SDK fails to initialise, it logs to w only.
func NewWithSentry(w io.Writer, cfg Config, extractors ...ContextExtractor) (*slog.Logger, error) {
	local, err := newHandler(w, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.SentryDSN == "" {
		return slog.New(Decorate(local, extractors...)), nil
	}

	minLevel, err := ParseLevel(cfg.SentryMinLevel)
	if err != nil {
		return nil, err
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(local).Error("sentry init failed", slog.String("error", err.Error()))
		return slog.New(Decorate(local, extractors...)), nil
	}

	remote := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   sentryLevels(minLevel),
	}.NewSentryHandler(context.Background())

	return slog.New(Decorate(fanout{local, remote}, extractors...)), nil
}

func sentryLevels(floor slog.Level) []slog.Level {
	var levels []slog.Level
	for _, l := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l >= floor {
			levels = append(levels, l)
		}
	}
	return levels
}
