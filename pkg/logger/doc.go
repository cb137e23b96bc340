// Package logger builds the slog loggers used by the intl services.
//
// Records are encoded as JSON (or text) and can additionally be forwarded
// to Sentry. [ContextExtractor] functions add request-scoped attributes
// such as the active locale to every record:
//
//	log, err := logger.New(os.Stdout, cfg, i18n.LocaleAttr, i18n.RequestCacheAttr)
//	if err != nil {
//		return err
//	}
//	log.InfoContext(ctx, "rendered", slog.String("key", key))
//	// {"level":"INFO","msg":"rendered","key":"About.title","locale":"de"}
//
// [NewWithSentry] sends errors to Sentry as issues and lower levels, down to
// Config.SentryMinLevel, as logs. It falls back to local logging when no DSN
// is configured.
//
// Libraries that take an optional logger default to [NewNope].
package logger
