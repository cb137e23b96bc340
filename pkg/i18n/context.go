package i18n

import (
	"context"
	"log/slog"
)

type (
	requestCacheKey struct{}
	localeKey       struct{}
)

const requestCacheAttrKey = "i18n_cache_id"

// WithRequestCache returns a context carrying c.
func WithRequestCache(ctx context.Context, c *RequestCache) context.Context {
	return context.WithValue(ctx, requestCacheKey{}, c)
}

// RequestCacheFromContext returns the cache installed by WithRequestCache.
func RequestCacheFromContext(ctx context.Context) (*RequestCache, bool) {
	c, ok := ctx.Value(requestCacheKey{}).(*RequestCache)
	return c, ok && c != nil
}

// WithLocale returns a context carrying the active locale.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, locale)
}

// LocaleFromContext returns the locale set by WithLocale.
func LocaleFromContext(ctx context.Context) (string, bool) {
	locale, ok := ctx.Value(localeKey{}).(string)
	return locale, ok && locale != ""
}

// LocaleAttr is a logger.ContextExtractor adding the active locale.
func LocaleAttr(ctx context.Context) (slog.Attr, bool) {
	if locale, ok := LocaleFromContext(ctx); ok {
		return slog.String("locale", locale), true
	}
	return slog.Attr{}, false
}

// RequestCacheAttr is a logger.ContextExtractor adding the request cache ID.
func RequestCacheAttr(ctx context.Context) (slog.Attr, bool) {
	if c, ok := RequestCacheFromContext(ctx); ok {
		return slog.String(requestCacheAttrKey, c.ID()), true
	}
	return slog.Attr{}, false
}
