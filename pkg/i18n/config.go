package i18n

import (
	"log/slog"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/intl/pkg/cache"
	"github.com/dmitrymomot/intl/pkg/icu"
	"github.com/dmitrymomot/intl/pkg/logger"
	"github.com/dmitrymomot/intl/pkg/messages"
)

// M holds interpolation values.
type M = icu.Values

// FallbackInfo is passed to GetMessageFallback when a message cannot be
// produced.
type FallbackInfo struct {
	Key       string
	Namespace string
	Error     *Error
}

// Config binds a translator to a locale, a catalog and its hooks.
// Only Locale and Messages are required.
type Config struct {
	Locale   string
	Messages *messages.Catalog

	// Namespace is prepended to every key.
	Namespace string
	// Consulted after Locale and its base language.
	FallbackLocale string
	// Defaults to messages.DefaultDelimiter.
	Delimiter string

	Formats       icu.Formats
	TimeZone      *time.Location
	MissingValues icu.MissingValuePolicy
	// Extra options for the formatting locale, e.g. custom plural rules.
	LocaleOptions []icu.LocaleOption

	// OnError observes every failure. Defaults to a warning on Logger.
	OnError func(*Error)
	// GetMessageFallback picks the text shown instead of a failed message.
	// Defaults to the dotted namespace.key path.
	GetMessageFallback func(FallbackInfo) string

	// MarkupPolicy sanitizes the output of Markup when set.
	MarkupPolicy *bluemonday.Policy

	Logger *slog.Logger

	// DescriptorCache holds parsed messages keyed by source text.
	// Defaults to a process-wide LRU.
	DescriptorCache cache.Cache[*icu.Message]
}

func (c Config) withDefaults() Config {
	if c.Delimiter == "" {
		c.Delimiter = messages.DefaultDelimiter
	}
	if c.Logger == nil {
		c.Logger = logger.NewNope()
	}
	if c.DescriptorCache == nil {
		c.DescriptorCache = defaultDescriptors()
	}
	if c.GetMessageFallback == nil {
		delim := c.Delimiter
		c.GetMessageFallback = func(info FallbackInfo) string {
			return messages.JoinKey(info.Namespace, info.Key, delim)
		}
	}
	return c
}
