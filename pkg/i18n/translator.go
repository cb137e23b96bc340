package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/intl/pkg/cache"
	"github.com/dmitrymomot/intl/pkg/icu"
	"github.com/dmitrymomot/intl/pkg/messages"
	"github.com/dmitrymomot/intl/pkg/sanitizer"
)

// Translator renders the messages of one locale and namespace.
//
// Failures never escape: every error is passed to OnError and the text
// from GetMessageFallback is returned instead. A Translator is immutable
// and may be shared by the goroutines of one request.
type Translator struct {
	name      string
	namespace string
	delim     string
	chain     []string
	catalog   *messages.Catalog

	locale   *icu.Locale
	formats  icu.Formats
	timeZone *time.Location
	missing  icu.MissingValuePolicy

	onError     func(*Error)
	getFallback func(FallbackInfo) string
	policy      *bluemonday.Policy
	descriptors cache.Cache[*icu.Message]
	log         *slog.Logger
	cacheID     string
}

// NewTranslator creates a translator from cfg. It fails only when the
// catalog or the locale is missing; a locale without formatting data
// degrades to en-US rules and is reported as ENVIRONMENT_FALLBACK.
func NewTranslator(cfg Config) (*Translator, error) {
	t, envErr, err := buildTranslator(cfg, "")
	if err != nil {
		return nil, err
	}
	if envErr != nil {
		t.report("", envErr)
	}
	return t, nil
}

// buildTranslator constructs a translator without reporting. envErr is the
// ENVIRONMENT_FALLBACK condition the caller must pass to report.
func buildTranslator(cfg Config, cacheID string) (_ *Translator, envErr, err error) {
	if cfg.Messages == nil {
		return nil, nil, ErrNilMessages
	}
	if cfg.Locale == "" {
		return nil, nil, ErrEmptyLocale
	}
	cfg = cfg.withDefaults()

	t := &Translator{
		name:        cfg.Locale,
		namespace:   cfg.Namespace,
		delim:       cfg.Delimiter,
		chain:       messages.Chain(cfg.Locale, cfg.FallbackLocale),
		catalog:     cfg.Messages,
		formats:     cfg.Formats,
		timeZone:    cfg.TimeZone,
		missing:     cfg.MissingValues,
		onError:     cfg.OnError,
		getFallback: cfg.GetMessageFallback,
		policy:      cfg.MarkupPolicy,
		descriptors: cfg.DescriptorCache,
		log:         cfg.Logger,
		cacheID:     cacheID,
	}
	if t.onError == nil {
		t.onError = t.logError
	}

	t.locale, envErr = icu.NewLocale(cfg.Locale, cfg.LocaleOptions...)
	return t, envErr, nil
}

// T renders key as plain text.
func (t *Translator) T(key string, values ...M) string {
	return t.TWithFormats(key, icu.Formats{}, values...)
}

// TWithFormats is T with named formats layered over the configured ones.
func (t *Translator) TWithFormats(key string, formats icu.Formats, values ...M) string {
	msg, err := t.message(key)
	if err != nil {
		return t.fallback(key, err)
	}
	out, err := msg.Format(mergeValues(values), t.options(formats))
	if err != nil {
		return t.fallback(key, err)
	}
	return out
}

// TranslateMessage renders key with a single value map.
func (t *Translator) TranslateMessage(key string, values map[string]any) string {
	return t.T(key, values)
}

// Rich renders key into text runs and nodes. Tags bound to an icu.RichTag
// and icu.Embed values stay nodes.
func (t *Translator) Rich(key string, values ...M) icu.Parts {
	return t.RichWithFormats(key, icu.Formats{}, values...)
}

// RichWithFormats is Rich with per-call named formats.
func (t *Translator) RichWithFormats(key string, formats icu.Formats, values ...M) icu.Parts {
	msg, err := t.message(key)
	if err != nil {
		return icu.Parts{{Text: t.fallback(key, err)}}
	}
	parts, err := msg.FormatRich(mergeValues(values), t.options(formats))
	if err != nil {
		return icu.Parts{{Text: t.fallback(key, err)}}
	}
	return parts
}

// Markup renders key for embedding as HTML. Every tag must be bound to an
// icu.MarkupTag. The result, fallback included, passes through the
// configured markup policy.
func (t *Translator) Markup(key string, values ...M) string {
	return t.MarkupWithFormats(key, icu.Formats{}, values...)
}

// MarkupWithFormats is Markup with per-call named formats.
func (t *Translator) MarkupWithFormats(key string, formats icu.Formats, values ...M) string {
	msg, err := t.message(key)
	if err != nil {
		return sanitizer.Sanitize(t.fallback(key, err), t.policy)
	}
	out, err := msg.FormatMarkup(mergeValues(values), t.options(formats))
	if err != nil {
		return sanitizer.Sanitize(t.fallback(key, err), t.policy)
	}
	return sanitizer.Sanitize(out, t.policy)
}

// Raw returns the unformatted value at key: a string for a message or a
// map[string]any for a namespace. A missing key is reported and the
// fallback text returned.
func (t *Translator) Raw(key string) any {
	node, err := t.lookup(key)
	if err != nil {
		return t.fallback(key, err)
	}
	return node.Value()
}

// Has reports whether key resolves to a message or namespace. It never
// reports an error.
func (t *Translator) Has(key string) bool {
	_, err := t.lookup(key)
	return err == nil
}

// Locale returns the requested locale.
func (t *Translator) Locale() string {
	return t.name
}

// Language returns the base language of the requested locale.
func (t *Translator) Language() string {
	return messages.BaseLanguage(t.name)
}

// Namespace returns the namespace prepended to keys.
func (t *Translator) Namespace() string {
	return t.namespace
}

func (t *Translator) lookup(key string) (*messages.Node, error) {
	if err := validateKey(key, t.delim); err != nil {
		return nil, err
	}
	node, _, err := t.catalog.Lookup(t.chain, messages.JoinKey(t.namespace, key, t.delim), t.delim)
	return node, err
}

func (t *Translator) message(key string) (*icu.Message, error) {
	if err := validateKey(key, t.delim); err != nil {
		return nil, err
	}
	src, _, err := t.catalog.LookupMessage(t.chain, messages.JoinKey(t.namespace, key, t.delim), t.delim)
	if err != nil {
		return nil, err
	}
	return parse(context.Background(), t.descriptors, src)
}

func (t *Translator) options(override icu.Formats) icu.Options {
	formats := t.formats
	if !override.IsZero() {
		formats = formats.Merge(override)
	}
	return icu.Options{
		Locale:        t.locale,
		Formats:       formats,
		TimeZone:      t.timeZone,
		MissingValues: t.missing,
	}
}

func (t *Translator) report(key string, err error) *Error {
	e := &Error{
		Code:      CodeOf(err),
		Key:       key,
		Namespace: t.namespace,
		Locale:    t.name,
		Err:       err,
	}
	t.onError(e)
	return e
}

func (t *Translator) fallback(key string, err error) string {
	e := t.report(key, err)
	return t.getFallback(FallbackInfo{Key: key, Namespace: t.namespace, Error: e})
}

func (t *Translator) logError(e *Error) {
	if !FirstReport(e) {
		return
	}
	attrs := []slog.Attr{
		slog.String("code", string(e.Code)),
		slog.String("locale", e.Locale),
		slog.String("error", e.Err.Error()),
	}
	if e.Key != "" {
		attrs = append(attrs, slog.String("key", e.Key), slog.String("namespace", e.Namespace))
	}
	if t.cacheID != "" {
		attrs = append(attrs, slog.String(requestCacheAttrKey, t.cacheID))
	}
	t.log.LogAttrs(context.Background(), slog.LevelWarn, "translation failed", attrs...)
}

// validateKey rejects keys with empty segments such as "a..b" or ".a".
func validateKey(key, delim string) error {
	if key == "" {
		return nil
	}
	for seg := range strings.SplitSeq(key, delim) {
		if seg == "" {
			return fmt.Errorf("%w: %q", messages.ErrInvalidKey, key)
		}
	}
	return nil
}

func mergeValues(values []M) M {
	switch len(values) {
	case 0:
		return nil
	case 1:
		return values[0]
	}
	merged := M{}
	for _, v := range values {
		maps.Copy(merged, v)
	}
	return merged
}
