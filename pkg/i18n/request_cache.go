package i18n

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// ConfigLoader produces the translator configuration of a locale, e.g. by
// reading the catalog from a store. It may block and should honour ctx.
// The empty locale asks for the loader's default.
type ConfigLoader interface {
	LoadConfig(ctx context.Context, locale string) (Config, error)
}

// ConfigLoaderFunc adapts a function to ConfigLoader.
type ConfigLoaderFunc func(ctx context.Context, locale string) (Config, error)

// LoadConfig calls f(ctx, locale).
func (f ConfigLoaderFunc) LoadConfig(ctx context.Context, locale string) (Config, error) {
	return f(ctx, locale)
}

// StaticConfig returns a loader that hands out base with Locale set to the
// requested locale. The empty locale keeps base.Locale.
func StaticConfig(base Config) ConfigLoader {
	return ConfigLoaderFunc(func(ctx context.Context, locale string) (Config, error) {
		if err := ctx.Err(); err != nil {
			return Config{}, err
		}
		cfg := base
		if locale != "" {
			cfg.Locale = locale
		}
		return cfg, nil
	})
}

type translatorKey struct {
	locale    string
	namespace string
}

// RequestCache memoizes loaded configs and translators for one request.
// Create one per request and never share it between requests.
//
// Goroutines of the same request share one load per locale and one
// translator per (locale, namespace). Loads and the construction-time
// OnError report run without the cache lock, so OnError may call
// GetTranslations. A ConfigLoader must not ask the same cache for the
// locale it is loading.
type RequestCache struct {
	id     string
	loader ConfigLoader

	mu          sync.Mutex
	configs     map[string]Config
	translators map[translatorKey]*Translator

	configFlight     singleflight.Group
	translatorFlight singleflight.Group
}

// NewRequestCache creates an empty cache backed by loader.
func NewRequestCache(loader ConfigLoader) *RequestCache {
	return &RequestCache{
		id:          uuid.NewString(),
		loader:      loader,
		configs:     map[string]Config{},
		translators: map[translatorKey]*Translator{},
	}
}

// ID identifies the cache in logs.
func (c *RequestCache) ID() string {
	return c.id
}

// Config returns the configuration of locale, loading it on first use.
func (c *RequestCache) Config(ctx context.Context, locale string) (Config, error) {
	c.mu.Lock()
	cfg, ok := c.configs[locale]
	c.mu.Unlock()
	if ok {
		return cfg, nil
	}
	if c.loader == nil {
		return Config{}, ErrNilLoader
	}
	if err := ctx.Err(); err != nil {
		return Config{}, errors.Join(ErrLoadConfig, err)
	}

	v, err, _ := c.configFlight.Do(locale, func() (any, error) {
		c.mu.Lock()
		cfg, ok := c.configs[locale]
		c.mu.Unlock()
		if ok {
			return cfg, nil
		}

		cfg, err := c.loader.LoadConfig(ctx, locale)
		if err != nil {
			return Config{}, errors.Join(ErrLoadConfig, err)
		}
		if cfg.Locale == "" {
			cfg.Locale = locale
		}

		c.mu.Lock()
		c.configs[locale] = cfg
		c.mu.Unlock()
		return cfg, nil
	})
	if err != nil {
		return Config{}, err
	}
	return v.(Config), nil
}

// Translator returns the translator for (locale, namespace), building it
// from the locale's config on first use. Repeated calls return the same
// instance.
func (c *RequestCache) Translator(ctx context.Context, locale, namespace string) (*Translator, error) {
	key := translatorKey{locale: locale, namespace: namespace}
	if t, ok := c.cached(key); ok {
		return t, nil
	}

	v, err, _ := c.translatorFlight.Do(locale+"\x00"+namespace, func() (any, error) {
		if t, ok := c.cached(key); ok {
			return t, nil
		}

		cfg, err := c.Config(ctx, locale)
		if err != nil {
			return nil, err
		}
		cfg.Namespace = namespace

		t, envErr, err := buildTranslator(cfg, c.id)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.translators[key] = t
		c.mu.Unlock()

		// Reported after the translator is visible, so a hook that asks
		// for the same translator gets it instead of waiting on itself.
		if envErr != nil {
			t.report("", envErr)
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Translator), nil
}

func (c *RequestCache) cached(key translatorKey) (*Translator, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.translators[key]
	return t, ok
}

// TranslationsOptions selects the translator returned by
// GetTranslationsWithOptions. An empty Locale means the context locale.
type TranslationsOptions struct {
	Locale    string
	Namespace string
}

// GetTranslations returns the request's translator for namespace in the
// context locale.
func GetTranslations(ctx context.Context, namespace string) (*Translator, error) {
	return GetTranslationsWithOptions(ctx, TranslationsOptions{Namespace: namespace})
}

// GetTranslationsWithOptions returns the request's translator for an
// explicit locale and namespace.
func GetTranslationsWithOptions(ctx context.Context, opts TranslationsOptions) (*Translator, error) {
	c, ok := RequestCacheFromContext(ctx)
	if !ok {
		return nil, ErrNoRequestCache
	}
	locale := opts.Locale
	if locale == "" {
		locale, _ = LocaleFromContext(ctx)
	}
	return c.Translator(ctx, locale, opts.Namespace)
}
