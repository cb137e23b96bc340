package i18n_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/i18n"
)

type countingLoader struct {
	base  i18n.Config
	calls atomic.Int32
}

func (l *countingLoader) LoadConfig(ctx context.Context, locale string) (i18n.Config, error) {
	l.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return i18n.Config{}, err
	}
	cfg := l.base
	cfg.Locale = locale
	return cfg, nil
}

func newLoader(t *testing.T) *countingLoader {
	t.Helper()
	return &countingLoader{base: i18n.Config{
		Messages:       testCatalog(t),
		FallbackLocale: "en",
		OnError:        func(*i18n.Error) {},
	}}
}

func TestRequestCacheMemoizes(t *testing.T) {
	t.Parallel()

	loader := newLoader(t)
	c := i18n.NewRequestCache(loader)
	ctx := context.Background()

	a, err := c.Translator(ctx, "de", "About")
	require.NoError(t, err)
	b, err := c.Translator(ctx, "de", "About")
	require.NoError(t, err)
	assert.Same(t, a, b)

	other, err := c.Translator(ctx, "de", "")
	require.NoError(t, err)
	assert.NotSame(t, a, other)

	// One config load per locale, shared by every namespace.
	assert.Equal(t, int32(1), loader.calls.Load())

	_, err = c.Translator(ctx, "en", "About")
	require.NoError(t, err)
	assert.Equal(t, int32(2), loader.calls.Load())

	assert.Equal(t, "Über uns", a.T("title"))
	assert.Equal(t, "Welcome", a.T("body"))
	assert.NotEmpty(t, c.ID())
}

func TestRequestCacheConcurrentGoroutines(t *testing.T) {
	t.Parallel()

	loader := newLoader(t)
	c := i18n.NewRequestCache(loader)

	const n = 16
	got := make([]*i18n.Translator, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Go(func() {
			tr, err := c.Translator(context.Background(), "en", "About")
			assert.NoError(t, err)
			got[i] = tr
		})
	}
	wg.Wait()

	for _, tr := range got[1:] {
		assert.Same(t, got[0], tr)
	}
	assert.Equal(t, int32(1), loader.calls.Load())
}

func TestRequestCacheErrorHookReentry(t *testing.T) {
	t.Parallel()

	catalog := testCatalog(t)
	var (
		c     *i18n.RequestCache
		inner *i18n.Translator
	)
	c = i18n.NewRequestCache(i18n.ConfigLoaderFunc(func(ctx context.Context, locale string) (i18n.Config, error) {
		return i18n.Config{
			Locale:         locale,
			Messages:       catalog,
			FallbackLocale: "en",
			OnError: func(e *i18n.Error) {
				if e.Code != i18n.CodeEnvironmentFallback {
					return
				}
				tr, err := c.Translator(ctx, locale, "About")
				assert.NoError(t, err)
				inner = tr
			},
		}, nil
	}))

	done := make(chan *i18n.Translator, 1)
	go func() {
		tr, err := c.Translator(context.Background(), "sw", "About")
		assert.NoError(t, err)
		done <- tr
	}()

	select {
	case tr := <-done:
		require.NotNil(t, tr)
		assert.Same(t, tr, inner)
	case <-time.After(5 * time.Second):
		t.Fatal("translator construction waited on its own error hook")
	}
}

func TestRequestCacheSlowLoadDoesNotBlockCachedLocales(t *testing.T) {
	t.Parallel()

	catalog := testCatalog(t)
	release := make(chan struct{})
	started := make(chan struct{})
	c := i18n.NewRequestCache(i18n.ConfigLoaderFunc(func(ctx context.Context, locale string) (i18n.Config, error) {
		if locale == "de" {
			close(started)
			<-release
		}
		return i18n.Config{Locale: locale, Messages: catalog, OnError: func(*i18n.Error) {}}, nil
	}))
	ctx := context.Background()

	en, err := c.Translator(ctx, "en", "About")
	require.NoError(t, err)

	slow := make(chan error, 1)
	go func() {
		_, err := c.Translator(ctx, "de", "About")
		slow <- err
	}()
	<-started

	again, err := c.Translator(ctx, "en", "About")
	require.NoError(t, err)
	assert.Same(t, en, again)

	close(release)
	require.NoError(t, <-slow)
}

func TestRequestCacheIsolation(t *testing.T) {
	t.Parallel()

	loader := newLoader(t)
	var wg sync.WaitGroup
	results := map[string]*i18n.Translator{}
	var mu sync.Mutex

	for _, locale := range []string{"en", "de"} {
		wg.Go(func() {
			ctx := i18n.WithRequestCache(context.Background(), i18n.NewRequestCache(loader))
			ctx = i18n.WithLocale(ctx, locale)

			tr, err := i18n.GetTranslations(ctx, "About")
			assert.NoError(t, err)
			again, err := i18n.GetTranslations(ctx, "About")
			assert.NoError(t, err)
			assert.Same(t, tr, again)

			mu.Lock()
			results[locale] = tr
			mu.Unlock()
		})
	}
	wg.Wait()

	require.Len(t, results, 2)
	assert.NotSame(t, results["en"], results["de"])
	assert.Equal(t, "en", results["en"].Locale())
	assert.Equal(t, "de", results["de"].Locale())
	assert.Equal(t, "About us", results["en"].T("title"))
	assert.Equal(t, "Über uns", results["de"].T("title"))
}

func TestGetTranslationsWithOptions(t *testing.T) {
	t.Parallel()

	ctx := i18n.WithRequestCache(context.Background(), i18n.NewRequestCache(newLoader(t)))
	ctx = i18n.WithLocale(ctx, "en")

	tr, err := i18n.GetTranslationsWithOptions(ctx, i18n.TranslationsOptions{Locale: "de", Namespace: "About"})
	require.NoError(t, err)
	assert.Equal(t, "de", tr.Locale())
	assert.Equal(t, "About", tr.Namespace())

	def, err := i18n.GetTranslationsWithOptions(ctx, i18n.TranslationsOptions{})
	require.NoError(t, err)
	assert.Equal(t, "en", def.Locale())
	assert.Equal(t, "Just text", def.T("plain"))
}

func TestGetTranslationsErrors(t *testing.T) {
	t.Parallel()

	t.Run("no cache in context", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.GetTranslations(context.Background(), "")
		require.ErrorIs(t, err, i18n.ErrNoRequestCache)
	})

	t.Run("nil loader", func(t *testing.T) {
		t.Parallel()
		ctx := i18n.WithRequestCache(context.Background(), i18n.NewRequestCache(nil))
		_, err := i18n.GetTranslationsWithOptions(ctx, i18n.TranslationsOptions{Locale: "en"})
		require.ErrorIs(t, err, i18n.ErrNilLoader)
	})

	t.Run("loader error is not cached", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("store down")
		var fail atomic.Bool
		fail.Store(true)
		loader := i18n.ConfigLoaderFunc(func(ctx context.Context, locale string) (i18n.Config, error) {
			if fail.Load() {
				return i18n.Config{}, boom
			}
			return i18n.Config{Messages: testCatalog(t), OnError: func(*i18n.Error) {}}, nil
		})
		c := i18n.NewRequestCache(loader)

		_, err := c.Translator(context.Background(), "en", "")
		require.ErrorIs(t, err, boom)
		require.ErrorIs(t, err, i18n.ErrLoadConfig)

		fail.Store(false)
		tr, err := c.Translator(context.Background(), "en", "")
		require.NoError(t, err)
		assert.Equal(t, "en", tr.Locale())
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		loader := newLoader(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := i18n.NewRequestCache(loader).Translator(ctx, "en", "")
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, int32(0), loader.calls.Load())
	})

	t.Run("missing locale", func(t *testing.T) {
		t.Parallel()
		ctx := i18n.WithRequestCache(context.Background(), i18n.NewRequestCache(i18n.StaticConfig(i18n.Config{Messages: testCatalog(t)})))
		_, err := i18n.GetTranslations(ctx, "")
		require.ErrorIs(t, err, i18n.ErrEmptyLocale)
	})
}

func TestStaticConfig(t *testing.T) {
	t.Parallel()

	loader := i18n.StaticConfig(i18n.Config{Locale: "en", Namespace: "About"})

	cfg, err := loader.LoadConfig(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Locale)

	cfg, err = loader.LoadConfig(context.Background(), "de")
	require.NoError(t, err)
	assert.Equal(t, "de", cfg.Locale)
	assert.Equal(t, "About", cfg.Namespace)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	loader := newLoader(t)
	var ids []string
	handler := i18n.Middleware(loader)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := i18n.RequestCacheFromContext(r.Context())
		require.True(t, ok)
		ids = append(ids, c.ID())

		tr, err := i18n.GetTranslations(i18n.WithLocale(r.Context(), "de"), "About")
		require.NoError(t, err)
		_, _ = w.Write([]byte(tr.T("title")))
	}))

	for range 2 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "Über uns", rec.Body.String())
	}

	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
	assert.Equal(t, int32(2), loader.calls.Load())
}

func TestContextAttrs(t *testing.T) {
	t.Parallel()

	_, ok := i18n.LocaleAttr(context.Background())
	assert.False(t, ok)
	_, ok = i18n.RequestCacheAttr(context.Background())
	assert.False(t, ok)

	c := i18n.NewRequestCache(nil)
	ctx := i18n.WithLocale(i18n.WithRequestCache(context.Background(), c), "pl")

	attr, ok := i18n.LocaleAttr(ctx)
	require.True(t, ok)
	assert.Equal(t, "pl", attr.Value.String())

	attr, ok = i18n.RequestCacheAttr(ctx)
	require.True(t, ok)
	assert.Equal(t, c.ID(), attr.Value.String())

	locale, ok := i18n.LocaleFromContext(i18n.WithLocale(context.Background(), ""))
	assert.False(t, ok)
	assert.Empty(t, locale)
}
