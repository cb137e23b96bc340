package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/icu"
	"github.com/dmitrymomot/intl/pkg/logger"
	"github.com/dmitrymomot/intl/pkg/messages"
	"github.com/dmitrymomot/intl/pkg/sanitizer"
)

func TestTranslatorConfig(t *testing.T) {
	t.Parallel()

	formats := filepath.Join(t.TempDir(), "formats.yaml")
	require.NoError(t, os.WriteFile(formats, []byte(`
number:
  price:
    style: currency
    currency: EUR
dateTime:
  short:
    dateStyle: short
`), 0o600))

	catalog := messages.NewCatalog(nil)
	cfg := Config{
		FallbackLocale:      "en",
		MissingValues:       "raw",
		MarkupPolicy:        sanitizer.PolicyStrict,
		TimeZone:            "Europe/Berlin",
		FormatsFile:         formats,
		DescriptorCacheSize: 8,
	}

	tc, err := cfg.translatorConfig(catalog, logger.NewNope())
	require.NoError(t, err)
	assert.Same(t, catalog, tc.Messages)
	assert.Equal(t, "en", tc.FallbackLocale)
	assert.Equal(t, icu.MissingValueRaw, tc.MissingValues)
	assert.NotNil(t, tc.MarkupPolicy)
	assert.NotNil(t, tc.DescriptorCache)
	require.NotNil(t, tc.TimeZone)
	assert.Equal(t, "Europe/Berlin", tc.TimeZone.String())
	assert.Equal(t, icu.NumberFormat{Style: "currency", Currency: "EUR"}, tc.Formats.Number["price"])
	assert.Equal(t, "short", tc.Formats.DateTime["short"].DateStyle)
}

func TestTranslatorConfigErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{name: "missing values", cfg: Config{MissingValues: "ignore"}, want: errMissingValues},
		{name: "markup policy", cfg: Config{MarkupPolicy: "paranoid"}, want: sanitizer.ErrUnknownPolicy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.cfg.translatorConfig(messages.NewCatalog(nil), logger.NewNope())
			require.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("time zone", func(t *testing.T) {
		t.Parallel()
		_, err := Config{TimeZone: "Mars/Olympus"}.translatorConfig(messages.NewCatalog(nil), logger.NewNope())
		require.Error(t, err)
	})

	t.Run("formats file", func(t *testing.T) {
		t.Parallel()
		_, err := Config{FormatsFile: filepath.Join(t.TempDir(), "missing.yaml")}.translatorConfig(messages.NewCatalog(nil), logger.NewNope())
		require.Error(t, err)
	})
}

func TestCatalogSourcesUnknown(t *testing.T) {
	t.Parallel()

	a := &app{cfg: Config{Sources: []string{"fs", "mongo"}}, log: logger.NewNope()}
	_, err := a.catalogSources(&deps{})
	require.ErrorIs(t, err, errUnknownSource)
}

func TestOpenCatalogFromDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "de"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{"greeting": "Hello {name}!"}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "de", "common.yaml"), []byte("greeting: \"Hallo {name}!\"\n"), 0o600))

	a := &app{cfg: Config{Sources: []string{"fs"}, MessagesDir: dir}, log: logger.NewNope()}
	catalog, d, err := a.openCatalog(t.Context())
	require.NoError(t, err)
	defer d.Close()

	assert.ElementsMatch(t, []string{"en", "de"}, catalog.Locales())
	tree, ok := catalog.Tree("de")
	require.True(t, ok)
	msg, err := messages.ResolveMessage(tree, "common.greeting", messages.DefaultDelimiter)
	require.NoError(t, err)
	assert.Equal(t, "Hallo {name}!", msg)
}
