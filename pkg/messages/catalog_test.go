package messages_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/messages"
)

func mustTree(t *testing.T, data map[string]any) *messages.Node {
	t.Helper()
	tree, err := messages.FromMap(data)
	require.NoError(t, err)
	return tree
}

func TestCatalog_Lookup(t *testing.T) {
	t.Parallel()

	catalog := messages.NewCatalog(map[string]*messages.Node{
		"en": mustTree(t, map[string]any{"hello": "Hello", "only_en": "English only"}),
		"de": mustTree(t, map[string]any{"hello": "Hallo"}),
	})

	t.Run("finds key in requested locale", func(t *testing.T) {
		t.Parallel()
		n, locale, err := catalog.Lookup([]string{"de", "en"}, "hello", ".")
		require.NoError(t, err)
		require.Equal(t, "de", locale)
		require.Equal(t, "Hallo", n.Message())
	})

	t.Run("falls back to later locales", func(t *testing.T) {
		t.Parallel()
		n, locale, err := catalog.Lookup(messages.Chain("de-AT", "en"), "only_en", ".")
		require.NoError(t, err)
		require.Equal(t, "en", locale)
		require.Equal(t, "English only", n.Message())
	})

	t.Run("uses base language", func(t *testing.T) {
		t.Parallel()
		n, locale, err := catalog.Lookup(messages.Chain("de-AT", ""), "hello", ".")
		require.NoError(t, err)
		require.Equal(t, "de", locale)
		require.Equal(t, "Hallo", n.Message())
	})

	t.Run("reports missing message", func(t *testing.T) {
		t.Parallel()
		_, _, err := catalog.Lookup([]string{"de"}, "nope", ".")
		require.ErrorIs(t, err, messages.ErrMissingMessage)
	})

	t.Run("reports missing locale", func(t *testing.T) {
		t.Parallel()
		_, _, err := catalog.Lookup([]string{"fr"}, "hello", ".")
		require.ErrorIs(t, err, messages.ErrMissingMessage)
	})
}

func TestCatalog_LookupMessage(t *testing.T) {
	t.Parallel()

	catalog := messages.NewCatalog(map[string]*messages.Node{
		"en": mustTree(t, map[string]any{"nav": "Navigation", "hello": "Hello"}),
		"de": mustTree(t, map[string]any{"nav": map[string]any{"home": "Start"}}),
	})

	t.Run("skips namespace in earlier locale", func(t *testing.T) {
		t.Parallel()
		msg, locale, err := catalog.LookupMessage([]string{"de", "en"}, "nav", ".")
		require.NoError(t, err)
		require.Equal(t, "en", locale)
		require.Equal(t, "Navigation", msg)
	})

	t.Run("namespace everywhere is not a message", func(t *testing.T) {
		t.Parallel()
		_, _, err := catalog.LookupMessage([]string{"de"}, "nav", ".")
		require.ErrorIs(t, err, messages.ErrNotMessage)
	})

	t.Run("falls back for missing keys", func(t *testing.T) {
		t.Parallel()
		msg, locale, err := catalog.LookupMessage(messages.Chain("de-AT", "en"), "hello", ".")
		require.NoError(t, err)
		require.Equal(t, "en", locale)
		require.Equal(t, "Hello", msg)
	})

	t.Run("reports missing message", func(t *testing.T) {
		t.Parallel()
		_, _, err := catalog.LookupMessage([]string{"fr"}, "hello", ".")
		require.ErrorIs(t, err, messages.ErrMissingMessage)
	})
}

func TestCatalog_With(t *testing.T) {
	t.Parallel()

	base := messages.NewCatalog(map[string]*messages.Node{
		"en": mustTree(t, map[string]any{"a": "A"}),
	})
	next := base.With("en", mustTree(t, map[string]any{"b": "B"})).
		With("pl", mustTree(t, map[string]any{"a": "PL"}))

	require.Equal(t, []string{"en"}, base.Locales())
	require.Equal(t, []string{"en", "pl"}, next.Locales())

	tree, ok := next.Tree("en")
	require.True(t, ok)
	require.Equal(t, map[string]any{"a": "A", "b": "B"}, tree.Value())
}

func TestChain(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"de-AT", "de", "en"}, messages.Chain("de-AT", "en"))
	require.Equal(t, []string{"en"}, messages.Chain("en", "en"))
	require.Equal(t, []string{"pt_BR", "pt"}, messages.Chain("pt_BR", ""))
	require.Empty(t, messages.Chain("", ""))
}
