//go:build integration

package messages_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/messages"
	"github.com/dmitrymomot/intl/pkg/redis"
)

func TestRedisSourceRoundTrip(t *testing.T) {
	t.Parallel()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/0"
	}
	ctx := context.Background()
	client, err := redis.Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	prefix := "intl-test:" + t.Name() + ":"
	src := messages.NewRedisSource(client, messages.WithRedisPrefix(prefix))
	t.Cleanup(func() {
		_ = client.Del(context.Background(), prefix+"en", prefix+"de").Err()
	})

	en, err := messages.FromMap(map[string]any{"About": map[string]any{"title": "About us"}})
	require.NoError(t, err)
	de, err := messages.FromMap(map[string]any{"About": map[string]any{"title": "Über uns"}})
	require.NoError(t, err)

	require.NoError(t, src.Store(ctx, "en", en))
	require.NoError(t, src.Store(ctx, "de", de))
	require.ErrorIs(t, src.Store(ctx, "", en), messages.ErrEmptyLocale)

	catalog, err := messages.Load(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, []string{"de", "en"}, catalog.Locales())

	node, locale, err := catalog.Lookup(messages.Chain("de-AT", "en"), "About.title", ".")
	require.NoError(t, err)
	assert.Equal(t, "de", locale)
	assert.Equal(t, "Über uns", node.Message())

	only, err := messages.NewRedisSource(client,
		messages.WithRedisPrefix(prefix),
		messages.WithRedisLocales("en", "fr"),
	).Load(ctx)
	require.NoError(t, err)
	assert.Len(t, only, 1)
	assert.Contains(t, only, "en")
}

func TestRedisSourceInvalidData(t *testing.T) {
	t.Parallel()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/0"
	}
	ctx := context.Background()
	client, err := redis.Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	prefix := "intl-test:" + t.Name() + ":"
	require.NoError(t, client.Set(ctx, prefix+"en", "{not json", 0).Err())
	t.Cleanup(func() { _ = client.Del(context.Background(), prefix+"en").Err() })

	_, err = messages.NewRedisSource(client, messages.WithRedisPrefix(prefix)).Load(ctx)
	require.ErrorIs(t, err, messages.ErrInvalidRedisData)
}
