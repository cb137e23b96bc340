package messages

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces catalog keys in Redis.
const DefaultRedisPrefix = "intl:catalog:"

// RedisSource reads one JSON-encoded tree per locale from Redis.
// Keys have the form {prefix}{locale}.
type RedisSource struct {
	client  redis.UniversalClient
	prefix  string
	locales []string
}

// RedisOption configures a RedisSource.
type RedisOption func(*RedisSource)

// WithRedisPrefix overrides DefaultRedisPrefix.
func WithRedisPrefix(prefix string) RedisOption {
	return func(s *RedisSource) {
		s.prefix = prefix
	}
}

// WithRedisLocales restricts loading to the given locales instead of
// scanning for every key under the prefix.
func WithRedisLocales(locales ...string) RedisOption {
	return func(s *RedisSource) {
		s.locales = locales
	}
}

// NewRedisSource creates a Redis-backed source.
// The client should be obtained from pkg/redis.Open.
func NewRedisSource(client redis.UniversalClient, opts ...RedisOption) *RedisSource {
	s := &RedisSource{client: client, prefix: DefaultRedisPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches every locale tree in a single MGET.
func (s *RedisSource) Load(ctx context.Context) (map[string]*Node, error) {
	locales := s.locales
	if len(locales) == 0 {
		var err error
		if locales, err = s.scanLocales(ctx); err != nil {
			return nil, err
		}
	}
	if len(locales) == 0 {
		return map[string]*Node{}, nil
	}

	keys := make([]string, len(locales))
	for i, l := range locales {
		keys[i] = s.prefix + l
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget: %w", err)
	}

	trees := make(map[string]*Node, len(locales))
	for i, v := range values {
		if v == nil {
			continue
		}
		raw, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: key %q", ErrInvalidRedisData, keys[i])
		}
		var tree Node
		if err := json.Unmarshal([]byte(raw), &tree); err != nil {
			return nil, errors.Join(fmt.Errorf("%w: key %q", ErrInvalidRedisData, keys[i]), err)
		}
		trees[locales[i]] = &tree
	}
	return trees, nil
}

// Store publishes a locale tree, replacing any previous value.
func (s *RedisSource) Store(ctx context.Context, locale string, tree *Node) error {
	if locale == "" {
		return ErrEmptyLocale
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+locale, data, 0).Err()
}

func (s *RedisSource) scanLocales(ctx context.Context) ([]string, error) {
	var locales []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		locales = append(locales, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return locales, nil
}
