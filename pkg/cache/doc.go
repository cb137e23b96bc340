// Package cache provides a generic Cache interface with an in-memory LRU
// and a Redis implementation.
//
// The LRU holds parsed message descriptors for the lifetime of the process;
// the Redis cache shares rendered translations between service instances.
//
//	descriptors := cache.NewLRU[*icu.Message](1024)
//	msg, err := cache.GetOrSet(ctx, descriptors, src, -1, func(context.Context) (*icu.Message, error) {
//		return icu.Parse(src)
//	})
//
// # TTL
//
// Set and GetOrSet take a ttl:
//   - positive: the entry expires after ttl
//   - zero: the cache default applies (none for LRU unless [WithTTL] is used, [DefaultRedisTTL] for Redis)
//   - negative: the entry never expires
//
// # Stampede Protection
//
// [GetOrSet] collapses concurrent misses for one key with
// golang.org/x/sync/singleflight. Each cache owns its own group.
//
// # Redis
//
//	client := redis.MustOpen(ctx, os.Getenv("REDIS_URL"))
//	rendered := cache.NewRedis[string](client, nil,
//		cache.WithPrefix("intl:render"),
//		cache.WithRedisTTL(10*time.Minute),
//	)
//
// Clear removes only the keys under the prefix (using SCAN).
package cache
