// Package redis opens go-redis clients for the Redis catalog source and the
// rendered message cache.
//
// [Open] takes a redis:// or rediss:// URL plus functional options; [Connect]
// takes a [Config], usually parsed from REDIS_* environment variables. Both
// ping the server and retry with a linear backoff before giving up:
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"),
//		redis.WithPoolSize(20),
//		redis.WithRetry(5, time.Second),
//	)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// [Healthcheck] returns a closure for health.Checks.
//
// Connection failures wrap [ErrConnectionFailed]; malformed URLs wrap
// [ErrFailedToParseURL].
package redis
