// Package health runs dependency probes for the liveness and readiness
// endpoints of the translation server.
//
// [LivenessHandler] always answers 200. [ReadinessHandler] runs a set of
// [Checks] concurrently on every request and answers 503 when any of them
// fails:
//
//	r.Get("/healthz", health.LivenessHandler())
//	r.Get("/readyz", health.ReadinessHandler(health.Checks{
//		"postgres": db.Healthcheck(pool),
//		"redis":    redis.Healthcheck(client),
//	}, health.WithTimeout(3*time.Second), health.WithLogger(log)))
//
// Both handlers respond with JSON:
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "postgres": {"status": "healthy"},
//	    "redis": {"status": "unhealthy", "error": "connection refused"}
//	  }
//	}
//
// [Run] performs the same checks without HTTP. All checks share one
// deadline of [DefaultTimeout] unless [WithTimeout] says otherwise.
package health
