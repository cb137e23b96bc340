package health

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/dmitrymomot/intl/pkg/logger"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"

	DefaultTimeout = 5 * time.Second
)

// CheckFunc probes one dependency, e.g. redis.Healthcheck or db.Healthcheck.
type CheckFunc func(ctx context.Context) error

// Checks names the probes run by Run.
type Checks map[string]CheckFunc

// Report is the outcome of a run.
type Report struct {
	Status string            `json:"status"`
	Checks map[string]Result `json:"checks,omitempty"`
}

// Result is the outcome of one probe.
type Result struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Healthy reports whether every probe passed.
func (r Report) Healthy() bool {
	return r.Status == StatusHealthy
}

type options struct {
	timeout time.Duration
	log     *slog.Logger
}

// Option configures Run and the handlers.
type Option func(*options)

// WithTimeout bounds the whole run.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger logs failed probes.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{timeout: DefaultTimeout, log: logger.NewNope()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Run executes all checks concurrently under a shared timeout.
func Run(ctx context.Context, checks Checks, opts ...Option) Report {
	if len(checks) == 0 {
		return Report{Status: StatusHealthy}
	}
	o := newOptions(opts)

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]Result, len(checks))
		status  = StatusHealthy
	)
	for _, name := range slices.Sorted(maps.Keys(checks)) {
		check := checks[name]
		wg.Go(func() {
			res := Result{Status: StatusHealthy}
			if err := check(ctx); err != nil {
				res = Result{Status: StatusUnhealthy, Error: err.Error()}
				o.log.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.String("error", err.Error()))
			}

			mu.Lock()
			defer mu.Unlock()
			results[name] = res
			if res.Status != StatusHealthy {
				status = StatusUnhealthy
			}
		})
	}
	wg.Wait()

	return Report{Status: status, Checks: results}
}
