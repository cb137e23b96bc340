package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/intl/pkg/db"
	"github.com/dmitrymomot/intl/pkg/health"
	"github.com/dmitrymomot/intl/pkg/messages"
	"github.com/dmitrymomot/intl/pkg/redis"
)

// Catalog source names.
const (
	sourceFS       = "fs"
	sourceRedis    = "redis"
	sourcePostgres = "postgres"
	sourceS3       = "s3"
)

// deps holds the backend clients opened for a command.
type deps struct {
	redis goredis.UniversalClient
	pool  *pgxpool.Pool
	dbCfg db.Config
	s3    *s3.Client
}

// connect opens a client for every named backend. The fs source needs none.
func (a *app) connect(ctx context.Context, names ...string) (*deps, error) {
	d := &deps{}
	for _, name := range names {
		if err := a.open(ctx, d, normalizeSource(name)); err != nil {
			d.Close()
			return nil, err
		}
	}
	return d, nil
}

func (a *app) open(ctx context.Context, d *deps, name string) error {
	switch name {
	case sourceFS:
		return nil
	case sourceRedis:
		if d.redis != nil {
			return nil
		}
		client, err := redis.Connect(ctx, a.cfg.Redis)
		if err != nil {
			return err
		}
		d.redis = client
	case sourcePostgres:
		if d.pool != nil {
			return nil
		}
		cfg, err := loadDBConfig()
		if err != nil {
			return err
		}
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		d.pool, d.dbCfg = pool, cfg
	case sourceS3:
		if a.cfg.S3.Bucket == "" {
			return errMissingBucket
		}
		if d.s3 == nil {
			d.s3 = messages.NewS3Client(a.cfg.S3)
		}
	default:
		return fmt.Errorf("%w: %q", errUnknownSource, name)
	}
	a.log.DebugContext(ctx, "backend connected", "backend", name)
	return nil
}

// Close releases every opened client.
func (d *deps) Close() {
	if d.redis != nil {
		_ = d.redis.Close()
	}
	if d.pool != nil {
		d.pool.Close()
	}
}

// checks returns readiness probes for the opened backends.
func (d *deps) checks() health.Checks {
	checks := health.Checks{}
	if d.redis != nil {
		checks[sourceRedis] = redis.Healthcheck(d.redis)
	}
	if d.pool != nil {
		checks[sourcePostgres] = db.Healthcheck(d.pool)
	}
	return checks
}

// catalogSources builds the configured sources in merge order: later
// sources override earlier ones.
func (a *app) catalogSources(d *deps) ([]messages.Source, error) {
	sources := make([]messages.Source, 0, len(a.cfg.Sources))
	for _, name := range a.cfg.Sources {
		switch normalizeSource(name) {
		case sourceFS:
			sources = append(sources, messages.NewFSSource(os.DirFS(a.cfg.MessagesDir)))
		case sourceRedis:
			sources = append(sources, messages.NewRedisSource(d.redis, messages.WithRedisPrefix(a.cfg.RedisCatalogPrefix)))
		case sourcePostgres:
			sources = append(sources, messages.NewPostgresSource(d.pool, a.cfg.PostgresTable))
		case sourceS3:
			sources = append(sources, messages.NewS3Source(d.s3, a.cfg.S3.Bucket, a.cfg.S3.Prefix))
		default:
			return nil, fmt.Errorf("%w: %q", errUnknownSource, name)
		}
	}
	return sources, nil
}

// openCatalog connects the configured sources plus any extra backends and
// loads the merged catalog. The caller closes the returned deps.
func (a *app) openCatalog(ctx context.Context, extra ...string) (*messages.Catalog, *deps, error) {
	d, err := a.connect(ctx, slices.Concat(a.cfg.Sources, extra)...)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := a.loadCatalog(ctx, d)
	if err != nil {
		d.Close()
		return nil, nil, err
	}
	return catalog, d, nil
}

func (a *app) loadCatalog(ctx context.Context, d *deps) (*messages.Catalog, error) {
	sources, err := a.catalogSources(d)
	if err != nil {
		return nil, err
	}
	catalog, err := messages.Load(ctx, sources...)
	if err != nil {
		return nil, err
	}
	a.log.InfoContext(ctx, "catalog loaded",
		"sources", strings.Join(a.cfg.Sources, ","),
		"locales", catalog.Locales(),
	)
	return catalog, nil
}

func normalizeSource(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
