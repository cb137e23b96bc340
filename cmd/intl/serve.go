package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/intl/pkg/cache"
	"github.com/dmitrymomot/intl/pkg/health"
	"github.com/dmitrymomot/intl/pkg/i18n"
	"github.com/dmitrymomot/intl/pkg/icu"
	"github.com/dmitrymomot/intl/pkg/messages"
)

// Query parameters of GET /v1/{locale}/messages/{key} that are not
// interpolation values.
const (
	paramNamespace = "ns"
	paramMode      = "mode"
	paramTags      = "tags"
)

const renderCachePrefix = "intl:render:"

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered messages over HTTP",
		Long: `serve exposes the catalog as JSON:

  GET /v1/{locale}/messages?ns=About          raw messages of a namespace
  GET /v1/{locale}/messages/{key}?name=Jane   one rendered message
  GET /healthz, /readyz                       probes

The mode parameter selects text (default), markup, rich or markdown
output; tags lists the tag names kept in the output.

Rendered messages are cached in Redis when REDIS_URL is set and in memory
otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	var extra []string
	if a.cfg.Redis.URL != "" {
		extra = append(extra, sourceRedis)
	}
	catalog, d, err := a.openCatalog(ctx, extra...)
	if err != nil {
		return err
	}
	defer d.Close()

	base, err := a.cfg.translatorConfig(catalog, a.log)
	if err != nil {
		return err
	}

	var renders cache.Cache[renderResult]
	if d.redis != nil {
		renders = cache.NewRedis[renderResult](d.redis, cache.JSON[renderResult]{},
			cache.WithPrefix(renderCachePrefix),
			cache.WithRedisTTL(a.cfg.Server.RenderCacheTTL),
		)
	} else {
		renders = cache.NewLRU[renderResult](a.cfg.Server.RenderCacheSize,
			cache.WithTTL[renderResult](a.cfg.Server.RenderCacheTTL),
		)
	}

	s := newServer(base, renders, a.cfg.Server.RenderCacheTTL, a.log)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if expr := a.cfg.Server.ReloadSchedule; expr != "" {
		schedule, err := parseSchedule(expr)
		if err != nil {
			return err
		}
		go s.reloadOn(ctx, schedule, func(ctx context.Context) (*messages.Catalog, error) {
			return a.loadCatalog(ctx, d)
		})
	}

	return runServer(ctx, serverConfig{
		handler:         s.routes(d.checks()),
		address:         a.cfg.Server.Addr,
		shutdownTimeout: a.cfg.Server.ShutdownTimeout,
		logger:          a.log,
	})
}

// renderResult is the cached outcome of one render. Message holds the JSON
// encoding of the text or, in rich mode, of the parts.
type renderResult struct {
	Message json.RawMessage `json:"message"`
	Error   i18n.Code       `json:"error,omitempty"`
}

type server struct {
	base    i18n.Config
	catalog atomic.Pointer[messages.Catalog]
	renders cache.Cache[renderResult]
	ttl     time.Duration
	log     *slog.Logger
}

func newServer(base i18n.Config, renders cache.Cache[renderResult], ttl time.Duration, log *slog.Logger) *server {
	s := &server{base: base, renders: renders, ttl: ttl, log: log}
	s.catalog.Store(base.Messages)
	return s
}

func (s *server) routes(checks health.Checks) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", health.LivenessHandler())
	r.Get("/readyz", health.ReadinessHandler(checks, health.WithLogger(s.log)))

	r.Route("/v1/{locale}", func(r chi.Router) {
		r.Use(withLocaleParam)
		r.Use(withFailures)
		r.Use(i18n.Middleware(i18n.ConfigLoaderFunc(s.loadConfig)))

		r.Get("/messages", s.handleNamespace)
		r.Get("/messages/{key}", s.handleMessage)
	})
	return r
}

// loadConfig binds the base config to the current catalog and routes
// translator errors to the request's failure list.
func (s *server) loadConfig(ctx context.Context, locale string) (i18n.Config, error) {
	cfg := s.base
	cfg.Locale = locale
	cfg.Messages = s.catalog.Load()

	f, _ := ctx.Value(failuresKey{}).(*failures)
	cfg.OnError = func(e *i18n.Error) {
		if i18n.FirstReport(e) {
			s.log.WarnContext(ctx, "message failed",
				"code", e.Code,
				"key", e.Key,
				"namespace", e.Namespace,
				"error", e.Err,
			)
		}
		if f != nil {
			f.add(e)
		}
	}
	return cfg, nil
}

func (s *server) handleNamespace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ns := r.URL.Query().Get(paramNamespace)
	locale, _ := i18n.LocaleFromContext(ctx)

	if ns == "" {
		tree, ok := s.catalog.Load().Tree(locale)
		if !ok {
			respondError(w, http.StatusNotFound, "unknown locale")
			return
		}
		respond(w, http.StatusOK, map[string]any{"locale": locale, "messages": tree})
		return
	}

	tr, err := i18n.GetTranslations(ctx, "")
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !tr.Has(ns) {
		respondError(w, http.StatusNotFound, "unknown namespace")
		return
	}
	respond(w, http.StatusOK, map[string]any{
		"locale":    locale,
		"namespace": ns,
		"messages":  tr.Raw(ns),
	})
}

func (s *server) handleMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := chi.URLParam(r, "key")
	query := r.URL.Query()

	ns := query.Get(paramNamespace)
	mode := query.Get(paramMode)
	if mode == "" {
		mode = modeText
	}
	if err := validMode(mode); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	tags := strings.Split(query.Get(paramTags), ",")
	query.Del(paramNamespace)
	query.Del(paramMode)
	query.Del(paramTags)

	tr, err := i18n.GetTranslations(ctx, ns)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !tr.Has(key) {
		respondError(w, http.StatusNotFound, "unknown message")
		return
	}

	cacheKey := strings.Join([]string{
		tr.Locale(), ns, key, mode, strings.Join(tags, ","), valuesKey(query),
	}, "|")

	res, err := cache.GetOrSet(ctx, s.renders, cacheKey, s.ttl, func(ctx context.Context) (renderResult, error) {
		values := make(icu.Values, len(query))
		for name := range query {
			values[name] = coerce(query.Get(name))
		}
		bindTags(values, mode, tags)
		return s.render(ctx, tr, key, mode, values)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	body := map[string]any{
		"locale":  tr.Locale(),
		"key":     key,
		"message": res.Message,
	}
	status := http.StatusOK
	if res.Error != "" {
		body["error"] = res.Error
		status = http.StatusUnprocessableEntity
	}
	respond(w, status, body)
}

// render formats one message. Failures are part of the result: they only
// depend on the catalog and the input, so they are cached like successes.
func (s *server) render(ctx context.Context, tr *i18n.Translator, key, mode string, values icu.Values) (renderResult, error) {
	f, _ := ctx.Value(failuresKey{}).(*failures)
	mark := f.len()

	var out any
	switch mode {
	case modeMarkdown:
		html, err := markdownHTML(tr.T(key, values), s.base.MarkupPolicy)
		if err != nil {
			return renderResult{}, err
		}
		out = html
	case modeRich:
		out = partsJSON(tr.Rich(key, values))
	case modeMarkup:
		out = tr.Markup(key, values)
	default:
		out = tr.T(key, values)
	}

	msg, err := json.Marshal(out)
	if err != nil {
		return renderResult{}, err
	}
	res := renderResult{Message: msg}
	if e := f.since(mark); e != nil {
		res.Error = e.Code
	}
	return res, nil
}

// parseSchedule accepts standard 5-field cron expressions and descriptors
// such as "@hourly" or "@every 10m".
func parseSchedule(expr string) (cron.Schedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", errInvalidSchedule, expr, err)
	}
	return schedule, nil
}

// reloadOn replaces the catalog at every activation of schedule and drops
// the messages rendered from the previous one.
func (s *server) reloadOn(ctx context.Context, schedule cron.Schedule, load func(context.Context) (*messages.Catalog, error)) {
	for {
		timer := time.NewTimer(time.Until(schedule.Next(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			if err := s.reload(ctx, load); err != nil {
				s.log.ErrorContext(ctx, "catalog reload failed", "error", err)
				continue
			}
			s.log.InfoContext(ctx, "catalog reloaded")
		}
	}
}

func (s *server) reload(ctx context.Context, load func(context.Context) (*messages.Catalog, error)) error {
	catalog, err := load(ctx)
	if err != nil {
		return err
	}
	s.catalog.Store(catalog)
	return s.renders.Clear(ctx)
}

func withLocaleParam(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := i18n.WithLocale(r.Context(), chi.URLParam(r, "locale"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type failuresKey struct{}

// failures collects the translator errors of one request, ignoring
// environment fallbacks which do not affect the rendered text.
type failures struct {
	mu   sync.Mutex
	errs []*i18n.Error
}

func withFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), failuresKey{}, &failures{})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (f *failures) add(e *i18n.Error) {
	if e.Code == i18n.CodeEnvironmentFallback {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = append(f.errs, e)
}

func (f *failures) len() int {
	if f == nil {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.errs)
}

// since returns the first error recorded after mark.
func (f *failures) since(mark int) *i18n.Error {
	if f == nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.errs) > mark {
		return f.errs[mark]
	}
	return nil
}

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]string{"error": msg})
}

// Server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 15 * time.Second
	defaultIdleTimeout       = 60 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
)

type serverConfig struct {
	handler         http.Handler
	address         string
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

// runServer serves until ctx is done, then shuts down gracefully.
func runServer(ctx context.Context, cfg serverConfig) error {
	if cfg.address == "" {
		cfg.address = ":8080"
	}
	if cfg.shutdownTimeout == 0 {
		cfg.shutdownTimeout = defaultShutdownTimeout
	}

	server := &http.Server{
		Addr:              cfg.address,
		Handler:           cfg.handler,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		cfg.logger.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	cfg.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		cfg.logger.Error("shutdown failed", slog.Any("error", err))
		return err
	}
	cfg.logger.Info("shutdown completed")
	return nil
}
