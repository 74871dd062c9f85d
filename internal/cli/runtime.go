package cli

import (
	"context"
	"errors"
	"io"

	"holonet/internal/cache"
	"holonet/internal/config"
	"holonet/internal/database"
	"holonet/internal/observability"
	"holonet/internal/repository"

	"gorm.io/gorm"
)

// Runtime is an open store plus whatever must be released with it.
type Runtime struct {
	Store   *repository.Store
	closers []func(context.Context) error
}

// Opener connects a Runtime. stderr receives logs and exported spans so
// command output stays parseable.
type Opener func(ctx context.Context, opts *RootOptions, stderr io.Writer) (*Runtime, error)

// NewRuntime wraps an already open store.
func NewRuntime(store *repository.Store, closers ...func(context.Context) error) *Runtime {
	return &Runtime{Store: store, closers: closers}
}

// OpenRuntime loads configuration and connects the database, the cache and,
// when requested, the tracer.
func OpenRuntime(ctx context.Context, opts *RootOptions, stderr io.Writer) (*Runtime, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	observability.InitLogging(stderr, cfg.LogFormat, cfg.LogLevel)

	rt := &Runtime{}
	shutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "holonet",
		ServiceVersion: Version,
		Environment:    cfg.Env,
		DBSystem:       database.SystemName(cfg.DBDriver),
		Enabled:        opts.Trace || cfg.TracingEnabled,
		Exporter:       tracingExporter(opts, cfg),
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   samplerRatio(opts, cfg),
		Writer:         stderr,
	})
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, shutdown)

	db, err := database.Open(ctx, cfg)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}
	rt.closers = append(rt.closers, func(context.Context) error { return database.Close(db) })

	c := cache.Connect(ctx, cfg.RedisURL)
	rt.closers = append(rt.closers, func(context.Context) error { return c.Close() })

	rt.Store = repository.NewStore(db, c)
	return rt, nil
}

// Close releases resources in reverse order of acquisition.
func (r *Runtime) Close(ctx context.Context) error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}

// DB returns the store's database handle.
func (r *Runtime) DB() *gorm.DB {
	return r.Store.DB()
}

// --trace always exports to stderr, whatever the configured exporter.
func tracingExporter(opts *RootOptions, cfg *config.Config) string {
	if opts.Trace {
		return "stdout"
	}
	return cfg.TracingExporter
}

func samplerRatio(opts *RootOptions, cfg *config.Config) float64 {
	if opts.Trace {
		return 1
	}
	return cfg.TracingSampleRatio
}
