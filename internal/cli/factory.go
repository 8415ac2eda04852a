package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/decisiontree"
	"github.com/aretw0/decisiontree/internal/config"
	"github.com/aretw0/decisiontree/internal/metrics"
	"github.com/aretw0/decisiontree/pkg/adapters/file"
	"github.com/aretw0/decisiontree/pkg/adapters/memory"
	"github.com/aretw0/decisiontree/pkg/adapters/redis"
	"github.com/aretw0/decisiontree/pkg/dialog"
	"github.com/aretw0/decisiontree/pkg/domain"
	"github.com/aretw0/decisiontree/pkg/outcome"
	"github.com/aretw0/decisiontree/pkg/persistence/middleware"
	"github.com/aretw0/decisiontree/pkg/ports"
	"github.com/aretw0/decisiontree/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
)

// Runtime bundles a configured skill with the infrastructure behind it.
type Runtime struct {
	Skill    *decisiontree.Skill
	Store    ports.SessionStore
	Sessions *session.Manager
	Metrics  *metrics.Recorder

	health func(ctx context.Context) error
	close  func() error
}

// Health reports whether the session backend is reachable.
func (r *Runtime) Health(ctx context.Context) error {
	if r.health == nil {
		return nil
	}
	return r.health(ctx)
}

// Close releases backend connections.
func (r *Runtime) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// BuildOptions tunes Build beyond the configuration file.
type BuildOptions struct {
	// Registerer receives the metric collectors when cfg.Metrics is set.
	// Nil uses the process-wide default registry.
	Registerer prometheus.Registerer
	// Debug adds hooks that log every dialog event.
	Debug bool
}

// Build wires the skill from configuration: outcome table, session store,
// locking, metrics and prompt style.
func Build(cfg *config.Config, logger *slog.Logger, opts BuildOptions) (*Runtime, error) {
	table, err := LoadTable(cfg.TablePath)
	if err != nil {
		return nil, err
	}

	style, err := dialog.ParsePromptStyle(cfg.PromptStyle)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{}

	backend, locker, err := openBackend(cfg.Store)
	if err != nil {
		return nil, err
	}
	if rs, ok := backend.(*redis.Store); ok {
		rt.health = rs.Ping
		rt.close = rs.Close
	}
	store, err := protect(cfg.Store, backend)
	if err != nil {
		return nil, err
	}
	rt.Store = store

	managerOpts := []session.Option{session.WithLogger(logger)}
	if locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(locker))
	}
	rt.Sessions = session.NewManager(store, managerOpts...)

	var hooks []domain.LifecycleHooks
	if cfg.Metrics {
		reg := opts.Registerer
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		rt.Metrics = metrics.NewRecorder(reg)
		hooks = append(hooks, rt.Metrics.Hooks())
	}
	if opts.Debug {
		hooks = append(hooks, debugHooks(logger))
	}

	rt.Skill = decisiontree.New(
		decisiontree.WithLogger(logger),
		decisiontree.WithOutcomeTable(table),
		decisiontree.WithPromptStyle(style),
		decisiontree.WithSessionManager(rt.Sessions),
		decisiontree.WithLifecycleHooks(chainHooks(hooks...)),
	)
	return rt, nil
}

// LoadTable loads the outcome table at path, or the built-in table if path is empty.
func LoadTable(path string) (*outcome.Table, error) {
	if path == "" {
		return outcome.Default(), nil
	}
	return outcome.LoadFile(path)
}

// OpenStore creates the session store selected by cfg, wrapped with the
// configured masking and encryption. Only the Redis driver returns a
// distributed locker.
func OpenStore(cfg config.StoreConfig) (ports.SessionStore, ports.DistributedLocker, error) {
	backend, locker, err := openBackend(cfg)
	if err != nil {
		return nil, nil, err
	}
	store, err := protect(cfg, backend)
	if err != nil {
		return nil, nil, err
	}
	return store, locker, nil
}

// protect applies masking before encryption, so masked values are never sealed.
func protect(cfg config.StoreConfig, store ports.SessionStore) (ports.SessionStore, error) {
	var mws []middleware.Middleware
	if len(cfg.Mask) > 0 {
		mws = append(mws, middleware.NewPIIMiddleware(cfg.Mask))
	}
	active, fallback, err := cfg.Keys()
	if err != nil {
		return nil, err
	}
	if active != nil {
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallback,
		}))
	}
	return middleware.Chain(store, mws...), nil
}

func openBackend(cfg config.StoreConfig) (ports.SessionStore, ports.DistributedLocker, error) {
	switch cfg.Driver {
	case "", config.StoreMemory:
		return memory.NewStore(), nil, nil
	case config.StoreFile:
		return file.New(cfg.FilePath), nil, nil
	case config.StoreRedis:
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			redis.WithPrefix(cfg.RedisPrefix),
			redis.WithTTL(cfg.TTL),
		)
		return store, redis.NewLocker(store.Client(), store.Prefix()), nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// chainHooks calls every non-nil hook of each set, in order.
func chainHooks(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	if len(sets) == 1 {
		return sets[0]
	}
	var out domain.LifecycleHooks
	if len(sets) == 0 {
		return out
	}
	out.OnRequest = func(ctx context.Context, e *domain.RequestEvent) {
		for _, h := range sets {
			if h.OnRequest != nil {
				h.OnRequest(ctx, e)
			}
		}
	}
	out.OnDirective = func(ctx context.Context, e *domain.DirectiveEvent) {
		for _, h := range sets {
			if h.OnDirective != nil {
				h.OnDirective(ctx, e)
			}
		}
	}
	out.OnOutcome = func(ctx context.Context, e *domain.OutcomeEvent) {
		for _, h := range sets {
			if h.OnOutcome != nil {
				h.OnOutcome(ctx, e)
			}
		}
	}
	out.OnError = func(ctx context.Context, e *domain.ErrorEvent) {
		for _, h := range sets {
			if h.OnError != nil {
				h.OnError(ctx, e)
			}
		}
	}
	return out
}

func debugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRequest: func(ctx context.Context, e *domain.RequestEvent) {
			logger.Debug("Request", "type", e.Type, "intent", e.Intent, "route", e.Route, "duration", e.Duration)
		},
		OnDirective: func(ctx context.Context, e *domain.DirectiveEvent) {
			logger.Debug("Directive", "kind", e.Kind, "slot", e.Slot)
		},
		OnOutcome: func(ctx context.Context, e *domain.OutcomeEvent) {
			logger.Debug("Outcome", "key", e.Key, "outcome", e.Outcome.Name)
		},
		OnError: func(ctx context.Context, e *domain.ErrorEvent) {
			logger.Debug("Recovered Error", "kind", e.Kind, "err", e.Err)
		},
	}
}
