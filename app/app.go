// Package app wires the process: logging, telemetry, the local store, the
// session, the API client and the upload backend. Everything it creates is
// released by Close, in reverse order.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ncobase/newsdesk/api"
	"github.com/ncobase/newsdesk/config"
	"github.com/ncobase/newsdesk/data"
	_ "github.com/ncobase/newsdesk/data/all"
	"github.com/ncobase/newsdesk/draft"
	"github.com/ncobase/newsdesk/graphql"
	"github.com/ncobase/newsdesk/logging/logger"
	"github.com/ncobase/newsdesk/logging/observes"
	"github.com/ncobase/newsdesk/server"
	"github.com/ncobase/newsdesk/session"
	"github.com/ncobase/newsdesk/upload"
	"github.com/ncobase/newsdesk/version"
	"github.com/sony/gobreaker"
)

// App is the application container
type App struct {
	Config   *config.Config
	Logger   *logger.Logger
	Store    data.Store
	Session  *session.Store
	GraphQL  *graphql.Client
	API      *api.Client
	Drafts   *draft.Store
	Uploader upload.Uploader
	Remover  upload.Remover

	cleanups []func()
}

// New builds the container from cfg. On error everything created so far is
// released.
func New(ctx context.Context, cfg *config.Config) (a *App, err error) {
	a = &App{Config: cfg}
	defer func() {
		if err != nil {
			a.Close()
			a = nil
		}
	}()

	if err = a.initLogger(); err != nil {
		return
	}
	if err = a.initObserves(ctx); err != nil {
		return
	}

	a.Store, err = data.Open(ctx, cfg.Storage)
	if err != nil {
		return
	}
	a.onClose(func() {
		if cerr := a.Store.Close(); cerr != nil {
			a.Logger.Warnf(context.Background(), "failed to close store: %v", cerr)
		}
	})

	a.Session = session.New(a.Store, session.WithLogger(a.Logger))
	if herr := a.Session.Hydrate(ctx); herr != nil {
		a.Logger.Warnf(ctx, "session not restored: %v", herr)
	}
	a.onClose(func() { _ = a.Session.Close() })

	a.GraphQL = graphql.New(cfg.GraphQL.Endpoint, a.graphqlOptions()...)
	a.API = api.New(a.GraphQL)
	a.Drafts = draft.New(a.Store)

	a.Uploader, a.Remover, err = upload.NewFromConfig(cfg.Assets, a.API)
	if err != nil {
		return
	}

	a.Logger.Debugf(ctx, "newsdesk ready: api=%s store=%s assets=%s",
		cfg.GraphQL.Endpoint, cfg.Storage.Driver, a.Uploader.Name())
	return a, nil
}

func (a *App) initLogger() error {
	l, cleanup, err := logger.New(a.Config.Logger)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	l.SetVersion(version.GetVersionInfo().Version)
	a.Logger = l
	a.onClose(cleanup)
	return nil
}

// initObserves starts Sentry and the OTLP exporter when configured.
func (a *App) initObserves(ctx context.Context) error {
	obs := a.Config.Observes
	if obs == nil {
		return nil
	}

	if obs.Sentry != nil && obs.Sentry.Endpoint != "" {
		release := obs.Sentry.Release
		if release == "" {
			release = version.GetVersionInfo().Version
		}
		if err := observes.NewSentry(&observes.SentryOptions{
			Dsn:         obs.Sentry.Endpoint,
			Name:        a.Config.AppName,
			Release:     release,
			Environment: obs.Sentry.Environment,
		}); err != nil {
			return fmt.Errorf("failed to init sentry: %w", err)
		}
		a.Logger.AddHook(observes.NewSentryHook(nil))
		a.onClose(func() { observes.FlushSentry(2 * time.Second) })
	}

	if obs.Tracer != nil && obs.Tracer.Endpoint != "" {
		shutdown, err := observes.NewTracer(ctx, &observes.TracerOption{
			URL:                obs.Tracer.Endpoint,
			Name:               a.Config.AppName,
			Version:            version.GetVersionInfo().Version,
			Environment:        a.Config.RunMode,
			SamplingRate:       obs.Tracer.SamplingRate,
			BatchTimeout:       obs.Tracer.BatchTimeout,
			ExportTimeout:      obs.Tracer.ExportTimeout,
			MaxExportBatchSize: obs.Tracer.MaxExportBatchSize,
		})
		if err != nil {
			return fmt.Errorf("failed to init tracer: %w", err)
		}
		a.onClose(func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				a.Logger.Warnf(sctx, "tracer shutdown: %v", err)
			}
		})
	}
	return nil
}

func (a *App) graphqlOptions() []graphql.Option {
	gc := a.Config.GraphQL
	opts := []graphql.Option{
		graphql.WithTimeout(gc.Timeout),
		graphql.WithLogger(a.Logger),
		graphql.WithSession(graphql.SessionFunc(a.Session.Current)),
		graphql.WithInterceptors(graphql.UserAgent(gc.UserAgent), graphql.TraceHeader()),
		graphql.WithOnUnauthorized(func(ctx context.Context, err error) {
			if !a.Session.IsAuthenticated(ctx) {
				return
			}
			a.Logger.Warnf(ctx, "signing out after authorization error: %v", err)
			if lerr := a.Session.Logout(ctx); lerr != nil {
				a.Logger.Errorf(ctx, "logout failed: %v", lerr)
			}
		}),
	}

	if b := gc.Breaker; b != nil && b.Enabled {
		threshold := b.FailureThreshold
		opts = append(opts, graphql.WithBreaker(gobreaker.Settings{
			Name:        "graphql",
			MaxRequests: b.MaxRequests,
			Interval:    b.Interval,
			Timeout:     b.Timeout,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				a.Logger.Warnf(context.Background(), "circuit breaker %s: %s -> %s", name, from, to)
			},
		}))
	}
	return opts
}

// Server builds the dashboard server over the container
func (a *App) Server() *server.Server {
	return server.New(a.Config, server.Deps{
		API:      a.API,
		Session:  a.Session,
		Drafts:   a.Drafts,
		Uploader: a.Uploader,
		Remover:  a.Remover,
		Logger:   a.Logger,
	})
}

func (a *App) onClose(fn func()) {
	if fn != nil {
		a.cleanups = append(a.cleanups, fn)
	}
}

// Close releases everything in reverse creation order. It is safe to call
// more than once.
func (a *App) Close() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	a.cleanups = nil
}
