// Package server is the local dashboard API. It drives the same screens as
// the CLI and answers with JSON.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/newsdesk/config"
	"github.com/ncobase/newsdesk/draft"
	"github.com/ncobase/newsdesk/logging/logger"
	"github.com/ncobase/newsdesk/screen"
	"github.com/ncobase/newsdesk/session"
	"github.com/ncobase/newsdesk/upload"
)

// API is everything the dashboard calls on the news API
type API interface {
	screen.AuthAPI
	screen.UserAPI
	screen.NewsAPI
	upload.ImageDeleter
}

// Deps are the collaborators of the server
type Deps struct {
	API      API
	Session  *session.Store
	Drafts   *draft.Store
	Uploader upload.Uploader
	Remover  upload.Remover
	Logger   *logger.Logger
}

// Server represents the dashboard server.
type Server struct {
	cfg    *config.Config
	deps   Deps
	log    *logger.Logger
	engine *gin.Engine

	// create is the single news-create form; its draft is shared by every
	// request.
	create    *screen.NewsCreate
	createMu  sync.Mutex
	mountOnce sync.Once
}

// New creates the server and its routes
func New(cfg *config.Config, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = logger.StdLogger()
	}
	s := &Server{
		cfg:  cfg,
		deps: deps,
		log:  deps.Logger,
	}
	s.create = screen.NewNewsCreate(deps.API, deps.Drafts, nil, deps.Uploader, deps.Remover)
	s.engine = s.setupRouter()
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) setupRouter() *gin.Engine {
	switch {
	case s.cfg.RunMode == gin.TestMode:
		gin.SetMode(gin.TestMode)
	case s.cfg.IsDevelopment():
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.traceMiddleware())
	r.Use(s.loggerMiddleware())

	r.GET("/healthz", s.health)

	auth := r.Group("/auth")
	auth.POST("/login", s.login)
	auth.POST("/register", s.register)
	auth.POST("/logout", s.logout)

	dash := r.Group("/dashboard", s.requireAuth())
	dash.GET("/profile", s.getProfile)
	dash.PUT("/profile", s.updateProfile)

	dash.GET("/news", s.listNews)
	dash.POST("/news", s.createNews)
	dash.GET("/news/draft", s.getDraft)
	dash.PUT("/news/draft", s.saveDraft)
	dash.DELETE("/news/draft", s.clearDraft)
	dash.GET("/news/:id", s.getNews)
	dash.PUT("/news/:id", s.updateNews)
	dash.DELETE("/news/:id", s.deleteNews)

	dash.GET("/categories", s.categories)

	dash.POST("/uploads/featured", s.uploadFeatured)
	dash.PATCH("/uploads/featured", s.featuredMetadata)
	dash.DELETE("/uploads/featured", s.removeFeatured)

	return r
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof(ctx, "dashboard listening on http://%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen %s: %w", srv.Addr, err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.log.Info(ctx, "dashboard stopped")
	return nil
}

// newsCreate returns the shared create form, restoring its draft on first use.
func (s *Server) newsCreate(ctx context.Context) *screen.NewsCreate {
	s.mountOnce.Do(func() {
		if err := s.create.Mount(ctx); err != nil {
			s.log.Warnf(ctx, "news form mounted without categories: %v", err)
		}
	})
	return s.create
}
