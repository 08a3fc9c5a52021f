package web

import (
	"analytics-core/config"
	"analytics-core/sqltext"
	"analytics-core/web/handlers"
	"analytics-core/web/middleware"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	router  *gin.Engine
	cache   *sqltext.Cache
	limiter *middleware.ClientRateLimiter
	logger  *zap.Logger
	config  *config.Config
}

func NewServer(cache *sqltext.Cache, logger *zap.Logger, config *config.Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(logger))

	server := &Server{
		router: router,
		cache:  cache,
		logger: logger,
		config: config,
	}

	if config.RateLimitRequestsPerMin > 0 {
		server.limiter = middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerMinute: config.RateLimitRequestsPerMin,
			BurstSize:         config.RateLimitBurstSize,
			CleanupInterval:   config.RateLimitCleanupInterval,
		}, logger)
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	sqlHandler := handlers.NewSQLHandler(s.cache, s.logger)

	s.router.GET("/health", sqlHandler.Health)

	v1 := s.router.Group("/v1/sql")
	v1.Use(middleware.BodyLimitMiddleware(s.config.MaxRequestBytes))
	if s.limiter != nil {
		v1.Use(middleware.RateLimitMiddleware(s.limiter))
	}
	v1.POST("/clean", sqlHandler.Clean)
	v1.POST("/remove-limit", sqlHandler.RemoveLimit)
	v1.POST("/add-quotes", sqlHandler.AddQuotes)
	v1.POST("/sanitize", sqlHandler.Sanitize)
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(ctx context.Context, addr string) error {
	s.logger.Info("Starting web server", zap.String("address", addr))

	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.Close()
		if err != nil {
			s.logger.Error("Web server failed to start", zap.Error(err))
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	defer s.Close()
	return srv.Shutdown(shutdownCtx)
}

// Close releases background resources held by the server.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}
