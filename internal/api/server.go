package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/renato0307/spotter/internal/logging"
	"github.com/renato0307/spotter/internal/ports"
	"github.com/renato0307/spotter/internal/services"
	"github.com/renato0307/spotter/internal/version"
)

// Config holds the HTTP surface options
type Config struct {
	CORSOrigins []string
	Debug       bool
}

// Server exposes the live coaching flow to the tablet web client
type Server struct {
	cfg          Config
	connectivity ports.Connectivity
	identity     ports.IdentityProvider
	registry     *services.ControllerRegistry
	router       *gin.Engine
}

// New creates the HTTP server and its routes
func New(
	cfg Config,
	registry *services.ControllerRegistry,
	identity ports.IdentityProvider,
	connectivity ports.Connectivity,
) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())

	s := &Server{
		cfg:          cfg,
		connectivity: connectivity,
		identity:     identity,
		registry:     registry,
		router:       router,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	corsConfig := cors.DefaultConfig()
	if len(s.cfg.CORSOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.cfg.CORSOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	// Authorization carries the bearer token
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}

	s.router.Use(cors.New(corsConfig))
}

func (s *Server) setupRoutes() {
	live := NewLiveHandler(s.registry, s.connectivity)

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "spotter", "version": version.Version})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")
	v1.Use(RequireAuth(s.identity))
	{
		v1.GET("/connectivity", live.Connectivity)

		v1.GET("/live", live.View)
		v1.POST("/live/open", live.Open)
		v1.POST("/live/resume", live.Resume)
		v1.POST("/live/restart", live.Restart)
		v1.GET("/live/sessions", live.Sessions)
		v1.POST("/live/start", live.Start)
		v1.POST("/live/next", live.Next)
		v1.POST("/live/previous", live.Previous)
		v1.POST("/live/goto", live.GoTo)
		v1.POST("/live/exercise", live.RecordExercise)
		v1.POST("/live/refresh", live.Refresh)
		v1.POST("/live/finish", live.Finish)
		v1.GET("/live/save-status", live.SaveStatus)
	}
}

// Handler returns the server's http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Logger.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logging.Logger.Info("Stopping HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
