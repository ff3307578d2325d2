package api

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/wprescue/wp-rescue/config"
	"github.com/wprescue/wp-rescue/internal/logging"
	"github.com/wprescue/wp-rescue/internal/metrics"
	"github.com/wprescue/wp-rescue/internal/service"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type Server struct {
	cfg       config.Config
	svc       *service.PluginService
	metrics   *metrics.Registry
	logger    *logrus.Logger
	allowed   map[string]struct{}
	sanitizer *bluemonday.Policy
}

// NewServer returns a new server. registry may be nil to disable metrics.
func NewServer(
	cfg config.Config,
	svc *service.PluginService,
	registry *metrics.Registry,
	logger *logrus.Logger,
) *Server {
	allowed := make(map[string]struct{}, len(cfg.AllowedIPs))
	for _, entry := range cfg.AllowedIPs {
		ip := net.ParseIP(entry)
		if ip == nil || ip.IsUnspecified() {
			logger.Warnf("ignoring unusable allow-list entry %q", entry)
			continue
		}
		allowed[ip.String()] = struct{}{}
	}

	return &Server{
		cfg:       cfg,
		svc:       svc,
		metrics:   registry,
		logger:    logger,
		allowed:   allowed,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *Server) newRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))
	e.Use(logging.LoggerMiddleware(s.logger))
	if s.metrics != nil {
		e.Use(metrics.HTTPMiddleware())
	}

	e.GET("/healthz", s.Healthz)
	e.GET("/", s.ShowPlugins, s.GuardMiddleware)
	e.POST("/", s.ApplyAction, s.GuardMiddleware)
	if s.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()), s.GuardMiddleware)
	}
	return e
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	e := s.newRouter()

	eg := &errgroup.Group{}
	eg.Go(func() error {
		err := e.Start(fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port))
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	})
	eg.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down server...")

		c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := e.Shutdown(c); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return nil
	})

	return eg.Wait()
}

func (s *Server) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
