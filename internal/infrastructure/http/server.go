// Package http provides the HTTP server infrastructure.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/0xcro3dile/neurobot-go/internal/domain/usecases"
	"github.com/0xcro3dile/neurobot-go/internal/logger"
)

// Options configures the HTTP surface.
type Options struct {
	Addr            string
	MaxUploadSize   string
	ExportFilename  string
	ShutdownTimeout time.Duration

	// Metrics, when set, is served on /metrics.
	Metrics http.Handler
}

// Server is the HTTP gateway for chat, upload and export.
type Server struct {
	chatUseCase      *usecases.ChatUseCase
	summarizeUseCase *usecases.SummarizeUseCase
	exportUseCase    *usecases.ExportUseCase
	opts             Options
	echo             *echo.Echo
}

// NewServer creates a new HTTP server and registers its routes.
func NewServer(
	chatUC *usecases.ChatUseCase,
	summarizeUC *usecases.SummarizeUseCase,
	exportUC *usecases.ExportUseCase,
	opts Options,
) *Server {
	if opts.Addr == "" {
		opts.Addr = ":8000"
	}
	if opts.MaxUploadSize == "" {
		opts.MaxUploadSize = "20M"
	}
	if opts.ExportFilename == "" {
		opts.ExportFilename = "neurobot_conversation.pdf"
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}

	s := &Server{
		chatUseCase:      chatUC,
		summarizeUseCase: summarizeUC,
		exportUseCase:    exportUC,
		opts:             opts,
	}
	s.echo = s.routes()
	return s
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("%s %s %d %v id=%s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))
	// Any origin, method and header. Empty AllowHeaders echoes the
	// preflight's requested headers back.
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch,
			http.MethodPost, http.MethodDelete, http.MethodOptions,
		},
	}))
	e.Use(middleware.BodyLimit(s.opts.MaxUploadSize))

	e.POST("/chat", s.handleChat)
	e.POST("/upload", s.handleUpload)
	e.POST("/export-pdf", s.handleExport)
	e.GET("/healthz", s.handleHealth)
	if s.opts.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(s.opts.Metrics))
	}

	return e
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start runs the HTTP server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.echo,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	logger.Info("Neurobot gateway starting on %s", s.opts.Addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown: %v", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
