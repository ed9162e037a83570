// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the pipeline as a single-page web UI and a small
// JSON API. Every request runs its own pipeline; nothing is shared between
// requests.
package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pdiddy/product-autogpt/internal/generate"
	"github.com/pdiddy/product-autogpt/internal/logger"
	"github.com/pdiddy/product-autogpt/internal/lookup"
	"github.com/pdiddy/product-autogpt/internal/prompt"
	"github.com/pdiddy/product-autogpt/pkg/types"
)

//go:embed templates/*.html
var templateFS embed.FS

// shutdownTimeout bounds graceful shutdown after the context is cancelled.
const shutdownTimeout = 10 * time.Second

// Runner runs one pipeline. Implementations must not share memories across
// calls; pipeline.Factory builds a fresh Orchestrator per call.
type Runner interface {
	Run(ctx context.Context, topic string) (types.PipelineResult, error)
}

// Server wires the HTTP routes to a Runner.
type Server struct {
	runner Runner
	log    *zap.Logger
	engine *gin.Engine
}

// generateRequest is the JSON body of POST /api/v1/generate.
type generateRequest struct {
	Topic string `json:"topic"`
}

// pageData feeds templates/index.html.
type pageData struct {
	Action string
	Topic  string
	Result *types.PipelineResult
	Error  string
}

// New builds the router.
func New(runner Runner, log *zap.Logger) *Server {
	s := &Server{runner: runner, log: logger.OrNop(log)}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	r.GET("/", s.handlePage)
	r.POST("/", s.handlePage)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.POST("/generate", s.handleGenerate)

	s.engine = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// handlePage renders the form, and the results when a topic was submitted.
// An empty topic renders the bare form.
func (s *Server) handlePage(c *gin.Context) {
	topic := c.Query("topic")
	if c.Request.Method == http.MethodPost {
		topic = c.PostForm("topic")
	}

	data := pageData{Action: "/", Topic: topic}
	if topic == "" {
		c.HTML(http.StatusOK, "index.html", data)
		return
	}

	res, err := s.runner.Run(c.Request.Context(), topic)
	if err != nil {
		data.Error = err.Error()
		c.HTML(statusFor(err), "index.html", data)
		return
	}
	data.Result = &res
	c.HTML(http.StatusOK, "index.html", data)
}

// handleGenerate runs the pipeline for a JSON request. An empty topic is
// valid and runs like any other.
func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	res, err := s.runner.Run(c.Request.Context(), req.Topic)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// statusFor maps a pipeline error to an HTTP status.
func statusFor(err error) int {
	var (
		mpe *prompt.MissingPlaceholderError
		ge  *generate.GenerationError
		le  *lookup.LookupError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &mpe):
		return http.StatusInternalServerError
	case errors.As(err, &ge), errors.As(err, &le):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// requestLogger logs one line per request through zap.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}
