package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/chuanjin/toonbench/internal/logger"
	"github.com/chuanjin/toonbench/internal/parser"
	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgInvalidRequest = "invalid request format"
	msgNotFound       = "endpoint not found"
)

// Server exposes the format registry over HTTP.
type Server struct {
	registry     *parser.Registry
	maxBodyBytes int64
	engine       *gin.Engine
	log          *zap.Logger
}

func NewServer(r *parser.Registry, maxBodyBytes int64) *Server {
	s := &Server{
		registry:     r,
		maxBodyBytes: maxBodyBytes,
		engine:       gin.New(),
		log:          logger.Named("http"),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	e := s.engine
	e.Use(gin.Recovery(), s.accessLog, cors, s.limitBody)

	e.GET("/", s.handleIndex)
	e.GET("/example", s.handleExample)
	e.GET("/ejemplo", s.handleExample)
	e.GET("/formats", s.handleFormats)
	e.POST("/parse-json", s.handleParseFixed(parser.FormatJSON))
	e.POST("/parse-toon", s.handleParseFixed(parser.FormatTOON))
	e.POST("/parse/:format", s.handleParse)

	e.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse{Error: msgNotFound})
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", zap.String("address", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrapf(err, "listen on %s", addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	s.log.Info("HTTP server stopped")
	return nil
}

func cors(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Content-Type", "application/json")
	c.Next()
}

func (s *Server) limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodyBytes)
	c.Next()
}

func (s *Server) accessLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.log.Debug("Request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("duration", time.Since(start)),
	)
}
