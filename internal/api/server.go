// Package api exposes the comparison engine over HTTP. It is a thin
// shell: rendering, sessions, and persistence belong to callers.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pricewatch/pricewatch/internal/version"
	"github.com/pricewatch/pricewatch/pkg/compare"
)

// Comparer runs one comparison over an own URL and its competitors.
type Comparer interface {
	Compare(ctx context.Context, ownURL string, competitors []string) *compare.Report
}

// Config holds API server configuration.
type Config struct {
	Mode string // gin mode: debug, release, test (default release)
}

// Server wires the comparison engine into a gin router.
type Server struct {
	engine Comparer
	router *gin.Engine
}

// NewServer creates a configured API server.
func NewServer(engine Comparer, cfg Config) *Server {
	mode := cfg.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)

	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{engine: engine, router: router}

	router.GET("/health", s.health)
	router.GET("/version", s.version)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/compare", s.compare)
	}

	return s
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves the API on addr until the listener fails.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pricewatch",
	})
}

func (s *Server) version(c *gin.Context) {
	c.JSON(http.StatusOK, version.Get())
}
