// Package http wires the gin router and HTTP server for the advisory API.
package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agriconnect/agrointel/internal/application/advisory"
	"github.com/agriconnect/agrointel/internal/domain/catalog"
	"github.com/agriconnect/agrointel/internal/infrastructure/monitoring/logging"
	"github.com/agriconnect/agrointel/internal/infrastructure/monitoring/prometheus"
	"github.com/agriconnect/agrointel/internal/interfaces/http/handlers"
)

// RouterDeps carries everything the router mounts.
type RouterDeps struct {
	Service *advisory.Service
	Catalog *catalog.Catalog
	Logger  logging.Logger
	Metrics *prometheus.Metrics // nil disables /metrics and request metrics
	Cache   handlers.Pinger     // nil when caching is disabled
	Version string
	Mode    string // gin mode: debug | release | test
}

// NewRouter assembles the full route table.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Mode != "" {
		gin.SetMode(deps.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(requestMetrics(deps.Metrics))
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	handlers.NewHealthHandler(deps.Version, deps.Cache).RegisterRoutes(r)

	api := r.Group("/api/v1")
	handlers.NewAdvisoryHandler(deps.Service, deps.Logger).RegisterRoutes(api)
	handlers.NewCatalogHandler(deps.Catalog).RegisterRoutes(api)

	return r
}

// requestLogger logs one line per request with latency and status.
func requestLogger(logger logging.Logger) gin.HandlerFunc {
	log := logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", c.FullPath()),
			logging.Int("status", c.Writer.Status()),
			logging.Duration("latency", time.Since(start)),
			logging.String("client_ip", c.ClientIP()),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Error("request failed", fields...)
		} else {
			log.Info("request handled", fields...)
		}
	}
}

// requestMetrics records request counts and latency per route.
func requestMetrics(m *prometheus.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}
