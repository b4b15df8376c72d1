// Package server exposes grid sessions over HTTP.
package server

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// Controller registers its routes on a router group.
type Controller interface {
	Register(route *gin.RouterGroup)
}

// Router owns the gin engine and its controllers.
type Router struct {
	addr        string
	baseURL     string
	controllers []Controller
	logger      *slog.Logger
}

// Config holds configuration settings for creating a new Router instance.
type Config struct {
	Addr        string // Address to listen on
	BaseURL     string // Base URL for API routes
	Controllers []Controller
	Logger      *slog.Logger
}

// NewRouter creates a new Router instance with the given configuration.
func NewRouter(config Config) *Router {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		addr:        config.Addr,
		baseURL:     config.BaseURL,
		controllers: config.Controllers,
		logger:      logger,
	}
}

// Handler builds the engine with every controller mounted under baseURL/v1.
func (r *Router) Handler() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), r.requestLogger())

	api := router.Group(r.baseURL)
	{
		v1 := api.Group("/v1")
		for _, c := range r.controllers {
			c.Register(v1)
		}
	}

	return router
}

// Run starts the HTTP server and blocks until it fails.
func (r *Router) Run() error {
	r.logger.Info("http server listening", "addr", r.addr)
	return r.Handler().Run(r.addr)
}

func (r *Router) requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		started := time.Now()
		ctx.Next()
		r.logger.Debug("http request",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"status", ctx.Writer.Status(),
			"duration", time.Since(started),
		)
	}
}
