package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	glog "github.com/gin-contrib/slog"
	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/kode4food/sluice/internal/auth"
	"github.com/kode4food/sluice/internal/config"
	"github.com/kode4food/sluice/internal/engine"
	"github.com/kode4food/sluice/pkg/api"
	"github.com/kode4food/sluice/pkg/events"
	"github.com/kode4food/sluice/pkg/util"
)

// Server implements the HTTP API for the flow execution engine
type Server struct {
	engine  *engine.Engine
	auth    *auth.Service
	hub     *events.Hub
	cfg     *config.Config
	sockets util.Set[*Client]
	mu      sync.Mutex
}

// NewServer creates a new HTTP API server
func NewServer(
	eng *engine.Engine, authSvc *auth.Service, hub *events.Hub,
	cfg *config.Config,
) *Server {
	return &Server{
		engine:  eng,
		auth:    authSvc,
		hub:     hub,
		cfg:     cfg,
		sockets: util.Set[*Client]{},
	}
}

// SetupRoutes configures and returns the HTTP router with all API
// endpoints
func (s *Server) SetupRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(glog.SetLogger(
		glog.WithLogger(func(c *gin.Context, l *slog.Logger) *slog.Logger {
			return slog.Default()
		}),
	))

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set(
			"Access-Control-Allow-Methods",
			"GET, POST, PUT, DELETE, OPTIONS",
		)
		c.Writer.Header().Set(
			"Access-Control-Allow-Headers",
			"Content-Type, Authorization",
		)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	if s.cfg.SecurityHeaders {
		router.Use(securityHeaders)
	}

	// Health check
	router.GET("/health", s.handleHealth)

	// WebSocket
	router.GET("/ws", s.handleWebSocket)

	v1 := router.Group("/api/v1")
	if s.cfg.RateLimitEnabled {
		v1.Use(s.rateLimiter())
	}

	// Authentication endpoints
	au := v1.Group("/auth")
	{
		au.POST("/login", s.handleLogin)
		au.POST("/register",
			s.authRequired, s.requireRole(api.RoleAdmin),
			s.handleRegister)
		au.GET("/me", s.authRequired, s.handleMe)
		au.GET("/users",
			s.authRequired, s.requireRole(api.RoleAdmin),
			s.handleListUsers)
	}

	// Flow endpoints
	flows := v1.Group("/flows", s.authRequired)
	{
		flows.POST("/execute",
			s.requireRole(api.RoleUser), s.executeFlow)
		flows.GET("/executions",
			s.requireRole(api.RoleViewer), s.listExecutions)
		flows.GET("/executions/:executionID",
			s.requireRole(api.RoleViewer), s.getExecution)
	}

	// Task endpoints
	v1.GET("/tasks",
		s.authRequired, s.requireRole(api.RoleViewer), s.listTasks)

	return router
}

func securityHeaders(c *gin.Context) {
	h := c.Writer.Header()
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("X-XSS-Protection", "1; mode=block")
	h.Set("Strict-Transport-Security",
		"max-age=31536000; includeSubDomains")
	h.Set("Content-Security-Policy", "default-src 'self'")
	c.Next()
}

func (s *Server) rateLimiter() gin.HandlerFunc {
	rate := limiter.Rate{
		Period: time.Minute,
		Limit:  int64(s.cfg.RateLimitPerMinute),
	}
	return mgin.NewMiddleware(limiter.New(memory.NewStore(), rate))
}

func (s *Server) registerWebSocket(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sockets.Add(c)
}

func (s *Server) unregisterWebSocket(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sockets.Remove(c)
}

// CloseWebSockets closes all active WebSocket connections.
func (s *Server) CloseWebSockets() {
	s.mu.Lock()
	conns := make([]*Client, 0, len(s.sockets))
	for c := range s.sockets {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}
}
