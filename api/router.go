package api

import (
	"net/http"

	"ordering/api/middleware"
	"ordering/api/response"
	"ordering/config"
	"ordering/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ControllerRegister is implemented by every controller
type ControllerRegister interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// MiddlewareRegister adds extra middleware after the default chain
type MiddlewareRegister func(engine *gin.Engine)

// Route is a custom route outside the controllers
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// Router Route configuration
type Router struct {
	engine       *gin.Engine
	config       *config.Config
	controllers  []ControllerRegister
	customRoutes []Route
}

func NewRouter(cfg *config.Config, controllers []ControllerRegister, middlewares []MiddlewareRegister, customRoutes []Route) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// 顺序有意义：请求 ID 必须最先生成
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))

	for _, m := range middlewares {
		m(engine)
	}

	return &Router{
		engine:       engine,
		config:       cfg,
		controllers:  controllers,
		customRoutes: customRoutes,
	}
}

// SetupRoutes Set up all routes
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	for _, c := range r.controllers {
		c.RegisterRoutes(apiGroup)
	}

	for _, route := range r.customRoutes {
		r.engine.Handle(route.Method, route.Path, route.Handler)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})

	r.engine.NoRoute(func(c *gin.Context) {
		response.Abort(c, errors.NotFound("route not found: "+c.Request.Method+" "+c.Request.URL.Path))
	})
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
