package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/shared/config"
	"resume-matcher/internal/shared/metrics"
	"resume-matcher/internal/shared/server/middleware"
)

// AnalyzeGroup is the rate-limit group of the two routes that run an analysis.
const AnalyzeGroup = "ANALYZE"

// RouteRegistrar attaches a component's routes to a router group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps are the handlers mounted by NewRouter.
type RouterDeps struct {
	// API is mounted under /api/v1.
	API []RouteRegistrar
	// Web is mounted at the root.
	Web    RouteRegistrar
	Health gin.HandlerFunc
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, deps RouterDeps) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: groupFor,
			Rules: map[string]middleware.RateLimitRule{
				AnalyzeGroup: {Rate: cfg.AnalyzeRatePerMinute / 60, Burst: cfg.AnalyzeBurst},
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())
	if deps.Web != nil {
		deps.Web.RegisterRoutes(&r.RouterGroup)
	}

	api := r.Group("/api/v1")
	if deps.Health != nil {
		api.GET("/health", deps.Health)
	} else {
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
	}
	for _, h := range deps.API {
		h.RegisterRoutes(api)
	}

	return r
}

func groupFor(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return ""
	}
	switch c.Request.URL.Path {
	case "/", "/api/v1/analyses":
		return AnalyzeGroup
	}
	return ""
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
