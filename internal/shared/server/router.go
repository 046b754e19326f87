package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"odialipi-backend/internal/reports"
	"odialipi-backend/internal/shared/config"
	"odialipi-backend/internal/shared/server/middleware"
	"odialipi-backend/internal/tasks"
	"odialipi-backend/internal/translit"
	"odialipi-backend/internal/users"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config   config.Config
	Users    *users.Handler
	Tasks    *tasks.Handler
	Reports  *reports.Handler
	Translit *translit.Handler
}

// NewRouter assembles the gin engine with middleware and all routes.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(deps.Config.CORSAllowOrigin))

	if deps.Config.ObjectStoreType == "local" {
		r.Static("/uploads", deps.Config.LocalStoreDir)
	}

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	deps.Users.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.Auth())
	protected.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"UPLOAD":  {Rate: 0.2, Burst: 3},
			"DEFAULT": {Rate: 10, Burst: 30},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && c.FullPath() == "/api/ocr/upload" {
				return "UPLOAD"
			}
			return "DEFAULT"
		},
	}))

	deps.Users.RegisterRoutes(protected)
	deps.Tasks.RegisterRoutes(protected)
	deps.Reports.RegisterRoutes(protected)
	deps.Translit.RegisterRoutes(protected)

	return r
}

// Addr formats a port for http.Server / gin Run.
func Addr(port string) string {
	if port == "" {
		port = "8080"
	}
	return ":" + port
}
