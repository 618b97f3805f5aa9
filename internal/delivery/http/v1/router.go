package v1

import (
	"net/http"

	"go-inspection-backend/config"
	"go-inspection-backend/internal/delivery/http/middleware"
	"go-inspection-backend/internal/delivery/http/response"
	"go-inspection-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger()) // Use standard Gin logger
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "", false)
	})

	// Public routes
	NewContactHandler(v1, deps.ContactUC, deps.Config) // Contact form (no auth required)

	return r
}
