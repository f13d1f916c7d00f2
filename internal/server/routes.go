package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fleveque/company-lookup/internal/config"
	"github.com/fleveque/company-lookup/internal/handler"
	"github.com/fleveque/company-lookup/internal/middleware"
	"github.com/fleveque/company-lookup/internal/provider"
)

// RegisterRoutes sets up all HTTP routes on the Gin engine.
// Dependencies are passed explicitly; each handler gets exactly what it needs.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, p provider.CompanyProvider, logger *zap.Logger) {
	healthHandler := handler.NewHealthHandler()
	companyHandler := handler.NewCompanyHandler(p, logger)

	// Public endpoints (no auth)
	r.GET("/healthz", healthHandler.Healthz)

	api := r.Group("/api/v1")
	api.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	// Group middleware only runs on matched routes, so preflights need a route of their own.
	api.OPTIONS("/companies", func(*gin.Context) {})

	authed := api.Group("")
	authed.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
	authed.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	{
		authed.GET("/companies", companyHandler.GetCompany)
	}
}
