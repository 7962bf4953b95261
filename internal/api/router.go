package api

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"alert-dashboard/internal/alerts"
	"alert-dashboard/internal/config"
	"alert-dashboard/internal/logging"
)

func NewRouter(svc *alerts.Service, logger *logging.Logger, cfg config.Config) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(RequestLoggingMiddleware(logger))
	if cfg.API.RateLimit > 0 {
		r.Use(RateLimitMiddleware(rate.Limit(cfg.API.RateLimit), cfg.API.RateBurst))
	}

	h := NewHandler(svc, logger)
	api := r.Group(cfg.API.BasePath)
	{
		api.GET("/alerts", h.GetAlerts)
		api.GET("/alerts/:id", h.GetAlertByID)
		api.GET("/alerts/status/:status", h.GetAlertsByStatus)
		api.PATCH("/alerts/:id/status", h.UpdateAlertStatus)
		api.GET("/health", h.Health)
	}
	return r
}
