package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes, all read-only
	v1 := router.Group("/api/v1")
	{
		v1.GET("/accounts/:address", handler.GetAccount)
		v1.GET("/contracts/:address", handler.GetContract)
		v1.GET("/tokens/:contract/:token_id", handler.GetToken)
		v1.GET("/transfers/:id", handler.GetTransfer)
		v1.GET("/transfers", handler.ListTransfers)
	}
}
