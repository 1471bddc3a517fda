// internal/app/router.go
package app

import (
	adminHandler "autolot-service/internal/handlers/admin"
	authHandler "autolot-service/internal/handlers/auth"
	contactHandler "autolot-service/internal/handlers/contact"
	vehicleHandler "autolot-service/internal/handlers/vehicle"
	wsHandler "autolot-service/internal/handlers/websocket"
	"autolot-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	VehicleHandler *vehicleHandler.VehicleHandler
	AdminHandler   *adminHandler.AdminHandler
	AuthHandler    *authHandler.AuthHandler
	ContactHandler *contactHandler.ContactHandler
	WSHandler      *wsHandler.WebSocketHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)

	// ==================== Public Site ====================
	vehicles := api.Group("/vehicles")
	{
		vehicles.GET("", h.VehicleHandler.ListVehicles)
		vehicles.GET("/featured", h.VehicleHandler.GetFeaturedVehicles)
		vehicles.GET("/options", h.VehicleHandler.GetFilterOptions)
		vehicles.GET("/:id", h.VehicleHandler.GetVehicle)
	}

	api.POST("/contact", h.ContactHandler.Submit)

	// ==================== Auth ====================
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.AuthHandler.Login)
	}
	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Auth())
	{
		authProtected.GET("/me", h.AuthHandler.GetMe)
		authProtected.POST("/logout", h.AuthHandler.Logout)
	}

	// ==================== Admin Dashboard ====================
	admin := api.Group("/admin")
	admin.Use(h.AuthMiddleware.Auth())
	{
		admin.GET("/vehicles", h.AdminHandler.ListAllVehicles)
		admin.POST("/vehicles", h.AdminHandler.CreateVehicle)
		admin.PUT("/vehicles/:id", h.AdminHandler.UpdateVehicle)
		admin.POST("/vehicles/:id/close", h.AdminHandler.CloseOutVehicle)
		admin.GET("/transactions", h.AdminHandler.ListTransactions)
		admin.GET("/summary", h.AdminHandler.GetSummary)
	}
}
