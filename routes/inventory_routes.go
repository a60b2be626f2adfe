package routes

import (
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/controllers"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/middleware"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"

	"github.com/gin-gonic/gin"
)

// RegisterInventoryRoutes items, ledger, reorders and alerts
func RegisterInventoryRoutes(router *gin.Engine, ctl *controllers.InventoryController) {
	inventory := router.Group("/api/inventory")
	inventory.Use(middleware.AuthMiddleware(), middleware.RequireCapability(models.CanManageInventory))

	inventory.GET("/stats", ctl.GetInventoryStats)
	inventory.GET("/suppliers", ctl.GetSuppliers)
	inventory.GET("/export", ctl.ExportItems)
	inventory.GET("/transactions", ctl.GetTransactions)
	inventory.GET("/movements", ctl.GetMovementSummary)

	items := inventory.Group("/items")
	items.GET("", ctl.GetItems)
	items.GET("/:id", ctl.GetItem)
	items.GET("/:id/transactions", ctl.GetTransactions)
	items.POST("", ctl.CreateItem)
	items.PUT("/:id", ctl.UpdateItem)
	items.DELETE("/:id", ctl.DeleteItem)
	items.POST("/:id/adjust", ctl.AdjustStock)

	reorders := inventory.Group("/reorders")
	reorders.GET("", ctl.GetReorders)
	reorders.GET("/:id", ctl.GetReorder)
	reorders.POST("", ctl.CreateReorder)
	reorders.PUT("/:id", ctl.UpdateReorder)
	reorders.PATCH("/:id/status", ctl.TransitionReorder)
	reorders.POST("/:id/cancel", ctl.CancelReorder)

	alerts := inventory.Group("/alerts")
	alerts.GET("", ctl.GetAlerts)
	alerts.POST("/refresh", ctl.RefreshAlerts)
	alerts.POST("/:id/dismiss", ctl.DismissAlert)
}
