package routes

import (
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/controllers"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/middleware"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"

	"github.com/gin-gonic/gin"
)

// RegisterOrderRoutes reads need canViewOrders, writes canEditOrders
func RegisterOrderRoutes(router *gin.Engine, ctl *controllers.OrderController) {
	orders := router.Group("/api/orders")
	orders.Use(middleware.AuthMiddleware())

	view := middleware.RequireCapability(models.CanViewOrders)
	edit := middleware.RequireCapability(models.CanEditOrders)

	orders.GET("", view, ctl.GetOrders)
	orders.GET("/stats", view, ctl.GetOrderStats)
	orders.GET("/export", view, ctl.ExportOrders)
	orders.GET("/:id", view, ctl.GetOrder)

	orders.POST("", edit, ctl.CreateOrder)
	orders.PATCH("/:id", edit, ctl.UpdateOrder)
	orders.PATCH("/:id/status", edit, ctl.UpdateOrderStatus)
	orders.PATCH("/:id/tests/:testId/status", edit, ctl.UpdateTestStatus)
	orders.PATCH("/:id/assign-collector", edit, ctl.AssignCollector)
	orders.DELETE("/:id", edit, ctl.DeleteOrder)
}
