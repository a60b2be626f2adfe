package routes

import (
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/controllers"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/middleware"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"

	"github.com/gin-gonic/gin"
)

// RegisterDashboardStatsRoutes finance dashboard and audit trail
func RegisterDashboardStatsRoutes(router *gin.Engine, ctl *controllers.DashboardController) {
	router.GET("/api/finance/summary",
		middleware.AuthMiddleware(), middleware.RequireCapability(models.CanManageFinance), ctl.GetFinanceSummary)
	router.GET("/api/operation-logs",
		middleware.AuthMiddleware(), middleware.RequireCapability(models.CanManageUsers), ctl.GetOperationLogs)
}
