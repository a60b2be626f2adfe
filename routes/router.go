package routes

import (
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/controllers"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/repository"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/service"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every API route on router
func RegisterRoutes(router *gin.Engine, svc *service.Services, stores *repository.Stores) {
	dashboard := controllers.NewDashboardController(svc.Finance, svc.Audit, stores)

	RegisterAuthRoutes(router, controllers.NewAuthController(svc.Auth))
	RegisterUserRoutes(router, controllers.NewAdminUserController(svc.AdminUsers))
	RegisterBookingRoutes(router, controllers.NewBookingController(svc.Booking, svc.Catalog))
	RegisterCatalogRoutes(router, controllers.NewCatalogController(svc.Tests, svc.Packages))
	RegisterOrderRoutes(router, controllers.NewOrderController(svc.Orders))
	RegisterInventoryRoutes(router, controllers.NewInventoryController(svc.Inventory, svc.Reorders, svc.Alerts))
	RegisterBranchRoutes(router, controllers.NewBranchController(svc.Branches))
	RegisterCategoryRoutes(router, controllers.NewCategoryController(svc.Categories))
	RegisterDashboardStatsRoutes(router, dashboard)

	router.GET("/api/health", dashboard.Health)
	router.GET("/api/db-status", dashboard.DBStatus)
}
