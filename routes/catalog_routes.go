package routes

import (
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/controllers"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/middleware"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"

	"github.com/gin-gonic/gin"
)

// RegisterCatalogRoutes "Manage Tests" and "Manage Packages"
func RegisterCatalogRoutes(router *gin.Engine, ctl *controllers.CatalogController) {
	tests := router.Group("/api/tests")
	tests.Use(middleware.AuthMiddleware(), middleware.RequireCapability(models.CanManageTests))
	tests.GET("", ctl.GetTests)
	tests.GET("/:id", ctl.GetTest)
	tests.POST("", ctl.CreateTest)
	tests.PUT("/:id", ctl.UpdateTest)
	tests.DELETE("/:id", ctl.DeleteTest)

	packages := router.Group("/api/packages")
	packages.Use(middleware.AuthMiddleware(), middleware.RequireCapability(models.CanManagePackages))
	packages.GET("", ctl.GetPackages)
	packages.GET("/:id", ctl.GetPackage)
	packages.POST("", ctl.CreatePackage)
	packages.PUT("/:id", ctl.UpdatePackage)
	packages.DELETE("/:id", ctl.DeletePackage)
}
