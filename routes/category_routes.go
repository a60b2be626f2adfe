package routes

import (
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/controllers"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/middleware"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"

	"github.com/gin-gonic/gin"
)

// RegisterCategoryRoutes inventory categories
func RegisterCategoryRoutes(router *gin.Engine, ctl *controllers.CategoryController) {
	categories := router.Group("/api/categories")
	categories.Use(middleware.AuthMiddleware(), middleware.RequireCapability(models.CanManageInventory))

	categories.GET("", ctl.GetCategories)
	categories.GET("/:id", ctl.GetCategory)
	categories.POST("", ctl.CreateCategory)
	categories.PUT("/:id", ctl.UpdateCategory)
	categories.DELETE("/:id", ctl.DeleteCategory)
}
