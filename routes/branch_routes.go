package routes

import (
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/controllers"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/middleware"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"

	"github.com/gin-gonic/gin"
)

// RegisterBranchRoutes any admin may read branches; changes need canManageTenants
func RegisterBranchRoutes(router *gin.Engine, ctl *controllers.BranchController) {
	branches := router.Group("/api/branches")
	branches.Use(middleware.AuthMiddleware())

	manage := middleware.RequireCapability(models.CanManageTenants)

	branches.GET("", ctl.GetBranches)
	branches.GET("/:id", ctl.GetBranch)
	branches.POST("", manage, ctl.CreateBranch)
	branches.PUT("/:id", manage, ctl.UpdateBranch)
	branches.PATCH("/:id/toggle", manage, ctl.ToggleBranch)
	branches.DELETE("/:id", manage, ctl.DeleteBranch)
}
