package routes

import (
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/controllers"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/middleware"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes back-office account management
func RegisterUserRoutes(router *gin.Engine, ctl *controllers.AdminUserController) {
	users := router.Group("/api/users")
	users.Use(middleware.AuthMiddleware(), middleware.RequireCapability(models.CanManageUsers))

	users.GET("", ctl.GetAllUsers)
	users.GET("/stats", ctl.GetUserStats)
	users.GET("/:id", ctl.GetUser)
	users.POST("", ctl.CreateUser)
	users.PUT("/:id", ctl.UpdateUser)
	users.PATCH("/:id/status", ctl.UpdateUserStatus)
	users.DELETE("/:id", ctl.DeleteUser)
}
