package routes

import (
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/controllers"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes login is public, /me needs a token
func RegisterAuthRoutes(router *gin.Engine, ctl *controllers.AuthController) {
	auth := router.Group("/api/auth")

	auth.POST("/login", ctl.Login)
	auth.GET("/me", middleware.AuthMiddleware(), ctl.Me)
}
