package routes

import (
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes public booking wizard, no authentication
func RegisterBookingRoutes(router *gin.Engine, ctl *controllers.BookingController) {
	booking := router.Group("/api/booking")

	booking.GET("/options", ctl.GetOptions)
	booking.GET("/tests", ctl.GetTests)
	booking.GET("/packages", ctl.GetPackages)

	sessions := booking.Group("/sessions")
	sessions.POST("", ctl.StartSession)
	sessions.GET("/:id", ctl.GetSession)
	sessions.DELETE("/:id", ctl.Discard)
	sessions.POST("/:id/next", ctl.Next)
	sessions.POST("/:id/back", ctl.Back)
	sessions.PUT("/:id/otp/digit", ctl.EnterDigit)
	sessions.POST("/:id/otp/backspace", ctl.Backspace)
	sessions.POST("/:id/otp/paste", ctl.Paste)
	sessions.POST("/:id/otp/resend", ctl.ResendOTP)
	sessions.POST("/:id/verify", ctl.Verify)
}
