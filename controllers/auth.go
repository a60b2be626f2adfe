package controllers

import (
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/service"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/gin-gonic/gin"
)

// AuthController admin login
type AuthController struct {
	auth *service.AuthService
}

func NewAuthController(auth *service.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Login POST /api/auth/login
func (ctl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	utils.Logger.Info().Str("username", req.Username).Msg("login attempt")

	resp, err := ctl.auth.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, resp, "login successful")
}

// Me GET /api/auth/me
func (ctl *AuthController) Me(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	account, err := ctl.auth.Me(c.Request.Context(), user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"user": account}, "")
}
