package controllers

import (
	"net/http"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/service"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/gin-gonic/gin"
)

// AdminUserController back-office accounts
type AdminUserController struct {
	users *service.AdminUserService
}

func NewAdminUserController(users *service.AdminUserService) *AdminUserController {
	return &AdminUserController{users: users}
}

// GetAllUsers GET /api/users
func (ctl *AdminUserController) GetAllUsers(c *gin.Context) {
	var f models.AdminUserFilters
	if !bindQuery(c, &f) {
		return
	}
	users, err := ctl.users.List(c.Request.Context(), f)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.ListResponse(c, "users", users, len(users))
}

// GetUserStats GET /api/users/stats
func (ctl *AdminUserController) GetUserStats(c *gin.Context) {
	stats, err := ctl.users.Stats(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"stats": stats}, "")
}

// GetUser GET /api/users/:id
func (ctl *AdminUserController) GetUser(c *gin.Context) {
	user, err := ctl.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"user": user}, "")
}

// CreateUser POST /api/users
func (ctl *AdminUserController) CreateUser(c *gin.Context) {
	var req models.CreateAdminUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := ctl.users.Create(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"user": user}, "user created", http.StatusCreated)
}

// UpdateUser PUT /api/users/:id
func (ctl *AdminUserController) UpdateUser(c *gin.Context) {
	var req models.UpdateAdminUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := ctl.users.Update(c.Request.Context(), c.Param("id"), currentUserID(c), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"user": user}, "user updated")
}

// UpdateUserStatus PATCH /api/users/:id/status
func (ctl *AdminUserController) UpdateUserStatus(c *gin.Context) {
	var req models.UpdateAdminStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := ctl.users.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"user": user}, "status updated")
}

// DeleteUser DELETE /api/users/:id
func (ctl *AdminUserController) DeleteUser(c *gin.Context) {
	if err := ctl.users.Delete(c.Request.Context(), c.Param("id"), currentUserID(c)); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "user deleted")
}
