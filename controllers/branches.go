package controllers

import (
	"net/http"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/service"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/gin-gonic/gin"
)

// BranchController /api/branches
type BranchController struct {
	branches *service.BranchService
}

func NewBranchController(branches *service.BranchService) *BranchController {
	return &BranchController{branches: branches}
}

func (ctl *BranchController) GetBranches(c *gin.Context) {
	var f service.BranchFilters
	if !bindQuery(c, &f) {
		return
	}
	branches, err := ctl.branches.List(c.Request.Context(), f)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.ListResponse(c, "branches", branches, len(branches))
}

func (ctl *BranchController) GetBranch(c *gin.Context) {
	b, err := ctl.branches.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"branch": b}, "")
}

func (ctl *BranchController) CreateBranch(c *gin.Context) {
	var req models.BranchRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := ctl.branches.Create(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"branch": b}, "branch created", http.StatusCreated)
}

func (ctl *BranchController) UpdateBranch(c *gin.Context) {
	var req models.UpdateBranchRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := ctl.branches.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"branch": b}, "branch updated")
}

// ToggleBranch PATCH /api/branches/:id/toggle
func (ctl *BranchController) ToggleBranch(c *gin.Context) {
	b, err := ctl.branches.ToggleActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"branch": b}, "")
}

func (ctl *BranchController) DeleteBranch(c *gin.Context) {
	if err := ctl.branches.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "branch deleted")
}
