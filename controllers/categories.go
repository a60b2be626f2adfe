package controllers

import (
	"net/http"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/service"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/gin-gonic/gin"
)

// CategoryController /api/categories
type CategoryController struct {
	categories *service.CategoryService
}

func NewCategoryController(categories *service.CategoryService) *CategoryController {
	return &CategoryController{categories: categories}
}

func (ctl *CategoryController) GetCategories(c *gin.Context) {
	var f service.CategoryFilters
	if !bindQuery(c, &f) {
		return
	}
	categories, err := ctl.categories.List(c.Request.Context(), f)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.ListResponse(c, "categories", categories, len(categories))
}

func (ctl *CategoryController) GetCategory(c *gin.Context) {
	cat, err := ctl.categories.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"category": cat}, "")
}

func (ctl *CategoryController) CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	cat, err := ctl.categories.Create(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"category": cat}, "category created", http.StatusCreated)
}

func (ctl *CategoryController) UpdateCategory(c *gin.Context) {
	var req models.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	cat, err := ctl.categories.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"category": cat}, "category updated")
}

func (ctl *CategoryController) DeleteCategory(c *gin.Context) {
	if err := ctl.categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "category deleted")
}
