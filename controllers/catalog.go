package controllers

import (
	"net/http"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/service"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/gin-gonic/gin"
)

// CatalogController back-office tests and packages
type CatalogController struct {
	tests    *service.TestService
	packages *service.PackageService
}

func NewCatalogController(tests *service.TestService, packages *service.PackageService) *CatalogController {
	return &CatalogController{tests: tests, packages: packages}
}

func (ctl *CatalogController) GetTests(c *gin.Context) {
	var f service.CatalogFilters
	if !bindQuery(c, &f) {
		return
	}
	tests, err := ctl.tests.List(c.Request.Context(), f)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.ListResponse(c, "tests", tests, len(tests))
}

func (ctl *CatalogController) GetTest(c *gin.Context) {
	t, err := ctl.tests.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"test": t}, "")
}

func (ctl *CatalogController) CreateTest(c *gin.Context) {
	var req models.TestRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := ctl.tests.Create(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"test": t}, "test created", http.StatusCreated)
}

func (ctl *CatalogController) UpdateTest(c *gin.Context) {
	var req models.UpdateTestRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := ctl.tests.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"test": t}, "test updated")
}

func (ctl *CatalogController) DeleteTest(c *gin.Context) {
	if err := ctl.tests.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "test deleted")
}

func (ctl *CatalogController) GetPackages(c *gin.Context) {
	var f service.CatalogFilters
	if !bindQuery(c, &f) {
		return
	}
	packages, err := ctl.packages.List(c.Request.Context(), f)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.ListResponse(c, "packages", packages, len(packages))
}

func (ctl *CatalogController) GetPackage(c *gin.Context) {
	p, err := ctl.packages.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"package": p}, "")
}

func (ctl *CatalogController) CreatePackage(c *gin.Context) {
	var req models.PackageRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := ctl.packages.Create(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"package": p}, "package created", http.StatusCreated)
}

func (ctl *CatalogController) UpdatePackage(c *gin.Context) {
	var req models.UpdatePackageRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := ctl.packages.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"package": p}, "package updated")
}

func (ctl *CatalogController) DeletePackage(c *gin.Context) {
	if err := ctl.packages.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "package deleted")
}
