package controllers

import (
	"net/http"
	"strings"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/service"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/gin-gonic/gin"
)

const (
	csvContentType   = "text/csv; charset=utf-8"
	excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// bindJSON decodes the body into req, rendering a 400 on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("invalid request body: "+err.Error()))
		return false
	}
	return true
}

// bindQuery decodes query parameters into f
func bindQuery(c *gin.Context, f interface{}) bool {
	if err := c.ShouldBindQuery(f); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("invalid query parameters: "+err.Error()))
		return false
	}
	return true
}

// currentUserID id of the authenticated admin, empty outside auth
func currentUserID(c *gin.Context) string {
	if user, err := utils.GetUser(c); err == nil {
		return user.ID
	}
	return ""
}

// sendFile writes an export as an attachment
func sendFile(c *gin.Context, filename, format string, data []byte) {
	contentType := csvContentType
	if strings.EqualFold(format, service.ExportExcel) {
		contentType = excelContentType
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}
