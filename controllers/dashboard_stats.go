package controllers

import (
	"net/http"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/repository"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/service"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/gin-gonic/gin"
)

// DashboardController finance summary, audit trail and health endpoints
type DashboardController struct {
	finance *service.FinanceService
	audit   *service.OperationLogService
	stores  *repository.Stores
}

func NewDashboardController(finance *service.FinanceService, audit *service.OperationLogService, stores *repository.Stores) *DashboardController {
	return &DashboardController{finance: finance, audit: audit, stores: stores}
}

// GetFinanceSummary GET /api/finance/summary?from&to
func (ctl *DashboardController) GetFinanceSummary(c *gin.Context) {
	summary, err := ctl.finance.Summary(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, summary, "")
}

// GetOperationLogs GET /api/operation-logs
func (ctl *DashboardController) GetOperationLogs(c *gin.Context) {
	var f service.OperationLogFilters
	if !bindQuery(c, &f) {
		return
	}
	logs, err := ctl.audit.List(c.Request.Context(), f)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.ListResponse(c, "logs", logs, len(logs))
}

// Health GET /api/health
func (ctl *DashboardController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DBStatus GET /api/db-status
func (ctl *DashboardController) DBStatus(c *gin.Context) {
	c.JSON(http.StatusOK, ctl.stores.Status(c.Request.Context()))
}
