package controllers

import (
	"net/http"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/service"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/gin-gonic/gin"
)

// InventoryController items, stock ledger, reorders and low-stock alerts
type InventoryController struct {
	inventory *service.InventoryService
	reorders  *service.ReorderService
	alerts    *service.AlertService
}

func NewInventoryController(inventory *service.InventoryService, reorders *service.ReorderService, alerts *service.AlertService) *InventoryController {
	return &InventoryController{inventory: inventory, reorders: reorders, alerts: alerts}
}

// GetItems GET /api/inventory/items
func (ctl *InventoryController) GetItems(c *gin.Context) {
	var f models.InventoryFilters
	if !bindQuery(c, &f) {
		return
	}
	items, err := ctl.inventory.ListItems(c.Request.Context(), f)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.ListResponse(c, "items", items, len(items))
}

// GetItem GET /api/inventory/items/:id
func (ctl *InventoryController) GetItem(c *gin.Context) {
	item, err := ctl.inventory.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"item": item}, "")
}

// CreateItem POST /api/inventory/items
func (ctl *InventoryController) CreateItem(c *gin.Context) {
	var req models.CreateItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := ctl.inventory.CreateItem(c.Request.Context(), req, utils.OperatorName(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"item": item}, "item created", http.StatusCreated)
}

// UpdateItem PUT /api/inventory/items/:id
func (ctl *InventoryController) UpdateItem(c *gin.Context) {
	var req models.UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := ctl.inventory.UpdateItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"item": item}, "item updated")
}

// DeleteItem DELETE /api/inventory/items/:id
func (ctl *InventoryController) DeleteItem(c *gin.Context) {
	if err := ctl.inventory.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "item deleted")
}

// AdjustStock POST /api/inventory/items/:id/adjust
func (ctl *InventoryController) AdjustStock(c *gin.Context) {
	var req models.StockAdjustmentRequest
	if !bindJSON(c, &req) {
		return
	}
	tx, item, err := ctl.inventory.AdjustStock(c.Request.Context(), c.Param("id"), service.StockAdjustment{
		Type:            req.Type,
		Quantity:        req.Quantity,
		PerformedBy:     utils.OperatorName(c),
		ReferenceNumber: req.ReferenceNumber,
		Reason:          req.Reason,
		Notes:           req.Notes,
	})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"transaction": tx, "item": item}, "stock adjusted", http.StatusCreated)
}

// GetTransactions GET /api/inventory/transactions
func (ctl *InventoryController) GetTransactions(c *gin.Context) {
	var f service.TransactionFilters
	if !bindQuery(c, &f) {
		return
	}
	if id := c.Param("id"); id != "" {
		f.ItemID = id
	}
	rows, err := ctl.inventory.Transactions(c.Request.Context(), f)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.ListResponse(c, "transactions", rows, len(rows))
}

// GetMovementSummary GET /api/inventory/movements?startDate&endDate
func (ctl *InventoryController) GetMovementSummary(c *gin.Context) {
	summary, err := ctl.inventory.MovementSummary(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"summary": summary}, "")
}

// GetInventoryStats GET /api/inventory/stats
func (ctl *InventoryController) GetInventoryStats(c *gin.Context) {
	stats, err := ctl.inventory.Stats(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"stats": stats}, "")
}

// GetSuppliers GET /api/inventory/suppliers
func (ctl *InventoryController) GetSuppliers(c *gin.Context) {
	suppliers, err := ctl.inventory.Suppliers(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.ListResponse(c, "suppliers", suppliers, len(suppliers))
}

// ExportItems GET /api/inventory/export?format=csv|excel
func (ctl *InventoryController) ExportItems(c *gin.Context) {
	var f models.InventoryFilters
	if !bindQuery(c, &f) {
		return
	}
	format := c.DefaultQuery("format", service.ExportCSV)
	data, err := ctl.inventory.Export(c.Request.Context(), f, format)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	sendFile(c, service.ExportFilename("inventory", format, time.Now()), format, data)
}

// GetAlerts GET /api/inventory/alerts
func (ctl *InventoryController) GetAlerts(c *gin.Context) {
	alerts, err := ctl.alerts.Active(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.ListResponse(c, "alerts", alerts, len(alerts))
}

// RefreshAlerts POST /api/inventory/alerts/refresh
func (ctl *InventoryController) RefreshAlerts(c *gin.Context) {
	alerts, err := ctl.alerts.Refresh(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.ListResponse(c, "alerts", alerts, len(alerts))
}

// DismissAlert POST /api/inventory/alerts/:id/dismiss
func (ctl *InventoryController) DismissAlert(c *gin.Context) {
	alert, err := ctl.alerts.Dismiss(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"alert": alert}, "alert dismissed")
}

// GetReorders GET /api/inventory/reorders
func (ctl *InventoryController) GetReorders(c *gin.Context) {
	var f service.ReorderFilters
	if !bindQuery(c, &f) {
		return
	}
	reorders, err := ctl.reorders.List(c.Request.Context(), f)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.ListResponse(c, "reorders", reorders, len(reorders))
}

// GetReorder GET /api/inventory/reorders/:id
func (ctl *InventoryController) GetReorder(c *gin.Context) {
	r, err := ctl.reorders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"reorder": r}, "")
}

// CreateReorder POST /api/inventory/reorders
func (ctl *InventoryController) CreateReorder(c *gin.Context) {
	var req models.CreateReorderRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := ctl.reorders.Create(c.Request.Context(), req, utils.OperatorName(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"reorder": r}, "reorder created", http.StatusCreated)
}

// UpdateReorder PUT /api/inventory/reorders/:id
func (ctl *InventoryController) UpdateReorder(c *gin.Context) {
	var req models.UpdateReorderRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := ctl.reorders.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"reorder": r}, "reorder updated")
}

// TransitionReorder PATCH /api/inventory/reorders/:id/status
func (ctl *InventoryController) TransitionReorder(c *gin.Context) {
	var req models.ReorderTransitionRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := ctl.reorders.Transition(c.Request.Context(), c.Param("id"), req, utils.OperatorName(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"reorder": r}, "reorder status updated")
}

// CancelReorder POST /api/inventory/reorders/:id/cancel
func (ctl *InventoryController) CancelReorder(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	r, err := ctl.reorders.Cancel(c.Request.Context(), c.Param("id"), req.Reason, utils.OperatorName(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"reorder": r}, "reorder cancelled")
}
