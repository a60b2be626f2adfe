package controllers

import (
	"net/http"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/service"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/gin-gonic/gin"
)

// OrderController /api/orders
type OrderController struct {
	orders *service.OrderService
}

func NewOrderController(orders *service.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// GetOrders GET /api/orders
func (ctl *OrderController) GetOrders(c *gin.Context) {
	var f models.OrderFilters
	if !bindQuery(c, &f) {
		return
	}
	orders, err := ctl.orders.List(c.Request.Context(), f)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.ListResponse(c, "orders", orders, len(orders))
}

// GetOrderStats GET /api/orders/stats
func (ctl *OrderController) GetOrderStats(c *gin.Context) {
	stats, err := ctl.orders.Stats(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"stats": stats}, "")
}

// ExportOrders GET /api/orders/export?format=csv|excel
func (ctl *OrderController) ExportOrders(c *gin.Context) {
	var f models.OrderFilters
	if !bindQuery(c, &f) {
		return
	}
	format := c.DefaultQuery("format", service.ExportCSV)
	data, err := ctl.orders.Export(c.Request.Context(), f, format)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	sendFile(c, service.ExportFilename("orders", format, time.Now()), format, data)
}

// GetOrder GET /api/orders/:id
func (ctl *OrderController) GetOrder(c *gin.Context) {
	order, err := ctl.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"order": order}, "")
}

// CreateOrder POST /api/orders
func (ctl *OrderController) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := ctl.orders.Create(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"order": order}, "order created", http.StatusCreated)
}

// UpdateOrder PATCH /api/orders/:id
func (ctl *OrderController) UpdateOrder(c *gin.Context) {
	var req models.UpdateOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := ctl.orders.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"order": order}, "order updated")
}

// UpdateOrderStatus PATCH /api/orders/:id/status
func (ctl *OrderController) UpdateOrderStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := ctl.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"order": order}, "order status updated")
}

// UpdateTestStatus PATCH /api/orders/:id/tests/:testId/status
func (ctl *OrderController) UpdateTestStatus(c *gin.Context) {
	var req models.UpdateTestStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := ctl.orders.UpdateTestStatus(c.Request.Context(), c.Param("id"), c.Param("testId"), req.Status)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"order": order}, "test status updated")
}

// AssignCollector PATCH /api/orders/:id/assign-collector
func (ctl *OrderController) AssignCollector(c *gin.Context) {
	var req models.AssignCollectorRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := ctl.orders.AssignCollector(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"order": order}, "collector assigned")
}

// DeleteOrder DELETE /api/orders/:id
func (ctl *OrderController) DeleteOrder(c *gin.Context) {
	if err := ctl.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "order deleted")
}
