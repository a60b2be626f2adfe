package service

import (
	"context"
	"testing"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedFinance two live orders, one cancelled order and one purchase, all on testNow
func seedFinance(t *testing.T, svc *Services) {
	t.Helper()
	ctx := context.Background()

	full := walkInRequest()
	full.PackageIDs = nil
	full.PaidAmount = 399
	createOrder(t, svc, full)

	partial := walkInRequest()
	partial.TestIDs, partial.PackageIDs = []string{"test-2"}, nil
	partial.PaidAmount = 200
	order := createOrder(t, svc, partial)
	require.Equal(t, models.PaymentPartial, order.PaymentStatus)

	dropped := walkInRequest()
	dropped.PaidAmount = 1000
	cancelled := createOrder(t, svc, dropped)
	_, err := svc.Orders.UpdateStatus(ctx, cancelled.ID, models.OrderCancelled)
	require.NoError(t, err)

	_, _, err = svc.Inventory.AdjustStock(ctx, "inv-009", StockAdjustment{Type: models.TransactionPurchase, Quantity: 1})
	require.NoError(t, err)
	// usage is not a cost
	_, _, err = svc.Inventory.AdjustStock(ctx, "inv-009", StockAdjustment{Type: models.TransactionUsage, Quantity: 4})
	require.NoError(t, err)
}

func TestFinanceSummary(t *testing.T) {
	svc, _ := newTestServices(t, time.Second)
	seedFinance(t, svc)

	summary, err := svc.Finance.Summary(context.Background(), "2026-03-01", "2026-03-10")
	require.NoError(t, err)

	kpis := summary.KPIs
	assert.Equal(t, 599.0, kpis.TotalRevenue)
	assert.Equal(t, 2, kpis.TotalSales)
	assert.Equal(t, 85.0, kpis.InventoryCost)
	assert.Equal(t, 514.0, kpis.Profit)
	assert.Equal(t, 85.81, kpis.ProfitMargin)
	assert.Equal(t, 399.0, kpis.PendingDues)

	require.Len(t, summary.Daily, 10)
	assert.Equal(t, "2026-03-01", summary.Daily[0].Date)
	assert.Zero(t, summary.Daily[0].Revenue)
	last := summary.Daily[9]
	assert.Equal(t, "2026-03-10", last.Date)
	assert.Equal(t, 599.0, last.Revenue)
	assert.Equal(t, 2, last.Sales)
	assert.Equal(t, 85.0, last.InventoryCost)
	assert.Equal(t, 514.0, last.Profit)

	require.Len(t, summary.BySource, 1)
	assert.Equal(t, models.OrderSourceWalkIn, summary.BySource[0].Source)
	assert.Equal(t, 2, summary.BySource[0].Orders)
	assert.Equal(t, 100.0, summary.BySource[0].Percentage)
}

func TestFinanceSummaryOutsideWindow(t *testing.T) {
	svc, _ := newTestServices(t, time.Second)
	seedFinance(t, svc)

	summary, err := svc.Finance.Summary(context.Background(), "2026-02-01", "2026-02-28")
	require.NoError(t, err)
	assert.Zero(t, summary.KPIs.TotalRevenue)
	assert.Zero(t, summary.KPIs.ProfitMargin)
	assert.Empty(t, summary.BySource)
	assert.Len(t, summary.Daily, 28)
}

func TestFinanceSummaryDefaultWindow(t *testing.T) {
	svc, _ := newTestServices(t, time.Second)
	seedFinance(t, svc)

	summary, err := svc.Finance.Summary(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, summary.Daily, defaultFinanceDays)
	assert.Equal(t, "2026-03-10", summary.Daily[len(summary.Daily)-1].Date)
	assert.Equal(t, 599.0, summary.KPIs.TotalRevenue)
}

func TestFinanceSummaryRejectsBadRange(t *testing.T) {
	svc, _ := newTestServices(t, time.Second)
	ctx := context.Background()

	_, err := svc.Finance.Summary(ctx, "March 1", "")
	apiErr := requireApiError(t, err, utils.CodeValidationFailed)
	assert.Contains(t, apiErr.Fields, "from")

	_, err = svc.Finance.Summary(ctx, "", "2026/03/10")
	apiErr = requireApiError(t, err, utils.CodeValidationFailed)
	assert.Contains(t, apiErr.Fields, "to")

	_, err = svc.Finance.Summary(ctx, "2026-03-10", "2026-03-01")
	apiErr = requireApiError(t, err, utils.CodeValidationFailed)
	assert.Contains(t, apiErr.Fields, "from")
}
