package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(t *testing.T, svc *Services, code string, qty int64) *models.InventoryItemView {
	t.Helper()
	item, err := svc.Inventory.CreateItem(context.Background(), models.CreateItemRequest{
		Code:           code,
		Name:           "Test Item " + code,
		BranchID:       "branch-002",
		CategoryID:     "cat-007",
		UnitType:       models.UnitPieces,
		QuantityInHand: qty,
		ReorderPoint:   3,
		CostPrice:      10,
	}, "tester")
	require.NoError(t, err)
	return item
}

func TestAdjustStockUsage(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, time.Second)
	item := newItem(t, svc, "tst-001", 5)
	assert.Equal(t, "TST-001", item.Code)

	row, updated, err := svc.Inventory.AdjustStock(ctx, item.ID, StockAdjustment{Type: models.TransactionUsage, Quantity: 3, PerformedBy: "tester"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.QuantityInHand)
	assert.Equal(t, int64(5), row.QuantityBefore)
	assert.Equal(t, int64(2), row.QuantityAfter)
	assert.Equal(t, int64(3), row.Quantity)
	assert.Equal(t, models.TransactionUsage, row.Type)

	row, updated, err = svc.Inventory.AdjustStock(ctx, item.ID, StockAdjustment{Type: models.TransactionUsage, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated.QuantityInHand)
	assert.Equal(t, int64(2), row.QuantityBefore)
	assert.Equal(t, int64(0), row.QuantityAfter)
	assert.Equal(t, int64(2), row.Quantity, "recorded movement is what actually left")

	rows, err := svc.Inventory.Transactions(ctx, TransactionFilters{ItemID: item.ID})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, models.TransactionPurchase, rows[0].Type)
	assert.Equal(t, "Opening stock", rows[0].Reason)

	view, err := svc.Inventory.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), view.QuantityInHand)
	assert.Equal(t, models.StockStatusOutOfStock, view.StockStatus)
	assert.Equal(t, "City Center Branch", view.BranchName)
}

func TestAdjustStockDirectionFollowsType(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, time.Second)
	item := newItem(t, svc, "TST-002", 10)

	cases := []struct {
		typ  models.TransactionType
		qty  int64
		want int64
	}{
		{models.TransactionReturn, 4, 14},
		{models.TransactionPurchase, -6, 20},
		{models.TransactionDamaged, 1, 19},
		{models.TransactionExpiry, -2, 17},
		{models.TransactionAdjustment, 7, 10},
		{models.TransactionDonation, 100, 0},
	}
	for _, tc := range cases {
		_, updated, err := svc.Inventory.AdjustStock(ctx, item.ID, StockAdjustment{Type: tc.typ, Quantity: tc.qty})
		require.NoError(t, err, tc.typ)
		assert.Equal(t, tc.want, updated.QuantityInHand, tc.typ)
	}
}

func TestAdjustStockRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, time.Second)

	_, _, err := svc.Inventory.AdjustStock(ctx, "inv-001", StockAdjustment{Type: "Theft", Quantity: 1})
	requireApiError(t, err, utils.CodeValidationFailed)

	_, _, err = svc.Inventory.AdjustStock(ctx, "inv-001", StockAdjustment{Type: models.TransactionUsage})
	requireApiError(t, err, utils.CodeValidationFailed)

	_, _, err = svc.Inventory.AdjustStock(ctx, "inv-404", StockAdjustment{Type: models.TransactionUsage, Quantity: 1})
	requireApiError(t, err, utils.CodeResourceNotFound)

	rows, err := svc.Inventory.Transactions(ctx, TransactionFilters{ItemID: "inv-001"})
	require.NoError(t, err)
	assert.Len(t, rows, 1, "only the opening row")
}

func TestUpdateItemRefusesQuantityEdits(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, time.Second)

	qty := int64(99)
	_, err := svc.Inventory.UpdateItem(ctx, "inv-001", models.UpdateItemRequest{QuantityInHand: &qty})
	apiErr := requireApiError(t, err, utils.CodeValidationFailed)
	assert.Contains(t, apiErr.Fields, "quantityInHand")

	same := int64(45)
	name := "CBC Reagent Kit (5 part)"
	view, err := svc.Inventory.UpdateItem(ctx, "inv-001", models.UpdateItemRequest{QuantityInHand: &same, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, view.Name)
	assert.Equal(t, int64(45), view.QuantityInHand)
}

func TestCreateItemRejectsDuplicateCode(t *testing.T) {
	svc, _ := newTestServices(t, time.Second)
	_, err := svc.Inventory.CreateItem(context.Background(), models.CreateItemRequest{
		Code:       "reg-cbc-001",
		Name:       "Another CBC kit",
		BranchID:   "branch-001",
		CategoryID: "cat-001",
		UnitType:   models.UnitKit,
	}, "tester")
	apiErr := requireApiError(t, err, utils.CodeDuplicateField)
	assert.Contains(t, apiErr.Fields, "itemCode")
}

func TestReorderLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, time.Second)

	r, err := svc.Reorders.Create(ctx, models.CreateReorderRequest{ItemID: "inv-007", RequestedQuantity: 50}, "manager")
	require.NoError(t, err)
	assert.Equal(t, models.ReorderOpen, r.Status)
	assert.Equal(t, 19000.0, r.ApproxCost)
	assert.Equal(t, "sup-004", r.SupplierID)

	_, err = svc.Reorders.Transition(ctx, r.ID, models.ReorderTransitionRequest{Status: models.ReorderReceived}, "manager")
	requireApiError(t, err, utils.CodeInvalidTransition)

	item, err := svc.Inventory.GetItem(ctx, "inv-007")
	require.NoError(t, err)
	assert.Equal(t, int64(8), item.QuantityInHand, "rejected receipt leaves stock alone")

	r, err = svc.Reorders.Transition(ctx, r.ID, models.ReorderTransitionRequest{Status: models.ReorderConfirmed, PurchaseOrderNumber: "PO-77"}, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", r.ApprovedBy)

	_, err = svc.Reorders.Update(ctx, r.ID, models.UpdateReorderRequest{})
	requireApiError(t, err, utils.CodeInvalidTransition)

	r, err = svc.Reorders.Transition(ctx, r.ID, models.ReorderTransitionRequest{Status: models.ReorderReceived}, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.ReorderReceived, r.Status)
	assert.Equal(t, "2026-03-10", r.ActualDeliveryDate)

	item, err = svc.Inventory.GetItem(ctx, "inv-007")
	require.NoError(t, err)
	assert.Equal(t, int64(58), item.QuantityInHand)

	rows, err := svc.Inventory.Transactions(ctx, TransactionFilters{ItemID: "inv-007", Type: models.TransactionPurchase})
	require.NoError(t, err)
	last := rows[len(rows)-1]
	assert.Equal(t, int64(50), last.Quantity)
	assert.Equal(t, "PO-77", last.ReferenceNumber)

	_, err = svc.Reorders.Cancel(ctx, r.ID, "late", "admin")
	requireApiError(t, err, utils.CodeInvalidTransition)
}

func TestCanTransition(t *testing.T) {
	legal := [][2]models.ReorderStatus{
		{models.ReorderOpen, models.ReorderConfirmed},
		{models.ReorderOpen, models.ReorderCancelled},
		{models.ReorderConfirmed, models.ReorderReceived},
		{models.ReorderConfirmed, models.ReorderPartial},
	}
	for _, p := range legal {
		assert.True(t, CanTransition(p[0], p[1]), "%s -> %s", p[0], p[1])
	}

	illegal := [][2]models.ReorderStatus{
		{models.ReorderOpen, models.ReorderReceived},
		{models.ReorderOpen, models.ReorderPartial},
		{models.ReorderConfirmed, models.ReorderCancelled},
		{models.ReorderConfirmed, models.ReorderOpen},
		{models.ReorderReceived, models.ReorderOpen},
		{models.ReorderCancelled, models.ReorderOpen},
		{models.ReorderPartial, models.ReorderReceived},
	}
	for _, p := range illegal {
		assert.False(t, CanTransition(p[0], p[1]), "%s -> %s", p[0], p[1])
	}
}

func TestDeleteItemBlockedByOpenReorder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, time.Second)

	r, err := svc.Reorders.Create(ctx, models.CreateReorderRequest{ItemID: "inv-010", RequestedQuantity: 200}, "manager")
	require.NoError(t, err)
	requireApiError(t, svc.Inventory.DeleteItem(ctx, "inv-010"), utils.CodeHasDependents)

	_, err = svc.Reorders.Cancel(ctx, r.ID, "supplier out of stock", "manager")
	require.NoError(t, err)
	require.NoError(t, svc.Inventory.DeleteItem(ctx, "inv-010"))
}

func TestLowStockAlerts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, time.Second)

	alerts, err := svc.Alerts.Active(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(alerts))
	for _, a := range alerts {
		ids = append(ids, a.ItemID)
	}
	assert.ElementsMatch(t, []string{"inv-002", "inv-005", "inv-007", "inv-010"}, ids)

	for _, a := range alerts {
		if a.ItemID == "inv-010" {
			assert.Equal(t, models.AlertCritical, a.Level)
		} else {
			assert.Equal(t, models.AlertWarning, a.Level)
		}
	}

	dismissed, err := svc.Alerts.Dismiss(ctx, "alert-inv-002")
	require.NoError(t, err)
	assert.Equal(t, models.AlertIgnored, dismissed.Status)

	alerts, err = svc.Alerts.Active(ctx)
	require.NoError(t, err)
	assert.Len(t, alerts, 3)

	_, _, err = svc.Inventory.AdjustStock(ctx, "inv-007", StockAdjustment{Type: models.TransactionPurchase, Quantity: 100})
	require.NoError(t, err)
	alerts, err = svc.Alerts.Refresh(ctx)
	require.NoError(t, err)
	assert.Len(t, alerts, 3, "inv-002 is back, inv-007 is restocked")

	_, err = svc.Alerts.Dismiss(ctx, "alert-inv-001")
	requireApiError(t, err, utils.CodeResourceNotFound)
}

func TestInventoryStatsAndMovements(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, time.Second)

	stats, err := svc.Inventory.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.TotalItems)
	assert.Equal(t, 1, stats.OutOfStockItems)
	assert.Equal(t, 3, stats.LowStockItems)
	assert.Equal(t, 7, stats.CategoriesCount)
	assert.Equal(t, 4, stats.SuppliersCount)

	_, _, err = svc.Inventory.AdjustStock(ctx, "inv-001", StockAdjustment{Type: models.TransactionUsage, Quantity: 5})
	require.NoError(t, err)
	_, _, err = svc.Inventory.AdjustStock(ctx, "inv-004", StockAdjustment{Type: models.TransactionPurchase, Quantity: 15})
	require.NoError(t, err)

	summary, err := svc.Inventory.MovementSummary(ctx, "2026-03-10", "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Transactions)
	assert.Equal(t, int64(15), summary.TotalInbound)
	assert.Equal(t, int64(5), summary.TotalOutbound)
	assert.Equal(t, int64(10), summary.NetMovement)
}

func TestItemsExport(t *testing.T) {
	svc, _ := newTestServices(t, time.Second)

	data, err := svc.Inventory.Export(context.Background(), models.InventoryFilters{BranchID: "branch-004"}, ExportCSV)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CON-MSK-001")
	assert.NotContains(t, string(data), "REG-CBC-001")

	_, err = svc.Inventory.Export(context.Background(), models.InventoryFilters{}, "pdf")
	requireApiError(t, err, utils.CodeValidationFailed)
}

func TestUpdateItemDuringAdjustmentKeepsQuantity(t *testing.T) {
	ctx := context.Background()
	svc := newSlowServices(t, 2*time.Millisecond)

	for _, code := range []string{"tst-101", "tst-102", "tst-103"} {
		item := newItem(t, svc, code, 5)
		name := "Renamed " + code

		var wg sync.WaitGroup
		var editErr, adjustErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, editErr = svc.Inventory.UpdateItem(ctx, item.ID, models.UpdateItemRequest{Name: &name})
		}()
		go func() {
			defer wg.Done()
			_, _, adjustErr = svc.Inventory.AdjustStock(ctx, item.ID, StockAdjustment{Type: models.TransactionUsage, Quantity: 3, PerformedBy: "tester"})
		}()
		wg.Wait()
		require.NoError(t, editErr)
		require.NoError(t, adjustErr)

		view, err := svc.Inventory.GetItem(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, name, view.Name)
		assert.Equal(t, int64(2), view.QuantityInHand, code)

		rows, err := svc.Inventory.Transactions(ctx, TransactionFilters{ItemID: item.ID, Type: models.TransactionUsage})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, view.QuantityInHand, rows[0].QuantityAfter)
	}
}

func TestReorderEditRacingConfirmation(t *testing.T) {
	ctx := context.Background()
	svc := newSlowServices(t, 2*time.Millisecond)

	for i := 0; i < 3; i++ {
		r, err := svc.Reorders.Create(ctx, models.CreateReorderRequest{ItemID: "inv-007", RequestedQuantity: 50}, "manager")
		require.NoError(t, err)
		notes := "call the supplier first"

		var wg sync.WaitGroup
		var editErr, confirmErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, editErr = svc.Reorders.Update(ctx, r.ID, models.UpdateReorderRequest{Notes: &notes})
		}()
		go func() {
			defer wg.Done()
			_, confirmErr = svc.Reorders.Transition(ctx, r.ID, models.ReorderTransitionRequest{Status: models.ReorderConfirmed, PurchaseOrderNumber: "PO-88"}, "admin")
		}()
		wg.Wait()
		require.NoError(t, confirmErr)

		got, err := svc.Reorders.Get(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ReorderConfirmed, got.Status)
		assert.Equal(t, "admin", got.ApprovedBy)
		assert.Equal(t, "PO-88", got.PurchaseOrderNumber)
		if editErr != nil {
			requireApiError(t, editErr, utils.CodeInvalidTransition)
		} else {
			assert.Equal(t, notes, got.Notes)
		}
	}
}

func TestPartialReceiptLeavesStockAlone(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, time.Second)

	r, err := svc.Reorders.Create(ctx, models.CreateReorderRequest{ItemID: "inv-007", RequestedQuantity: 50}, "manager")
	require.NoError(t, err)
	_, err = svc.Reorders.Transition(ctx, r.ID, models.ReorderTransitionRequest{Status: models.ReorderConfirmed}, "admin")
	require.NoError(t, err)

	before, err := svc.Inventory.Transactions(ctx, TransactionFilters{ItemID: "inv-007", Type: models.TransactionPurchase})
	require.NoError(t, err)

	r, err = svc.Reorders.Transition(ctx, r.ID, models.ReorderTransitionRequest{Status: models.ReorderPartial, Notes: "20 of 50 delivered"}, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.ReorderPartial, r.Status)
	assert.Equal(t, "2026-03-10", r.ActualDeliveryDate)
	assert.Equal(t, "20 of 50 delivered", r.Notes)

	item, err := svc.Inventory.GetItem(ctx, "inv-007")
	require.NoError(t, err)
	assert.Equal(t, int64(8), item.QuantityInHand)

	after, err := svc.Inventory.Transactions(ctx, TransactionFilters{ItemID: "inv-007", Type: models.TransactionPurchase})
	require.NoError(t, err)
	assert.Len(t, after, len(before))

	_, err = svc.Reorders.Transition(ctx, r.ID, models.ReorderTransitionRequest{Status: models.ReorderReceived}, "admin")
	requireApiError(t, err, utils.CodeInvalidTransition)

	item, err = svc.Inventory.GetItem(ctx, "inv-007")
	require.NoError(t, err)
	assert.Equal(t, int64(8), item.QuantityInHand)
}
