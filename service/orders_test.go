package service

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func walkInRequest() models.CreateOrderRequest {
	return models.CreateOrderRequest{
		Source:      models.OrderSourceWalkIn,
		BranchID:    "branch-001",
		Patient:     models.OrderPatient{Name: "Ravi Kumar", Mobile: "9812345678", Age: 41, Gender: models.GenderMale},
		TestIDs:     []string{"test-1"},
		PackageIDs:  []string{"pkg-007"},
		PaymentMode: models.PaymentModeCash,
	}
}

func createOrder(t *testing.T, svc *Services, req models.CreateOrderRequest) *models.Order {
	t.Helper()
	order, err := svc.Orders.Create(context.Background(), req)
	require.NoError(t, err)
	return order
}

func TestCreateOrderPricesFromCatalog(t *testing.T) {
	svc, _ := newTestServices(t, time.Second)

	req := walkInRequest()
	req.Discount = 99
	req.PaidAmount = 500
	order := createOrder(t, svc, req)

	assert.Equal(t, "ORD-2026-0001", order.OrderNumber)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, 1299.0, order.Subtotal)
	assert.Equal(t, 1200.0, order.TotalAmount)
	assert.Equal(t, 700.0, order.DueAmount)
	assert.Equal(t, models.PaymentPartial, order.PaymentStatus)
	require.Len(t, order.Tests, 1)
	assert.Equal(t, "CBC", order.Tests[0].Code)
	assert.Equal(t, models.TestPending, order.Tests[0].Status)
	require.Len(t, order.Packages, 1)
	assert.Equal(t, 900.0, order.Packages[0].Price)
	assert.Equal(t, testNow, order.CreatedAt)
}

func TestCreateOrderValidation(t *testing.T) {
	svc, _ := newTestServices(t, time.Second)
	ctx := context.Background()

	req := walkInRequest()
	req.Patient.Mobile = "98123"
	_, err := svc.Orders.Create(ctx, req)
	apiErr := requireApiError(t, err, utils.CodeValidationFailed)
	assert.Contains(t, apiErr.Fields, "patient.mobile")

	req = walkInRequest()
	req.TestIDs, req.PackageIDs = nil, nil
	_, err = svc.Orders.Create(ctx, req)
	requireApiError(t, err, utils.CodeValidationFailed)

	req = walkInRequest()
	req.Source = models.OrderSourceHomeCollect
	_, err = svc.Orders.Create(ctx, req)
	apiErr = requireApiError(t, err, utils.CodeValidationFailed)
	assert.Contains(t, apiErr.Fields, "homeCollection")

	req = walkInRequest()
	req.Discount = 5000
	_, err = svc.Orders.Create(ctx, req)
	apiErr = requireApiError(t, err, utils.CodeValidationFailed)
	assert.Contains(t, apiErr.Fields, "discount")

	req = walkInRequest()
	req.PaidAmount = 2000
	_, err = svc.Orders.Create(ctx, req)
	apiErr = requireApiError(t, err, utils.CodeValidationFailed)
	assert.Contains(t, apiErr.Fields, "paidAmount")

	orders, err := svc.Orders.List(ctx, models.OrderFilters{})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderStatusFlowSkipsSampleCollectionForWalkIns(t *testing.T) {
	svc, _ := newTestServices(t, time.Second)
	ctx := context.Background()
	order := createOrder(t, svc, walkInRequest())

	_, err := svc.Orders.UpdateStatus(ctx, order.ID, models.OrderSampleCollected)
	requireApiError(t, err, utils.CodeInvalidTransition)
	_, err = svc.Orders.UpdateStatus(ctx, order.ID, models.OrderReportReady)
	requireApiError(t, err, utils.CodeInvalidTransition)

	for _, next := range []models.OrderStatus{models.OrderProcessing, models.OrderReportReady, models.OrderCompleted} {
		updated, err := svc.Orders.UpdateStatus(ctx, order.ID, next)
		require.NoError(t, err, string(next))
		assert.Equal(t, next, updated.Status)
	}

	done, err := svc.Orders.Get(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, done.ProcessingStartedAt)
	require.NotNil(t, done.CompletedAt)
	assert.Nil(t, done.SampleCollectedAt)

	_, err = svc.Orders.UpdateStatus(ctx, order.ID, models.OrderCancelled)
	requireApiError(t, err, utils.CodeInvalidTransition)
}

func TestOrderHomeCollectionFlow(t *testing.T) {
	svc, _ := newTestServices(t, time.Second)
	ctx := context.Background()

	req := walkInRequest()
	req.Source = models.OrderSourceHomeCollect
	req.HomeCollection = &models.OrderHomeCollection{
		Address: "22 Civil Lines", City: "Jaipur", Pincode: "302006",
		ScheduledDate: "2026-03-11", ScheduledTime: HomeCollectionSlots[0],
	}
	order := createOrder(t, svc, req)

	assigned, err := svc.Orders.AssignCollector(ctx, order.ID, models.AssignCollectorRequest{
		CollectorID: "col-7", CollectorName: "Meena", CollectorPhone: "9000000007",
	})
	require.NoError(t, err)
	require.NotNil(t, assigned.HomeCollection.Collector)
	assert.Equal(t, "Meena", assigned.HomeCollection.Collector.CollectorName)
	assert.Equal(t, testNow, assigned.HomeCollection.Collector.AssignedAt)

	stats, err := svc.Orders.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.HomeCollectionPending)

	_, err = svc.Orders.UpdateStatus(ctx, order.ID, models.OrderProcessing)
	requireApiError(t, err, utils.CodeInvalidTransition)

	collected, err := svc.Orders.UpdateStatus(ctx, order.ID, models.OrderSampleCollected)
	require.NoError(t, err)
	require.NotNil(t, collected.SampleCollectedAt)

	stats, err = svc.Orders.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.HomeCollectionPending)
	assert.Equal(t, 1, stats.SampleCollectedToday)
}

func TestAssignCollectorNeedsHomeCollection(t *testing.T) {
	svc, _ := newTestServices(t, time.Second)
	order := createOrder(t, svc, walkInRequest())

	_, err := svc.Orders.AssignCollector(context.Background(), order.ID, models.AssignCollectorRequest{CollectorID: "c", CollectorName: "n"})
	requireApiError(t, err, utils.CodeBadRequest)
}

func TestCancelPaidOrderRefunds(t *testing.T) {
	svc, _ := newTestServices(t, time.Second)
	ctx := context.Background()

	req := walkInRequest()
	req.PaidAmount = 1299
	order := createOrder(t, svc, req)
	require.Equal(t, models.PaymentPaid, order.PaymentStatus)

	cancelled, err := svc.Orders.UpdateStatus(ctx, order.ID, models.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentRefunded, cancelled.PaymentStatus)
	require.NotNil(t, cancelled.CancelledAt)

	_, err = svc.Orders.Update(ctx, order.ID, models.UpdateOrderRequest{PaidAmount: new(float64)})
	apiErr := requireApiError(t, err, utils.CodeValidationFailed)
	assert.Contains(t, apiErr.Fields, "paidAmount")
}

func TestOrderUpdateSettlesPayment(t *testing.T) {
	svc, _ := newTestServices(t, time.Second)
	order := createOrder(t, svc, walkInRequest())
	require.Equal(t, models.PaymentPending, order.PaymentStatus)

	paid := 1299.0
	notes := "paid at counter"
	updated, err := svc.Orders.Update(context.Background(), order.ID, models.UpdateOrderRequest{PaidAmount: &paid, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)
	assert.Zero(t, updated.DueAmount)
	assert.Equal(t, notes, updated.Notes)
}

func TestUpdateTestStatusMovesForward(t *testing.T) {
	svc, _ := newTestServices(t, time.Second)
	ctx := context.Background()
	order := createOrder(t, svc, walkInRequest())

	_, err := svc.Orders.UpdateTestStatus(ctx, order.ID, "test-1", models.TestPending)
	requireApiError(t, err, utils.CodeValidationFailed)

	updated, err := svc.Orders.UpdateTestStatus(ctx, order.ID, "test-1", models.TestInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.TestInProgress, updated.Tests[0].Status)

	_, err = svc.Orders.UpdateTestStatus(ctx, order.ID, "test-1", models.TestInProgress)
	requireApiError(t, err, utils.CodeInvalidTransition)

	updated, err = svc.Orders.UpdateTestStatus(ctx, order.ID, "test-1", models.TestCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.TestCompleted, updated.Tests[0].Status)

	_, err = svc.Orders.UpdateTestStatus(ctx, order.ID, "test-1", models.TestInProgress)
	requireApiError(t, err, utils.CodeInvalidTransition)

	_, err = svc.Orders.UpdateTestStatus(ctx, order.ID, "test-8", models.TestInProgress)
	requireApiError(t, err, utils.CodeResourceNotFound)
}

func TestListOrdersNewestFirstWithFilters(t *testing.T) {
	svc, _ := newTestServices(t, time.Second)
	ctx := context.Background()

	tick := testNow
	svc.Orders.now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}

	first := createOrder(t, svc, walkInRequest())
	req := walkInRequest()
	req.Patient.Name = "Sunita Devi"
	req.PaidAmount = 1299
	second := createOrder(t, svc, req)

	orders, err := svc.Orders.List(ctx, models.OrderFilters{})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)

	orders, err = svc.Orders.List(ctx, models.OrderFilters{Search: "sunita"})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, second.ID, orders[0].ID)

	orders, err = svc.Orders.List(ctx, models.OrderFilters{PaymentStatus: models.PaymentPending})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, first.ID, orders[0].ID)

	orders, err = svc.Orders.List(ctx, models.OrderFilters{StartDate: "2026-03-11"})
	require.NoError(t, err)
	assert.Empty(t, orders)

	orders, err = svc.Orders.List(ctx, models.OrderFilters{StartDate: "2026-03-10", EndDate: "2026-03-10"})
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	_, err = svc.Orders.List(ctx, models.OrderFilters{EndDate: "10/03/2026"})
	apiErr := requireApiError(t, err, utils.CodeValidationFailed)
	assert.Contains(t, apiErr.Fields, "endDate")
}

func TestExportOrdersCSV(t *testing.T) {
	svc, _ := newTestServices(t, time.Second)
	createOrder(t, svc, walkInRequest())

	data, err := svc.Orders.Export(context.Background(), models.OrderFilters{}, ExportCSV)
	require.NoError(t, err)

	lines := strings.Split(string(data), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Order Number,Patient Name,Mobile,Status,Payment Status,Total Amount,Created At", lines[0])
	assert.Equal(t, "ORD-2026-0001,Ravi Kumar,9812345678,Pending,Pending,1299,"+testNow.UTC().Format(isoMillis), lines[1])
}

func TestExportOrdersExcel(t *testing.T) {
	svc, _ := newTestServices(t, time.Second)
	createOrder(t, svc, walkInRequest())

	data, err := svc.Orders.Export(context.Background(), models.OrderFilters{}, ExportExcel)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Orders", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Order Number", header)
	number, err := f.GetCellValue("Orders", "A2")
	require.NoError(t, err)
	assert.Equal(t, "ORD-2026-0001", number)
	name, err := f.GetCellValue("Orders", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", name)
}

func TestExportOrdersRejectsUnknownFormat(t *testing.T) {
	svc, _ := newTestServices(t, time.Second)

	_, err := svc.Orders.Export(context.Background(), models.OrderFilters{}, "pdf")
	apiErr := requireApiError(t, err, utils.CodeValidationFailed)
	assert.Contains(t, apiErr.Fields, "format")
}

func TestOrderStats(t *testing.T) {
	svc, _ := newTestServices(t, time.Second)
	ctx := context.Background()

	paid := walkInRequest()
	paid.PaidAmount = 1299
	createOrder(t, svc, paid)
	createOrder(t, svc, walkInRequest())
	cancelled := createOrder(t, svc, walkInRequest())
	_, err := svc.Orders.UpdateStatus(ctx, cancelled.ID, models.OrderCancelled)
	require.NoError(t, err)

	stats, err := svc.Orders.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, 2, stats.PendingOrders)
	assert.Equal(t, 1, stats.CancelledOrders)
	assert.Equal(t, 1299.0, stats.RevenueToday)
}

func TestDeleteOrder(t *testing.T) {
	svc, _ := newTestServices(t, time.Second)
	ctx := context.Background()
	order := createOrder(t, svc, walkInRequest())

	require.NoError(t, svc.Orders.Delete(ctx, order.ID))
	requireApiError(t, svc.Orders.Delete(ctx, order.ID), utils.CodeResourceNotFound)
}

func TestConcurrentOrderEditsAllLand(t *testing.T) {
	ctx := context.Background()
	svc := newSlowServices(t, 2*time.Millisecond)
	order := createOrder(t, svc, walkInRequest())
	notes := "fasting since 8pm"

	var wg sync.WaitGroup
	errs := make([]error, 3)
	wg.Add(3)
	go func() {
		defer wg.Done()
		_, errs[0] = svc.Orders.UpdateStatus(ctx, order.ID, models.OrderProcessing)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = svc.Orders.UpdateTestStatus(ctx, order.ID, "test-1", models.TestInProgress)
	}()
	go func() {
		defer wg.Done()
		_, errs[2] = svc.Orders.Update(ctx, order.ID, models.UpdateOrderRequest{Notes: &notes})
	}()
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	got, err := svc.Orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderProcessing, got.Status)
	require.NotNil(t, got.ProcessingStartedAt)
	assert.Equal(t, notes, got.Notes)
	for _, test := range got.Tests {
		if test.TestID == "test-1" {
			assert.Equal(t, models.TestInProgress, test.Status)
		}
	}
}
