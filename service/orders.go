package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/repository"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var orderSources = []models.OrderSource{
	models.OrderSourceOnlineTest,
	models.OrderSourceOnlinePackage,
	models.OrderSourceHomeCollect,
	models.OrderSourceSlotBooking,
	models.OrderSourceWalkIn,
}

// OrderService orders resource and the booking backend
type OrderService struct {
	orders   repository.Repository[models.Order]
	branches repository.Repository[models.Branch]
	catalog  *CatalogService
	tx       repository.TxManager
	now      Clock
	log      zerolog.Logger

	// numbering is read-then-write
	numberMu sync.Mutex
}

func NewOrderService(s *repository.Stores, catalog *CatalogService) *OrderService {
	return &OrderService{
		orders:   s.Orders,
		branches: s.Branches,
		catalog:  catalog,
		tx:       s.Tx,
		now:      time.Now,
		log:      utils.Component("orders"),
	}
}

// List orders matching filters, newest first
func (s *OrderService) List(ctx context.Context, f models.OrderFilters) ([]models.Order, error) {
	from, to, err := parseDateRange(f.StartDate, f.EndDate)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	out := Filter(orders,
		func(o models.Order) bool { return f.Status == "" || o.Status == f.Status },
		func(o models.Order) bool { return f.Source == "" || o.Source == f.Source },
		func(o models.Order) bool { return f.PaymentStatus == "" || o.PaymentStatus == f.PaymentStatus },
		func(o models.Order) bool { return f.BranchID == "" || o.BranchID == f.BranchID },
		func(o models.Order) bool { return from.IsZero() || !o.CreatedAt.Before(from) },
		func(o models.Order) bool { return to.IsZero() || o.CreatedAt.Before(to) },
		func(o models.Order) bool {
			return matchesText(f.Search, o.OrderNumber, o.Patient.Name, o.Patient.Mobile, o.BookingID)
		},
	)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, lookupError(err, "order")
	}
	return order, nil
}

// Create walk-in or back-office order priced from the catalog
func (s *OrderService) Create(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	fields := utils.FieldErrors{}
	if !sourceValid(req.Source) {
		fields.Add("orderSource", "is not a known order source")
	}
	if strings.TrimSpace(req.Patient.Name) == "" {
		fields.Add("patient.name", "is required")
	}
	if !digitsOnly.MatchString(req.Patient.Mobile) || len(req.Patient.Mobile) != 10 {
		fields.Add("patient.mobile", "must be exactly 10 digits")
	}
	if req.PaymentMode != "" && !req.PaymentMode.Valid() {
		fields.Add("paymentMode", "is not a known payment mode")
	}
	if req.Source == models.OrderSourceHomeCollect && req.HomeCollection == nil {
		fields.Add("homeCollection", "is required for home collection orders")
	}
	if req.Discount < 0 {
		fields.Add("discount", "must be at least 0")
	}
	if req.PaidAmount < 0 {
		fields.Add("paidAmount", "must be at least 0")
	}

	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	tests, packages := dedupe(req.TestIDs), dedupe(req.PackageIDs)
	fields = merge(fields, ValidateSelectionStep(tests, packages, catalog))
	if req.BranchID != "" {
		if _, err := s.branches.Get(ctx, req.BranchID); err != nil {
			fields.Add("branchId", "is not a known branch")
		}
	}
	if len(fields) > 0 {
		return nil, utils.CreateValidationError(fields)
	}

	order := models.Order{
		Source:         req.Source,
		BranchID:       req.BranchID,
		Patient:        req.Patient,
		PaymentMode:    req.PaymentMode,
		HomeCollection: req.HomeCollection,
		Visit:          req.Visit,
		Notes:          req.Notes,
	}
	if order.HomeCollection != nil {
		order.HomeCollection.Collector = nil
	}
	price(&order, tests, packages, catalog, decimal.NewFromFloat(req.Discount))
	if order.Discount > order.Subtotal {
		return nil, utils.CreateFieldError("discount", "cannot exceed the subtotal")
	}
	if req.PaidAmount > order.TotalAmount {
		return nil, utils.CreateFieldError("paidAmount", "cannot exceed the total amount")
	}
	settle(&order, req.PaidAmount)

	if err := s.insert(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// VerifyOTPAndCreateBooking booking backend. OTP verification always
// succeeds until an SMS gateway exists; the booking is recorded as an order.
func (s *OrderService) VerifyOTPAndCreateBooking(ctx context.Context, otp string, draft models.BookingDraft, quote models.PriceQuote) (*BookingResult, error) {
	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	order := models.Order{
		BookingID: "BK-" + strings.ToUpper(uuid.NewString()[:8]),
		Source:    bookingSource(draft),
	}
	if p := draft.Patient; p != nil {
		order.Patient = models.OrderPatient{Name: p.FullName, Mobile: p.Mobile, Email: p.Email, Age: p.Age, Gender: p.Gender}
	}
	if h := draft.HomeCollection; h != nil {
		order.HomeCollection = &models.OrderHomeCollection{
			Address:       strings.Trim(strings.Join([]string{h.Address, h.Landmark}, ", "), ", "),
			City:          h.City,
			Pincode:       h.Pincode,
			ScheduledDate: h.PreferredDate,
			ScheduledTime: h.PreferredTime,
		}
		order.Notes = h.Instructions
	}
	if l := draft.LabVisit; l != nil {
		order.Visit = &models.OrderVisit{LabLocationID: l.LabLocation, Date: l.PreferredDate, Time: l.PreferredTime}
	}

	price(&order, draft.Tests, draft.Packages, catalog, decimal.NewFromFloat(quote.Discount))
	paid := 0.0
	if draft.Payment != nil {
		order.PaymentMode = draft.Payment.Mode
		if prepaid(draft.Payment.Mode) {
			paid = order.TotalAmount
		}
	}
	settle(&order, paid)

	if err := s.insert(ctx, &order); err != nil {
		return nil, err
	}
	s.log.Info().Str("bookingId", order.BookingID).Str("orderNumber", order.OrderNumber).Msg("booking recorded")
	return &BookingResult{Success: true, BookingID: order.BookingID, OrderNumber: order.OrderNumber}, nil
}

// Update patient, payment and notes fields
func (s *OrderService) Update(ctx context.Context, id string, req models.UpdateOrderRequest) (*models.Order, error) {
	return s.mutate(ctx, id, func(ctx context.Context, order *models.Order) error {
		fields := utils.FieldErrors{}
		if req.Patient != nil {
			if strings.TrimSpace(req.Patient.Name) == "" {
				fields.Add("patient.name", "is required")
			}
			if !digitsOnly.MatchString(req.Patient.Mobile) || len(req.Patient.Mobile) != 10 {
				fields.Add("patient.mobile", "must be exactly 10 digits")
			}
			order.Patient = *req.Patient
		}
		if req.BranchID != nil {
			if *req.BranchID != "" {
				if _, err := s.branches.Get(ctx, *req.BranchID); err != nil {
					fields.Add("branchId", "is not a known branch")
				}
			}
			order.BranchID = *req.BranchID
		}
		if req.PaymentMode != nil {
			if !req.PaymentMode.Valid() {
				fields.Add("paymentMode", "is not a known payment mode")
			}
			order.PaymentMode = *req.PaymentMode
		}
		if req.Notes != nil {
			order.Notes = *req.Notes
		}
		if req.PaidAmount != nil {
			switch {
			case order.Status == models.OrderCancelled:
				fields.Add("paidAmount", "cannot change payment of a cancelled order")
			case *req.PaidAmount < 0 || *req.PaidAmount > order.TotalAmount:
				fields.Add("paidAmount", "must be between 0 and the total amount")
			default:
				settle(order, *req.PaidAmount)
			}
		}
		if len(fields) > 0 {
			return utils.CreateValidationError(fields)
		}
		return nil
	})
}

// nextStatus the forward step from status; home collections pass through
// Sample Collected, everything else goes straight to Processing
func nextStatus(order *models.Order) models.OrderStatus {
	switch order.Status {
	case models.OrderPending:
		if order.HomeCollection != nil {
			return models.OrderSampleCollected
		}
		return models.OrderProcessing
	case models.OrderSampleCollected:
		return models.OrderProcessing
	case models.OrderProcessing:
		return models.OrderReportReady
	case models.OrderReportReady:
		return models.OrderCompleted
	}
	return ""
}

// UpdateStatus moves the order one step forward, or cancels it
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	order, err := s.mutate(ctx, id, func(_ context.Context, order *models.Order) error {
		allowed := status == nextStatus(order) || (status == models.OrderCancelled && !order.Status.Terminal())
		if status == "" || !allowed {
			return utils.CreateTransitionError(string(order.Status), string(status))
		}

		now := s.now()
		order.Status = status
		switch status {
		case models.OrderSampleCollected:
			order.SampleCollectedAt = &now
		case models.OrderProcessing:
			order.ProcessingStartedAt = &now
		case models.OrderReportReady:
			order.ReportReadyAt = &now
		case models.OrderCompleted:
			order.CompletedAt = &now
		case models.OrderCancelled:
			order.CancelledAt = &now
			if order.PaidAmount > 0 {
				order.PaymentStatus = models.PaymentRefunded
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("order", order.OrderNumber).Str("status", string(status)).Msg("order status changed")
	return order, nil
}

var testStatusRank = map[models.TestStatus]int{
	models.TestPending:    0,
	models.TestInProgress: 1,
	models.TestCompleted:  2,
}

// UpdateTestStatus moves one ordered test forward
func (s *OrderService) UpdateTestStatus(ctx context.Context, id, testID string, status models.TestStatus) (*models.Order, error) {
	if status != models.TestInProgress && status != models.TestCompleted {
		return nil, utils.CreateFieldError("status", "must be one of: In Progress, Completed")
	}

	return s.mutate(ctx, id, func(_ context.Context, order *models.Order) error {
		if order.Status.Terminal() {
			return utils.CreateTransitionError(string(order.Status), string(status))
		}

		tests := append([]models.OrderTest(nil), order.Tests...)
		for i := range tests {
			if tests[i].TestID != testID {
				continue
			}
			if testStatusRank[status] <= testStatusRank[tests[i].Status] {
				return utils.CreateTransitionError(string(tests[i].Status), string(status))
			}
			tests[i].Status = status
			order.Tests = tests
			return nil
		}
		return utils.CreateNotFoundError("order test")
	})
}

// AssignCollector books a phlebotomist for a home collection
func (s *OrderService) AssignCollector(ctx context.Context, id string, req models.AssignCollectorRequest) (*models.Order, error) {
	return s.mutate(ctx, id, func(_ context.Context, order *models.Order) error {
		if order.HomeCollection == nil {
			return utils.CreateBadRequestError("order has no home collection")
		}
		if order.Status.Terminal() {
			return utils.CreateBadRequestError("order is " + strings.ToLower(string(order.Status)))
		}

		hc := *order.HomeCollection
		hc.Collector = &models.CollectorAssignment{
			CollectorID:    req.CollectorID,
			CollectorName:  req.CollectorName,
			CollectorPhone: req.CollectorPhone,
			AssignedAt:     s.now(),
		}
		order.HomeCollection = &hc
		return nil
	})
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return lookupError(err, "order")
	}
	return nil
}

// Stats dashboard counters, "today" in the server's local time
func (s *OrderService) Stats(ctx context.Context) (*models.OrderStats, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	today := s.now().Format(dateLayout)
	on := func(t *time.Time) bool { return t != nil && t.Format(dateLayout) == today }

	stats := &models.OrderStats{TotalOrders: len(orders)}
	revenue := decimal.Zero
	for _, o := range orders {
		switch o.Status {
		case models.OrderPending:
			stats.PendingOrders++
		case models.OrderProcessing:
			stats.ProcessingOrders++
		case models.OrderCancelled:
			stats.CancelledOrders++
		}
		if on(o.CompletedAt) {
			stats.CompletedToday++
		}
		if on(o.SampleCollectedAt) {
			stats.SampleCollectedToday++
		}
		if on(o.ReportReadyAt) {
			stats.ReportReadyToday++
		}
		if on(&o.CreatedAt) && o.PaymentStatus == models.PaymentPaid {
			revenue = revenue.Add(decimal.NewFromFloat(o.TotalAmount))
		}
		if o.HomeCollection != nil && o.SampleCollectedAt == nil && !o.Status.Terminal() {
			stats.HomeCollectionPending++
		}
	}
	stats.RevenueToday = revenue.InexactFloat64()
	return stats, nil
}

func (s *OrderService) insert(ctx context.Context, order *models.Order) error {
	s.numberMu.Lock()
	defer s.numberMu.Unlock()

	now := s.now()
	number, err := s.nextOrderNumber(ctx, now.Year())
	if err != nil {
		return err
	}
	order.ID = newID("ord")
	order.OrderNumber = number
	order.Status = models.OrderPending
	order.CreatedAt, order.UpdatedAt = now, now

	if err := s.orders.Create(ctx, *order); err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// nextOrderNumber ORD-<year>-NNNN, one past the highest number issued this year
func (s *OrderService) nextOrderNumber(ctx context.Context, year int) (string, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list orders: %w", err)
	}
	prefix := fmt.Sprintf("ORD-%d-", year)
	highest := 0
	for _, o := range orders {
		if !strings.HasPrefix(o.OrderNumber, prefix) {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(o.OrderNumber, prefix)); err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%04d", prefix, highest+1), nil
}

// mutate loads, edits and stores one order inside a transaction so
// concurrent edits to the same order serialize
func (s *OrderService) mutate(ctx context.Context, id string, edit func(context.Context, *models.Order) error) (*models.Order, error) {
	var out *models.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		order, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := edit(ctx, order); err != nil {
			return err
		}
		order.UpdatedAt = s.now()
		if err := s.orders.Update(ctx, *order); err != nil {
			return lookupError(err, "order")
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// price fills the lines and totals of order from the catalog
func price(order *models.Order, tests, packages []string, catalog *CatalogSnapshot, discount decimal.Decimal) {
	subtotal := decimal.Zero

	order.Tests = make([]models.OrderTest, 0, len(tests))
	for _, id := range tests {
		t, ok := catalog.Tests[id]
		if !ok {
			continue
		}
		order.Tests = append(order.Tests, models.OrderTest{
			TestID: t.ID,
			Name:   t.Title,
			Code:   t.Code,
			Price:  float64(t.Price.Final),
			Status: models.TestPending,
		})
		subtotal = subtotal.Add(decimal.NewFromInt(t.Price.Final))
	}

	order.Packages = make([]models.OrderPackage, 0, len(packages))
	for _, id := range packages {
		p, ok := catalog.Packages[id]
		if !ok {
			continue
		}
		line := packageLine(p)
		order.Packages = append(order.Packages, models.OrderPackage{
			PackageID: p.ID,
			Name:      p.Title,
			Price:     line.Round(2).InexactFloat64(),
		})
		subtotal = subtotal.Add(line)
	}

	order.Subtotal = subtotal.Round(2).InexactFloat64()
	order.Discount = discount.Round(2).InexactFloat64()
	order.TotalAmount = subtotal.Sub(discount).Round(0).InexactFloat64()
}

// settle records paid and derives the due amount and payment status
func settle(order *models.Order, paid float64) {
	total := decimal.NewFromFloat(order.TotalAmount)
	p := decimal.NewFromFloat(paid)
	order.PaidAmount = p.InexactFloat64()
	order.DueAmount = total.Sub(p).InexactFloat64()

	switch {
	case p.IsZero():
		order.PaymentStatus = models.PaymentPending
	case p.GreaterThanOrEqual(total):
		order.PaymentStatus = models.PaymentPaid
	default:
		order.PaymentStatus = models.PaymentPartial
	}
}

func bookingSource(d models.BookingDraft) models.OrderSource {
	switch d.Method {
	case models.BookingMethodHomeCollection:
		return models.OrderSourceHomeCollect
	case models.BookingMethodSlotBooking:
		return models.OrderSourceSlotBooking
	}
	if len(d.Tests) == 0 && len(d.Packages) > 0 {
		return models.OrderSourceOnlinePackage
	}
	return models.OrderSourceOnlineTest
}

// prepaid modes are settled at checkout, the rest on collection
func prepaid(mode models.PaymentMode) bool {
	switch mode {
	case models.PaymentModeUPI, models.PaymentModeCard, models.PaymentModeNetBanking:
		return true
	}
	return false
}

func sourceValid(src models.OrderSource) bool {
	for _, s := range orderSources {
		if s == src {
			return true
		}
	}
	return false
}

// parseDateRange YYYY-MM-DD bounds; the end date is inclusive
func parseDateRange(start, end string) (time.Time, time.Time, error) {
	var from, to time.Time
	fields := utils.FieldErrors{}
	if start != "" {
		t, err := time.ParseInLocation(dateLayout, start, time.Local)
		if err != nil {
			fields.Add("startDate", "must be a date in YYYY-MM-DD format")
		}
		from = t
	}
	if end != "" {
		t, err := time.ParseInLocation(dateLayout, end, time.Local)
		if err != nil {
			fields.Add("endDate", "must be a date in YYYY-MM-DD format")
		} else {
			to = t.AddDate(0, 0, 1)
		}
	}
	if len(fields) > 0 {
		return time.Time{}, time.Time{}, utils.CreateValidationError(fields)
	}
	return from, to, nil
}

// Export the filtered order list as csv or excel
func (s *OrderService) Export(ctx context.Context, f models.OrderFilters, format string) ([]byte, error) {
	orders, err := s.List(ctx, f)
	if err != nil {
		return nil, err
	}
	switch format {
	case "", ExportCSV:
		return OrdersCSV(orders), nil
	case ExportExcel:
		return OrdersExcel(orders)
	}
	return nil, utils.CreateFieldError("format", "must be one of: csv, excel")
}
