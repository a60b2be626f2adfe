package models

import "time"

// OrderSource channel an order came in through
type OrderSource string

const (
	OrderSourceOnlineTest    OrderSource = "Online Test Booking"
	OrderSourceOnlinePackage OrderSource = "Online Package Booking"
	OrderSourceHomeCollect   OrderSource = "Home Collection"
	OrderSourceSlotBooking   OrderSource = "Slot Booking"
	OrderSourceWalkIn        OrderSource = "Walk-in"
)

// OrderStatus processing state of an order
type OrderStatus string

const (
	OrderPending         OrderStatus = "Pending"
	OrderSampleCollected OrderStatus = "Sample Collected"
	OrderProcessing      OrderStatus = "Processing"
	OrderReportReady     OrderStatus = "Report Ready"
	OrderCompleted       OrderStatus = "Completed"
	OrderCancelled       OrderStatus = "Cancelled"
)

// Terminal reports whether no further transitions are allowed
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// PaymentStatus settlement state
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPartial  PaymentStatus = "Partial"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentRefunded PaymentStatus = "Refunded"
)

// TestStatus per-test progress inside an order
type TestStatus string

const (
	TestPending    TestStatus = "Pending"
	TestInProgress TestStatus = "In Progress"
	TestCompleted  TestStatus = "Completed"
)

// OrderPatient patient snapshot stored on the order
type OrderPatient struct {
	Name   string `json:"name" bson:"name"`
	Mobile string `json:"mobile" bson:"mobile"`
	Email  string `json:"email,omitempty" bson:"email,omitempty"`
	Age    int    `json:"age" bson:"age"`
	Gender Gender `json:"gender" bson:"gender"`
}

// OrderTest ordered test line
type OrderTest struct {
	TestID string     `json:"testId" bson:"testId"`
	Name   string     `json:"testName" bson:"testName"`
	Code   string     `json:"testCode" bson:"testCode"`
	Price  float64    `json:"price" bson:"price"`
	Status TestStatus `json:"status" bson:"status"`
}

// OrderPackage ordered package line
type OrderPackage struct {
	PackageID string  `json:"packageId" bson:"packageId"`
	Name      string  `json:"packageName" bson:"packageName"`
	Price     float64 `json:"price" bson:"price"`
}

// CollectorAssignment phlebotomist assigned to a home collection
type CollectorAssignment struct {
	CollectorID    string    `json:"collectorId" bson:"collectorId"`
	CollectorName  string    `json:"collectorName" bson:"collectorName"`
	CollectorPhone string    `json:"collectorPhone,omitempty" bson:"collectorPhone,omitempty"`
	AssignedAt     time.Time `json:"assignedAt" bson:"assignedAt"`
}

// OrderHomeCollection visit details for home collection orders
type OrderHomeCollection struct {
	Address       string               `json:"address" bson:"address"`
	City          string               `json:"city" bson:"city"`
	Pincode       string               `json:"pincode" bson:"pincode"`
	ScheduledDate string               `json:"scheduledDate" bson:"scheduledDate"`
	ScheduledTime string               `json:"scheduledTime" bson:"scheduledTime"`
	Collector     *CollectorAssignment `json:"collector,omitempty" bson:"collector,omitempty"`
}

// OrderVisit lab visit or slot booking details
type OrderVisit struct {
	LabLocationID string `json:"labLocationId" bson:"labLocationId"`
	Date          string `json:"date" bson:"date"`
	Time          string `json:"time" bson:"time"`
}

// Order customer order for tests and packages
type Order struct {
	ID             string               `json:"id" bson:"_id"`
	OrderNumber    string               `json:"orderNumber" bson:"orderNumber"`
	BookingID      string               `json:"bookingId,omitempty" bson:"bookingId,omitempty"`
	Source         OrderSource          `json:"orderSource" bson:"orderSource"`
	Status         OrderStatus          `json:"status" bson:"status"`
	BranchID       string               `json:"branchId,omitempty" bson:"branchId,omitempty"`
	Patient        OrderPatient         `json:"patient" bson:"patient"`
	Tests          []OrderTest          `json:"tests" bson:"tests"`
	Packages       []OrderPackage       `json:"packages" bson:"packages"`
	Subtotal       float64              `json:"subtotal" bson:"subtotal"`
	Discount       float64              `json:"discount" bson:"discount"`
	TotalAmount    float64              `json:"totalAmount" bson:"totalAmount"`
	PaidAmount     float64              `json:"paidAmount" bson:"paidAmount"`
	DueAmount      float64              `json:"dueAmount" bson:"dueAmount"`
	PaymentStatus  PaymentStatus        `json:"paymentStatus" bson:"paymentStatus"`
	PaymentMode    PaymentMode          `json:"paymentMode,omitempty" bson:"paymentMode,omitempty"`
	HomeCollection *OrderHomeCollection `json:"homeCollection,omitempty" bson:"homeCollection,omitempty"`
	Visit          *OrderVisit          `json:"visit,omitempty" bson:"visit,omitempty"`
	Notes          string               `json:"notes,omitempty" bson:"notes,omitempty"`

	SampleCollectedAt   *time.Time `json:"sampleCollectedAt,omitempty" bson:"sampleCollectedAt,omitempty"`
	ProcessingStartedAt *time.Time `json:"processingStartedAt,omitempty" bson:"processingStartedAt,omitempty"`
	ReportReadyAt       *time.Time `json:"reportReadyAt,omitempty" bson:"reportReadyAt,omitempty"`
	CompletedAt         *time.Time `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	CancelledAt         *time.Time `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (o Order) GetID() string { return o.ID }

// OrderFilters query parameters of GET /orders
type OrderFilters struct {
	Status        OrderStatus   `form:"status"`
	Source        OrderSource   `form:"source"`
	PaymentStatus PaymentStatus `form:"paymentStatus"`
	StartDate     string        `form:"startDate"`
	EndDate       string        `form:"endDate"`
	BranchID      string        `form:"branchId"`
	Search        string        `form:"search"`
}

// OrderStats counters for the orders dashboard
type OrderStats struct {
	TotalOrders           int     `json:"totalOrders"`
	PendingOrders         int     `json:"pendingOrders"`
	ProcessingOrders      int     `json:"processingOrders"`
	CancelledOrders       int     `json:"cancelledOrders"`
	CompletedToday        int     `json:"completedToday"`
	RevenueToday          float64 `json:"revenueToday"`
	HomeCollectionPending int     `json:"homeCollectionPending"`
	SampleCollectedToday  int     `json:"sampleCollectedToday"`
	ReportReadyToday      int     `json:"reportReadyToday"`
}
