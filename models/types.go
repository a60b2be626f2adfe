package models

import "time"

// Auth
type (
	// LoginRequest admin login
	LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	// LoginResponse issued token plus the account
	LoginResponse struct {
		Token string     `json:"token"`
		User  *AdminUser `json:"user"`
	}
)

// Admin users
type (
	// CreateAdminUserRequest new back-office account
	CreateAdminUserRequest struct {
		Username        string          `json:"username" validate:"required,min=3,max=50"`
		Email           string          `json:"email" validate:"required,email"`
		FullName        string          `json:"fullName" validate:"required"`
		Phone           string          `json:"phone" validate:"omitempty,len=10,numeric"`
		Password        string          `json:"password" validate:"required,min=8"`
		ConfirmPassword string          `json:"confirmPassword" validate:"required,eqfield=Password"`
		Roles           []AdminRole     `json:"roles" validate:"required,min=1"`
		Status          AdminUserStatus `json:"status"`
		BranchID        string          `json:"branchId"`
	}

	// UpdateAdminUserRequest partial edit, nil fields are left unchanged
	UpdateAdminUserRequest struct {
		Email    *string          `json:"email" validate:"omitempty,email"`
		FullName *string          `json:"fullName" validate:"omitempty,min=1"`
		Phone    *string          `json:"phone" validate:"omitempty,len=10,numeric"`
		Password *string          `json:"password" validate:"omitempty,min=8"`
		Roles    []AdminRole      `json:"roles" validate:"omitempty,min=1"`
		Status   *AdminUserStatus `json:"status"`
		BranchID *string          `json:"branchId"`
	}

	// UpdateAdminStatusRequest status change
	UpdateAdminStatusRequest struct {
		Status AdminUserStatus `json:"status" binding:"required"`
	}
)

// Branches and categories
type (
	// BranchRequest create payload
	BranchRequest struct {
		Name         string `json:"name" validate:"required"`
		Code         string `json:"code" validate:"required,max=10"`
		Address      string `json:"address"`
		City         string `json:"city"`
		Pincode      string `json:"pincode" validate:"omitempty,len=6,numeric"`
		Phone        string `json:"phone" validate:"omitempty,max=15"`
		Email        string `json:"email" validate:"omitempty,email"`
		IsActive     *bool  `json:"isActive"`
		IsMainBranch bool   `json:"isMainBranch"`
	}

	// UpdateBranchRequest partial edit
	UpdateBranchRequest struct {
		Name         *string `json:"name" validate:"omitempty,min=1"`
		Code         *string `json:"code" validate:"omitempty,min=1,max=10"`
		Address      *string `json:"address"`
		City         *string `json:"city"`
		Pincode      *string `json:"pincode" validate:"omitempty,len=6,numeric"`
		Phone        *string `json:"phone" validate:"omitempty,max=15"`
		Email        *string `json:"email" validate:"omitempty,email"`
		IsActive     *bool   `json:"isActive"`
		IsMainBranch *bool   `json:"isMainBranch"`
	}

	// CategoryRequest create payload
	CategoryRequest struct {
		Name        string `json:"name" validate:"required"`
		Code        string `json:"code" validate:"required,max=10"`
		Description string `json:"description"`
		Color       string `json:"color"`
		IsActive    *bool  `json:"isActive"`
	}

	// UpdateCategoryRequest partial edit
	UpdateCategoryRequest struct {
		Name        *string `json:"name" validate:"omitempty,min=1"`
		Code        *string `json:"code" validate:"omitempty,min=1,max=10"`
		Description *string `json:"description"`
		Color       *string `json:"color"`
		IsActive    *bool   `json:"isActive"`
	}
)

// Catalog
type (
	// TestRequest create payload
	TestRequest struct {
		Title               string    `json:"title" validate:"required"`
		Code                string    `json:"code" validate:"required"`
		Category            string    `json:"category" validate:"required"`
		Description         string    `json:"description"`
		Price               PriceInfo `json:"price"`
		SampleType          string    `json:"sampleType" validate:"required"`
		TurnaroundTime      string    `json:"turnaroundTime"`
		PreparationRequired bool      `json:"preparationRequired"`
		IsActive            *bool     `json:"isActive"`
	}

	// UpdateTestRequest partial edit
	UpdateTestRequest struct {
		Title               *string    `json:"title" validate:"omitempty,min=1"`
		Code                *string    `json:"code" validate:"omitempty,min=1"`
		Category            *string    `json:"category"`
		Description         *string    `json:"description"`
		Price               *PriceInfo `json:"price"`
		SampleType          *string    `json:"sampleType"`
		TurnaroundTime      *string    `json:"turnaroundTime"`
		PreparationRequired *bool      `json:"preparationRequired"`
		IsActive            *bool      `json:"isActive"`
	}

	// PackageRequest create payload
	PackageRequest struct {
		Title       string   `json:"title" validate:"required"`
		Subtitle    string   `json:"subtitle"`
		Category    string   `json:"category"`
		Description string   `json:"description"`
		TestIDs     []string `json:"testIds" validate:"required,min=1"`
		Price       int64    `json:"price" validate:"gt=0"`
		Discount    float64  `json:"discount" validate:"gte=0,lt=100"`
		ReportTime  string   `json:"reportTime"`
		IsActive    *bool    `json:"isActive"`
	}

	// UpdatePackageRequest partial edit
	UpdatePackageRequest struct {
		Title       *string  `json:"title" validate:"omitempty,min=1"`
		Subtitle    *string  `json:"subtitle"`
		Category    *string  `json:"category"`
		Description *string  `json:"description"`
		TestIDs     []string `json:"testIds" validate:"omitempty,min=1"`
		Price       *int64   `json:"price" validate:"omitempty,gt=0"`
		Discount    *float64 `json:"discount" validate:"omitempty,gte=0,lt=100"`
		ReportTime  *string  `json:"reportTime"`
		IsActive    *bool    `json:"isActive"`
	}
)

// Inventory
type (
	// CreateItemRequest new inventory item. QuantityInHand is the opening stock.
	CreateItemRequest struct {
		Code            string     `json:"itemCode" validate:"required"`
		Name            string     `json:"itemName" validate:"required"`
		Description     string     `json:"description"`
		BranchID        string     `json:"branchId" validate:"required"`
		CategoryID      string     `json:"categoryId" validate:"required"`
		SupplierID      string     `json:"supplierId"`
		UnitType        UnitType   `json:"unitType" validate:"required"`
		QuantityInHand  int64      `json:"quantityInHand" validate:"gte=0"`
		ReorderPoint    int64      `json:"reorderPoint" validate:"gte=0"`
		ReorderQuantity int64      `json:"reorderQuantity" validate:"gte=0"`
		MinQuantity     int64      `json:"minQuantity" validate:"gte=0"`
		MaxQuantity     int64      `json:"maxQuantity" validate:"gte=0"`
		CostPrice       float64    `json:"costPrice" validate:"gte=0"`
		Status          ItemStatus `json:"status"`
		StorageLocation string     `json:"storageLocation"`
		BatchNumber     string     `json:"batchNumber"`
		ExpiryDate      string     `json:"expiryDate"`
		Notes           string     `json:"notes"`
	}

	// UpdateItemRequest partial edit. QuantityInHand is accepted only to be rejected.
	UpdateItemRequest struct {
		Name            *string     `json:"itemName" validate:"omitempty,min=1"`
		Description     *string     `json:"description"`
		BranchID        *string     `json:"branchId"`
		CategoryID      *string     `json:"categoryId"`
		SupplierID      *string     `json:"supplierId"`
		UnitType        *UnitType   `json:"unitType"`
		QuantityInHand  *int64      `json:"quantityInHand"`
		ReorderPoint    *int64      `json:"reorderPoint" validate:"omitempty,gte=0"`
		ReorderQuantity *int64      `json:"reorderQuantity" validate:"omitempty,gte=0"`
		MinQuantity     *int64      `json:"minQuantity" validate:"omitempty,gte=0"`
		MaxQuantity     *int64      `json:"maxQuantity" validate:"omitempty,gte=0"`
		CostPrice       *float64    `json:"costPrice" validate:"omitempty,gte=0"`
		Status          *ItemStatus `json:"status"`
		StorageLocation *string     `json:"storageLocation"`
		BatchNumber     *string     `json:"batchNumber"`
		ExpiryDate      *string     `json:"expiryDate"`
		Notes           *string     `json:"notes"`
	}

	// StockAdjustmentRequest one ledgered stock movement
	StockAdjustmentRequest struct {
		Type            TransactionType `json:"transactionType" binding:"required"`
		Quantity        int64           `json:"quantity" binding:"required"`
		ReferenceNumber string          `json:"referenceNumber"`
		Reason          string          `json:"reason"`
		Notes           string          `json:"notes"`
	}

	// CreateReorderRequest opens a reorder for an item
	CreateReorderRequest struct {
		ItemID               string `json:"itemId" binding:"required"`
		RequestedQuantity    int64  `json:"requestedQuantity" binding:"required,gt=0"`
		SupplierID           string `json:"supplierId"`
		ExpectedDeliveryDate string `json:"expectedDeliveryDate"`
		Notes                string `json:"notes"`
	}

	// UpdateReorderRequest edit of an Open reorder
	UpdateReorderRequest struct {
		RequestedQuantity    *int64  `json:"requestedQuantity"`
		SupplierID           *string `json:"supplierId"`
		ExpectedDeliveryDate *string `json:"expectedDeliveryDate"`
		Notes                *string `json:"notes"`
	}

	// ReorderTransitionRequest moves a reorder to a new status
	ReorderTransitionRequest struct {
		Status               ReorderStatus `json:"status" binding:"required"`
		PurchaseOrderNumber  string        `json:"purchaseOrderNumber"`
		ExpectedDeliveryDate string        `json:"expectedDeliveryDate"`
		ActualDeliveryDate   string        `json:"actualDeliveryDate"`
		Notes                string        `json:"notes"`
	}
)

// Orders
type (
	// CreateOrderRequest POST /orders
	CreateOrderRequest struct {
		Source         OrderSource          `json:"orderSource" binding:"required"`
		BranchID       string               `json:"branchId"`
		Patient        OrderPatient         `json:"patient"`
		TestIDs        []string             `json:"testIds"`
		PackageIDs     []string             `json:"packageIds"`
		Discount       float64              `json:"discount"`
		PaidAmount     float64              `json:"paidAmount"`
		PaymentMode    PaymentMode          `json:"paymentMode"`
		HomeCollection *OrderHomeCollection `json:"homeCollection"`
		Visit          *OrderVisit          `json:"visit"`
		Notes          string               `json:"notes"`
	}

	// UpdateOrderRequest PATCH /orders/:id
	UpdateOrderRequest struct {
		Patient     *OrderPatient `json:"patient"`
		BranchID    *string       `json:"branchId"`
		PaidAmount  *float64      `json:"paidAmount"`
		PaymentMode *PaymentMode  `json:"paymentMode"`
		Notes       *string       `json:"notes"`
	}

	// UpdateOrderStatusRequest PATCH /orders/:id/status
	UpdateOrderStatusRequest struct {
		Status OrderStatus `json:"status" binding:"required"`
	}

	// UpdateTestStatusRequest PATCH /orders/:id/tests/:testId/status
	UpdateTestStatusRequest struct {
		Status TestStatus `json:"status" binding:"required"`
	}

	// AssignCollectorRequest PATCH /orders/:id/assign-collector
	AssignCollectorRequest struct {
		CollectorID    string `json:"collectorId" binding:"required"`
		CollectorName  string `json:"collectorName" binding:"required"`
		CollectorPhone string `json:"collectorPhone"`
	}
)

// Booking wizard
type (
	// StepInput form values for the current wizard step. Only the part bound
	// to the current step is read.
	StepInput struct {
		Method         BookingMethod          `json:"method"`
		Patient        *PatientDetails        `json:"patient"`
		Tests          []string               `json:"selectedTests"`
		Packages       []string               `json:"selectedPackages"`
		HomeCollection *HomeCollectionDetails `json:"homeCollection"`
		LabVisit       *LabVisitDetails       `json:"labVisit"`
		Payment        *PaymentDetails        `json:"payment"`
	}

	// PriceQuote booking totals. Sums are unrounded, Display* are rounded for display.
	PriceQuote struct {
		TestsTotal         float64 `json:"testsTotal"`
		PackagesTotal      float64 `json:"packagesTotal"`
		HomeCollectionFee  float64 `json:"homeCollectionFee"`
		Discount           float64 `json:"discount"`
		GrandTotal         float64 `json:"grandTotal"`
		DisplayGrandTotal  int64   `json:"displayGrandTotal"`
		DisplayPackageLine []int64 `json:"displayPackageLines"`
	}

	// OTPDigitRequest single cell entry
	OTPDigitRequest struct {
		Index int    `json:"index"`
		Digit string `json:"digit"`
	}

	// OTPPasteRequest clipboard paste into the cells
	OTPPasteRequest struct {
		Value string `json:"value" binding:"required"`
	}

	// VerifyOTPRequest terminal step; an empty code uses the entered cells
	VerifyOTPRequest struct {
		Code string `json:"code"`
	}

	// OTPState OTP entry cells plus resend countdown
	OTPState struct {
		Digits       []string `json:"digits"`
		Focus        int      `json:"focus"`
		Complete     bool     `json:"complete"`
		ResendIn     int      `json:"resendIn"`
		CanResend    bool     `json:"canResend"`
		ResendsSoFar int      `json:"resends"`
	}

	// BookingState snapshot of one wizard session
	BookingState struct {
		SessionID    string               `json:"sessionId"`
		CurrentStep  int                  `json:"currentStep"`
		Steps        []WizardStep         `json:"steps"`
		Draft        BookingDraft         `json:"draft"`
		Quote        PriceQuote           `json:"quote"`
		OTP          *OTPState            `json:"otp,omitempty"`
		Confirmation *BookingConfirmation `json:"confirmation,omitempty"`
		ExpiresAt    time.Time            `json:"expiresAt"`
	}
)
