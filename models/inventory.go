package models

import "time"

// ItemStatus lifecycle status of an inventory item
type ItemStatus string

const (
	ItemStatusActive   ItemStatus = "Active"
	ItemStatusInactive ItemStatus = "Inactive"
	ItemStatusOnOrder  ItemStatus = "On Order"
)

// StockStatus derived from quantity and reorder point, never stored
type StockStatus string

const (
	StockStatusInStock    StockStatus = "In Stock"
	StockStatusLowStock   StockStatus = "Low Stock"
	StockStatusOutOfStock StockStatus = "Out of Stock"
)

// UnitType unit an item is counted in
type UnitType string

const (
	UnitPieces UnitType = "Pieces"
	UnitPack   UnitType = "Pack"
	UnitBox    UnitType = "Box"
	UnitCarton UnitType = "Carton"
	UnitBottle UnitType = "Bottle"
	UnitTube   UnitType = "Tube"
	UnitVial   UnitType = "Vial"
	UnitKit    UnitType = "Kit"
	UnitMeter  UnitType = "Meter"
	UnitGram   UnitType = "Gram"
	UnitLiter  UnitType = "Liter"
)

// Branch a lab branch holding stock
type Branch struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Code         string    `json:"code" bson:"code"`
	Address      string    `json:"address,omitempty" bson:"address,omitempty"`
	City         string    `json:"city,omitempty" bson:"city,omitempty"`
	Pincode      string    `json:"pincode,omitempty" bson:"pincode,omitempty"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Email        string    `json:"email,omitempty" bson:"email,omitempty"`
	IsActive     bool      `json:"isActive" bson:"isActive"`
	IsMainBranch bool      `json:"isMainBranch" bson:"isMainBranch"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (b Branch) GetID() string { return b.ID }

// InventoryCategory grouping of inventory items
type InventoryCategory struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Code        string    `json:"code" bson:"code"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Color       string    `json:"color,omitempty" bson:"color,omitempty"`
	IsActive    bool      `json:"isActive" bson:"isActive"`
	ItemCount   int       `json:"itemCount" bson:"-"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (c InventoryCategory) GetID() string { return c.ID }

// Supplier vendor of inventory items
type Supplier struct {
	ID            string    `json:"id" bson:"_id"`
	Name          string    `json:"name" bson:"name"`
	Code          string    `json:"code" bson:"code"`
	Phone         string    `json:"phone" bson:"phone"`
	Email         string    `json:"email,omitempty" bson:"email,omitempty"`
	City          string    `json:"city,omitempty" bson:"city,omitempty"`
	ContactPerson string    `json:"contactPerson,omitempty" bson:"contactPerson,omitempty"`
	PaymentTerms  string    `json:"paymentTerms,omitempty" bson:"paymentTerms,omitempty"`
	IsActive      bool      `json:"isActive" bson:"isActive"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (s Supplier) GetID() string { return s.ID }

// InventoryItem a stocked consumable. QuantityInHand is only written by the stock ledger.
type InventoryItem struct {
	ID              string     `json:"id" bson:"_id"`
	Code            string     `json:"itemCode" bson:"itemCode"`
	Name            string     `json:"itemName" bson:"itemName"`
	Description     string     `json:"description,omitempty" bson:"description,omitempty"`
	BranchID        string     `json:"branchId" bson:"branchId"`
	CategoryID      string     `json:"categoryId" bson:"categoryId"`
	SupplierID      string     `json:"supplierId,omitempty" bson:"supplierId,omitempty"`
	UnitType        UnitType   `json:"unitType" bson:"unitType"`
	QuantityInHand  int64      `json:"quantityInHand" bson:"quantityInHand"`
	ReorderPoint    int64      `json:"reorderPoint" bson:"reorderPoint"`
	ReorderQuantity int64      `json:"reorderQuantity" bson:"reorderQuantity"`
	MinQuantity     int64      `json:"minQuantity" bson:"minQuantity"`
	MaxQuantity     int64      `json:"maxQuantity" bson:"maxQuantity"`
	CostPrice       float64    `json:"costPrice" bson:"costPrice"`
	Currency        string     `json:"currency" bson:"currency"`
	Status          ItemStatus `json:"status" bson:"status"`
	StorageLocation string     `json:"storageLocation,omitempty" bson:"storageLocation,omitempty"`
	BatchNumber     string     `json:"batchNumber,omitempty" bson:"batchNumber,omitempty"`
	ExpiryDate      string     `json:"expiryDate,omitempty" bson:"expiryDate,omitempty"`
	Notes           string     `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt       time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt" bson:"updatedAt"`
	LastStockUpdate *time.Time `json:"lastStockUpdateAt,omitempty" bson:"lastStockUpdateAt,omitempty"`
}

func (i InventoryItem) GetID() string { return i.ID }

// StockStatus classifies the item by quantity against its reorder point
func (i InventoryItem) StockStatus() StockStatus {
	switch {
	case i.QuantityInHand <= 0:
		return StockStatusOutOfStock
	case i.QuantityInHand <= i.ReorderPoint:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// InventoryItemView item enriched with derived and joined fields for display
type InventoryItemView struct {
	InventoryItem
	StockStatus  StockStatus `json:"stockStatus"`
	BranchName   string      `json:"branchName"`
	CategoryName string      `json:"categoryName"`
	SupplierName string      `json:"supplierName,omitempty"`
}

// TransactionType reason for a stock movement
type TransactionType string

const (
	TransactionPurchase   TransactionType = "Purchase"
	TransactionUsage      TransactionType = "Usage"
	TransactionAdjustment TransactionType = "Adjustment"
	TransactionReturn     TransactionType = "Return"
	TransactionDamaged    TransactionType = "Damaged"
	TransactionExpiry     TransactionType = "Expiry"
	TransactionDonation   TransactionType = "Donation"
)

// IsInbound Purchase and Return add stock, everything else removes it
func (t TransactionType) IsInbound() bool {
	return t == TransactionPurchase || t == TransactionReturn
}

// Valid reports whether t is a known type
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionPurchase, TransactionUsage, TransactionAdjustment, TransactionReturn,
		TransactionDamaged, TransactionExpiry, TransactionDonation:
		return true
	}
	return false
}

// StockTransaction immutable ledger row
type StockTransaction struct {
	ID              string          `json:"id" bson:"_id"`
	ItemID          string          `json:"itemId" bson:"itemId"`
	ItemCode        string          `json:"itemCode" bson:"itemCode"`
	ItemName        string          `json:"itemName" bson:"itemName"`
	Type            TransactionType `json:"transactionType" bson:"transactionType"`
	Quantity        int64           `json:"quantity" bson:"quantity"`
	QuantityBefore  int64           `json:"quantityBefore" bson:"quantityBefore"`
	QuantityAfter   int64           `json:"quantityAfter" bson:"quantityAfter"`
	ReferenceNumber string          `json:"referenceNumber,omitempty" bson:"referenceNumber,omitempty"`
	PerformedBy     string          `json:"performedBy" bson:"performedBy"`
	Reason          string          `json:"reason,omitempty" bson:"reason,omitempty"`
	Notes           string          `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
}

func (t StockTransaction) GetID() string { return t.ID }

// ReorderStatus reorder request lifecycle
type ReorderStatus string

const (
	ReorderOpen      ReorderStatus = "Open"
	ReorderConfirmed ReorderStatus = "Confirmed"
	ReorderReceived  ReorderStatus = "Received"
	ReorderPartial   ReorderStatus = "Partial"
	ReorderCancelled ReorderStatus = "Cancelled"
)

// ReorderRequest purchase intent for replenishing an item
type ReorderRequest struct {
	ID                   string        `json:"id" bson:"_id"`
	ItemID               string        `json:"itemId" bson:"itemId"`
	ItemCode             string        `json:"itemCode" bson:"itemCode"`
	ItemName             string        `json:"itemName" bson:"itemName"`
	SupplierID           string        `json:"supplierId,omitempty" bson:"supplierId,omitempty"`
	RequestedQuantity    int64         `json:"requestedQuantity" bson:"requestedQuantity"`
	ApproxCost           float64       `json:"approxCost" bson:"approxCost"`
	Status               ReorderStatus `json:"status" bson:"status"`
	PurchaseOrderNumber  string        `json:"purchaseOrderNumber,omitempty" bson:"purchaseOrderNumber,omitempty"`
	ExpectedDeliveryDate string        `json:"expectedDeliveryDate,omitempty" bson:"expectedDeliveryDate,omitempty"`
	ActualDeliveryDate   string        `json:"actualDeliveryDate,omitempty" bson:"actualDeliveryDate,omitempty"`
	RequestedBy          string        `json:"requestedBy" bson:"requestedBy"`
	ApprovedBy           string        `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	Notes                string        `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt            time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time     `json:"updatedAt" bson:"updatedAt"`
}

func (r ReorderRequest) GetID() string { return r.ID }

// AlertLevel severity of a low-stock alert
type AlertLevel string

const (
	AlertWarning  AlertLevel = "Warning"
	AlertCritical AlertLevel = "Critical"
)

// AlertStatus visibility of a low-stock alert
type AlertStatus string

const (
	AlertActive  AlertStatus = "Active"
	AlertIgnored AlertStatus = "Ignored"
)

// LowStockAlert produced by a computation pass over the items
type LowStockAlert struct {
	ID              string      `json:"id"`
	ItemID          string      `json:"itemId"`
	ItemCode        string      `json:"itemCode"`
	ItemName        string      `json:"itemName"`
	CurrentQuantity int64       `json:"currentQuantity"`
	ReorderPoint    int64       `json:"reorderPoint"`
	Level           AlertLevel  `json:"alertLevel"`
	Status          AlertStatus `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// InventoryStats dashboard figures
type InventoryStats struct {
	TotalItems      int       `json:"totalItems"`
	ActiveItems     int       `json:"activeItems"`
	InactiveItems   int       `json:"inactiveItems"`
	OnOrderItems    int       `json:"onOrderItems"`
	TotalValue      float64   `json:"totalValue"`
	InStockItems    int       `json:"inStockItems"`
	LowStockItems   int       `json:"lowStockItems"`
	OutOfStockItems int       `json:"outOfStockItems"`
	CriticalAlerts  int       `json:"criticalAlerts"`
	WarningAlerts   int       `json:"warningAlerts"`
	CategoriesCount int       `json:"categoriesCount"`
	SuppliersCount  int       `json:"suppliersCount"`
	GeneratedAt     time.Time `json:"generatedAt"`
}

// MovementSummary stock flow over a period
type MovementSummary struct {
	From          time.Time `json:"from"`
	To            time.Time `json:"to"`
	Transactions  int       `json:"transactions"`
	TotalInbound  int64     `json:"totalInbound"`
	TotalOutbound int64     `json:"totalOutbound"`
	NetMovement   int64     `json:"netMovement"`
}

// InventoryFilters list filters for items
type InventoryFilters struct {
	BranchID    string      `form:"branchId"`
	CategoryID  string      `form:"categoryId"`
	SupplierID  string      `form:"supplierId"`
	Status      ItemStatus  `form:"status"`
	StockStatus StockStatus `form:"stockStatus"`
	Search      string      `form:"search"`
}
