package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/repository"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const defaultCurrency = "INR"

// InventoryService items and the stock ledger. QuantityInHand only ever
// changes through AdjustStock, which writes the item and its ledger row in
// one transaction.
type InventoryService struct {
	items      repository.Repository[models.InventoryItem]
	branches   repository.Repository[models.Branch]
	categories repository.Repository[models.InventoryCategory]
	suppliers  repository.Repository[models.Supplier]
	reorders   repository.Repository[models.ReorderRequest]
	ledger     repository.TransactionLog
	tx         repository.TxManager
	now        Clock
	log        zerolog.Logger
}

func NewInventoryService(s *repository.Stores) *InventoryService {
	return &InventoryService{
		items:      s.Items,
		branches:   s.Branches,
		categories: s.Categories,
		suppliers:  s.Suppliers,
		reorders:   s.Reorders,
		ledger:     s.Ledger,
		tx:         s.Tx,
		now:        time.Now,
		log:        utils.Component("inventory"),
	}
}

// StockAdjustment one requested stock movement
type StockAdjustment struct {
	Type            models.TransactionType
	Quantity        int64
	PerformedBy     string
	ReferenceNumber string
	Reason          string
	Notes           string
}

// AdjustStock applies one movement: Purchase and Return add |quantity|,
// every other type removes it, never below zero
func (s *InventoryService) AdjustStock(ctx context.Context, itemID string, adj StockAdjustment) (*models.StockTransaction, *models.InventoryItem, error) {
	if !adj.Type.Valid() {
		return nil, nil, utils.CreateFieldError("transactionType", "is not a known transaction type")
	}
	if adj.Quantity == 0 {
		return nil, nil, utils.CreateFieldError("quantity", "must not be zero")
	}

	var row *models.StockTransaction
	var item *models.InventoryItem
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		item, err = s.items.Get(ctx, itemID)
		if err != nil {
			return lookupError(err, "inventory item")
		}
		row, err = s.apply(ctx, item, adj)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.log.Info().
		Str("item", item.Code).
		Str("type", string(row.Type)).
		Int64("before", row.QuantityBefore).
		Int64("after", row.QuantityAfter).
		Msg("stock adjusted")
	return row, item, nil
}

// apply must run inside a transaction
func (s *InventoryService) apply(ctx context.Context, item *models.InventoryItem, adj StockAdjustment) (*models.StockTransaction, error) {
	delta := adj.Quantity
	if delta < 0 {
		delta = -delta
	}

	before := item.QuantityInHand
	after := before + delta
	if !adj.Type.IsInbound() {
		after = before - delta
		if after < 0 {
			after = 0
		}
	}

	now := s.now()
	item.QuantityInHand = after
	item.LastStockUpdate = &now
	item.UpdatedAt = now
	if err := s.items.Update(ctx, *item); err != nil {
		return nil, lookupError(err, "inventory item")
	}

	row := models.StockTransaction{
		ID:              newID("txn"),
		ItemID:          item.ID,
		ItemCode:        item.Code,
		ItemName:        item.Name,
		Type:            adj.Type,
		Quantity:        after - before,
		QuantityBefore:  before,
		QuantityAfter:   after,
		ReferenceNumber: adj.ReferenceNumber,
		PerformedBy:     adj.PerformedBy,
		Reason:          adj.Reason,
		Notes:           adj.Notes,
		CreatedAt:       now,
	}
	if row.Quantity < 0 {
		row.Quantity = -row.Quantity
	}
	if err := s.ledger.Append(ctx, row); err != nil {
		return nil, fmt.Errorf("append stock transaction: %w", err)
	}
	return &row, nil
}

// ListItems items matching filters, in creation order
func (s *InventoryService) ListItems(ctx context.Context, f models.InventoryFilters) ([]models.InventoryItemView, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	names, err := s.names(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]models.InventoryItemView, 0, len(items))
	for _, item := range items {
		views = append(views, names.view(item))
	}
	return Filter(views,
		func(v models.InventoryItemView) bool { return f.BranchID == "" || v.BranchID == f.BranchID },
		func(v models.InventoryItemView) bool { return f.CategoryID == "" || v.CategoryID == f.CategoryID },
		func(v models.InventoryItemView) bool { return f.SupplierID == "" || v.SupplierID == f.SupplierID },
		func(v models.InventoryItemView) bool { return f.Status == "" || v.Status == f.Status },
		func(v models.InventoryItemView) bool { return f.StockStatus == "" || v.StockStatus == f.StockStatus },
		func(v models.InventoryItemView) bool {
			return matchesText(f.Search, v.Name, v.Code, v.CategoryName, v.BranchName)
		},
	), nil
}

func (s *InventoryService) GetItem(ctx context.Context, id string) (*models.InventoryItemView, error) {
	item, err := s.items.Get(ctx, id)
	if err != nil {
		return nil, lookupError(err, "inventory item")
	}
	names, err := s.names(ctx)
	if err != nil {
		return nil, err
	}
	view := names.view(*item)
	return &view, nil
}

// CreateItem adds an item; an opening quantity is posted to the ledger as a Purchase
func (s *InventoryService) CreateItem(ctx context.Context, req models.CreateItemRequest, performedBy string) (*models.InventoryItemView, error) {
	fields := validateStruct(req)
	if req.Status != "" && !itemStatusValid(req.Status) {
		fields = merge(fields, utils.FieldErrors{"status": "must be one of: Active, Inactive, On Order"})
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	now := s.now()
	item := models.InventoryItem{
		ID:              newID("inv"),
		Code:            code,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		BranchID:        req.BranchID,
		CategoryID:      req.CategoryID,
		SupplierID:      req.SupplierID,
		UnitType:        req.UnitType,
		ReorderPoint:    req.ReorderPoint,
		ReorderQuantity: req.ReorderQuantity,
		MinQuantity:     req.MinQuantity,
		MaxQuantity:     req.MaxQuantity,
		CostPrice:       req.CostPrice,
		Currency:        defaultCurrency,
		Status:          req.Status,
		StorageLocation: req.StorageLocation,
		BatchNumber:     req.BatchNumber,
		ExpiryDate:      req.ExpiryDate,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if item.Status == "" {
		item.Status = models.ItemStatusActive
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		invalid := merge(fields, s.checkRefs(ctx, req.BranchID, req.CategoryID, req.SupplierID))
		if code != "" {
			dup, err := findBy(ctx, s.items, func(i models.InventoryItem) bool { return strings.EqualFold(i.Code, code) })
			if err != nil {
				return fmt.Errorf("check item code: %w", err)
			}
			if dup != nil {
				return utils.CreateDuplicateError("itemCode", code)
			}
		}
		if len(invalid) > 0 {
			return utils.CreateValidationError(invalid)
		}

		if err := s.items.Create(ctx, item); err != nil {
			return fmt.Errorf("create inventory item: %w", err)
		}
		if req.QuantityInHand == 0 {
			return nil
		}
		_, err := s.apply(ctx, &item, StockAdjustment{
			Type:        models.TransactionPurchase,
			Quantity:    req.QuantityInHand,
			PerformedBy: performedBy,
			Reason:      "Opening stock",
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("item", item.Code).Int64("opening", item.QuantityInHand).Msg("inventory item created")
	return s.GetItem(ctx, item.ID)
}

// UpdateItem edits descriptive fields. Quantity is refused here; it moves
// only through AdjustStock.
func (s *InventoryService) UpdateItem(ctx context.Context, id string, req models.UpdateItemRequest) (*models.InventoryItemView, error) {
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.updateItem(ctx, id, req)
	})
	if err != nil {
		return nil, err
	}
	return s.GetItem(ctx, id)
}

// updateItem merges req over the stored item; callers hold a transaction
func (s *InventoryService) updateItem(ctx context.Context, id string, req models.UpdateItemRequest) error {
	item, err := s.items.Get(ctx, id)
	if err != nil {
		return lookupError(err, "inventory item")
	}

	fields := validateStruct(req)
	if req.QuantityInHand != nil && *req.QuantityInHand != item.QuantityInHand {
		fields = merge(fields, utils.FieldErrors{"quantityInHand": "use a stock adjustment to change the quantity"})
	}
	if req.Status != nil && !itemStatusValid(*req.Status) {
		fields = merge(fields, utils.FieldErrors{"status": "must be one of: Active, Inactive, On Order"})
	}

	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.BranchID != nil {
		item.BranchID = *req.BranchID
	}
	if req.CategoryID != nil {
		item.CategoryID = *req.CategoryID
	}
	if req.SupplierID != nil {
		item.SupplierID = *req.SupplierID
	}
	if req.UnitType != nil {
		item.UnitType = *req.UnitType
	}
	if req.ReorderPoint != nil {
		item.ReorderPoint = *req.ReorderPoint
	}
	if req.ReorderQuantity != nil {
		item.ReorderQuantity = *req.ReorderQuantity
	}
	if req.MinQuantity != nil {
		item.MinQuantity = *req.MinQuantity
	}
	if req.MaxQuantity != nil {
		item.MaxQuantity = *req.MaxQuantity
	}
	if req.CostPrice != nil {
		item.CostPrice = *req.CostPrice
	}
	if req.Status != nil {
		item.Status = *req.Status
	}
	if req.StorageLocation != nil {
		item.StorageLocation = *req.StorageLocation
	}
	if req.BatchNumber != nil {
		item.BatchNumber = *req.BatchNumber
	}
	if req.ExpiryDate != nil {
		item.ExpiryDate = *req.ExpiryDate
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}

	if req.BranchID != nil || req.CategoryID != nil || req.SupplierID != nil {
		fields = merge(fields, s.checkRefs(ctx, item.BranchID, item.CategoryID, item.SupplierID))
	}
	if len(fields) > 0 {
		return utils.CreateValidationError(fields)
	}

	item.UpdatedAt = s.now()
	if err := s.items.Update(ctx, *item); err != nil {
		return lookupError(err, "inventory item")
	}
	return nil
}

// DeleteItem removes an item with no reorder in flight. Its ledger rows stay.
func (s *InventoryService) DeleteItem(ctx context.Context, id string) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.items.Get(ctx, id); err != nil {
			return lookupError(err, "inventory item")
		}
		pending, err := findBy(ctx, s.reorders, func(r models.ReorderRequest) bool {
			return r.ItemID == id && (r.Status == models.ReorderOpen || r.Status == models.ReorderConfirmed)
		})
		if err != nil {
			return fmt.Errorf("check reorders: %w", err)
		}
		if pending != nil {
			return utils.CreateDependencyError("item has a reorder request in progress")
		}
		if err := s.items.Delete(ctx, id); err != nil {
			return lookupError(err, "inventory item")
		}
		return nil
	})
}

// TransactionFilters ledger query
type TransactionFilters struct {
	ItemID    string                 `form:"itemId"`
	Type      models.TransactionType `form:"transactionType"`
	StartDate string                 `form:"startDate"`
	EndDate   string                 `form:"endDate"`
}

// Transactions ledger rows, oldest first
func (s *InventoryService) Transactions(ctx context.Context, f TransactionFilters) ([]models.StockTransaction, error) {
	from, to, err := parseDateRange(f.StartDate, f.EndDate)
	if err != nil {
		return nil, err
	}
	rows, err := s.ledger.List(ctx, f.ItemID)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	return Filter(rows,
		func(t models.StockTransaction) bool { return f.Type == "" || t.Type == f.Type },
		func(t models.StockTransaction) bool { return from.IsZero() || !t.CreatedAt.Before(from) },
		func(t models.StockTransaction) bool { return to.IsZero() || t.CreatedAt.Before(to) },
	), nil
}

// MovementSummary inbound and outbound totals over [start, end]
func (s *InventoryService) MovementSummary(ctx context.Context, start, end string) (*models.MovementSummary, error) {
	from, to, err := parseDateRange(start, end)
	if err != nil {
		return nil, err
	}
	rows, err := s.Transactions(ctx, TransactionFilters{StartDate: start, EndDate: end})
	if err != nil {
		return nil, err
	}

	summary := &models.MovementSummary{From: from, To: to, Transactions: len(rows)}
	for _, r := range rows {
		moved := r.QuantityAfter - r.QuantityBefore
		if moved >= 0 {
			summary.TotalInbound += moved
		} else {
			summary.TotalOutbound -= moved
		}
	}
	summary.NetMovement = summary.TotalInbound - summary.TotalOutbound
	return summary, nil
}

// Stats dashboard figures derived from the current items
func (s *InventoryService) Stats(ctx context.Context) (*models.InventoryStats, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	categories, err := s.categories.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	suppliers, err := s.suppliers.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count suppliers: %w", err)
	}

	stats := &models.InventoryStats{
		TotalItems:      len(items),
		CategoriesCount: int(categories),
		SuppliersCount:  int(suppliers),
		GeneratedAt:     s.now(),
	}
	value := decimal.Zero
	for _, item := range items {
		switch item.Status {
		case models.ItemStatusActive:
			stats.ActiveItems++
		case models.ItemStatusInactive:
			stats.InactiveItems++
		case models.ItemStatusOnOrder:
			stats.OnOrderItems++
		}
		switch item.StockStatus() {
		case models.StockStatusInStock:
			stats.InStockItems++
		case models.StockStatusLowStock:
			stats.LowStockItems++
			stats.WarningAlerts++
		case models.StockStatusOutOfStock:
			stats.OutOfStockItems++
			stats.CriticalAlerts++
		}
		value = value.Add(stockValue(item))
	}
	stats.TotalValue = value.Round(2).InexactFloat64()
	return stats, nil
}

// Suppliers every supplier in creation order
func (s *InventoryService) Suppliers(ctx context.Context) ([]models.Supplier, error) {
	suppliers, err := s.suppliers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}

// Export items matching filters as csv or excel
func (s *InventoryService) Export(ctx context.Context, f models.InventoryFilters, format string) ([]byte, error) {
	views, err := s.ListItems(ctx, f)
	if err != nil {
		return nil, err
	}
	switch format {
	case "", ExportCSV:
		return ItemsCSV(views)
	case ExportExcel:
		return ItemsExcel(views)
	}
	return nil, utils.CreateFieldError("format", "must be one of: csv, excel")
}

func (s *InventoryService) checkRefs(ctx context.Context, branchID, categoryID, supplierID string) utils.FieldErrors {
	fields := utils.FieldErrors{}
	if branchID != "" {
		if _, err := s.branches.Get(ctx, branchID); err != nil {
			fields.Add("branchId", "is not a known branch")
		}
	}
	if categoryID != "" {
		if _, err := s.categories.Get(ctx, categoryID); err != nil {
			fields.Add("categoryId", "is not a known category")
		}
	}
	if supplierID != "" {
		if _, err := s.suppliers.Get(ctx, supplierID); err != nil {
			fields.Add("supplierId", "is not a known supplier")
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

type nameIndex struct {
	branches   map[string]string
	categories map[string]string
	suppliers  map[string]string
}

func (n nameIndex) view(item models.InventoryItem) models.InventoryItemView {
	return models.InventoryItemView{
		InventoryItem: item,
		StockStatus:   item.StockStatus(),
		BranchName:    n.branches[item.BranchID],
		CategoryName:  n.categories[item.CategoryID],
		SupplierName:  n.suppliers[item.SupplierID],
	}
}

func (s *InventoryService) names(ctx context.Context) (nameIndex, error) {
	idx := nameIndex{branches: map[string]string{}, categories: map[string]string{}, suppliers: map[string]string{}}

	branches, err := s.branches.List(ctx)
	if err != nil {
		return idx, fmt.Errorf("list branches: %w", err)
	}
	for _, b := range branches {
		idx.branches[b.ID] = b.Name
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return idx, fmt.Errorf("list categories: %w", err)
	}
	for _, c := range categories {
		idx.categories[c.ID] = c.Name
	}
	suppliers, err := s.suppliers.List(ctx)
	if err != nil {
		return idx, fmt.Errorf("list suppliers: %w", err)
	}
	for _, sp := range suppliers {
		idx.suppliers[sp.ID] = sp.Name
	}
	return idx, nil
}

func stockValue(item models.InventoryItem) decimal.Decimal {
	return decimal.NewFromInt(item.QuantityInHand).Mul(decimal.NewFromFloat(item.CostPrice))
}

func itemStatusValid(s models.ItemStatus) bool {
	return s == models.ItemStatusActive || s == models.ItemStatusInactive || s == models.ItemStatusOnOrder
}
