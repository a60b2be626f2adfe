package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/repository"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// reorderTransitions legal moves; anything missing is rejected
var reorderTransitions = map[models.ReorderStatus][]models.ReorderStatus{
	models.ReorderOpen:      {models.ReorderConfirmed, models.ReorderCancelled},
	models.ReorderConfirmed: {models.ReorderReceived, models.ReorderPartial},
}

// CanTransition reports whether a reorder may move from -> to
func CanTransition(from, to models.ReorderStatus) bool {
	for _, next := range reorderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ReorderService reorder requests. Receiving posts the full requested
// quantity to the ledger as a Purchase in the same transaction.
type ReorderService struct {
	reorders  repository.Repository[models.ReorderRequest]
	items     repository.Repository[models.InventoryItem]
	suppliers repository.Repository[models.Supplier]
	tx        repository.TxManager
	inventory *InventoryService
	now       Clock
	log       zerolog.Logger
}

func NewReorderService(s *repository.Stores, inventory *InventoryService) *ReorderService {
	return &ReorderService{
		reorders:  s.Reorders,
		items:     s.Items,
		suppliers: s.Suppliers,
		tx:        s.Tx,
		inventory: inventory,
		now:       time.Now,
		log:       utils.Component("reorder"),
	}
}

// ReorderFilters list query
type ReorderFilters struct {
	Status models.ReorderStatus `form:"status"`
	ItemID string               `form:"itemId"`
}

// List reorders in creation order
func (s *ReorderService) List(ctx context.Context, f ReorderFilters) ([]models.ReorderRequest, error) {
	all, err := s.reorders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reorder requests: %w", err)
	}
	return Filter(all,
		func(r models.ReorderRequest) bool { return f.Status == "" || r.Status == f.Status },
		func(r models.ReorderRequest) bool { return f.ItemID == "" || r.ItemID == f.ItemID },
	), nil
}

func (s *ReorderService) Get(ctx context.Context, id string) (*models.ReorderRequest, error) {
	r, err := s.reorders.Get(ctx, id)
	if err != nil {
		return nil, lookupError(err, "reorder request")
	}
	return r, nil
}

// Create opens a reorder for an item, priced at its cost price
func (s *ReorderService) Create(ctx context.Context, req models.CreateReorderRequest, requestedBy string) (*models.ReorderRequest, error) {
	if req.RequestedQuantity <= 0 {
		return nil, utils.CreateFieldError("requestedQuantity", "must be greater than 0")
	}
	item, err := s.items.Get(ctx, req.ItemID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.CreateFieldError("itemId", "is not a known inventory item")
	}
	if err != nil {
		return nil, fmt.Errorf("load inventory item: %w", err)
	}

	supplierID := req.SupplierID
	if supplierID == "" {
		supplierID = item.SupplierID
	} else if _, err := s.suppliers.Get(ctx, supplierID); err != nil {
		return nil, utils.CreateFieldError("supplierId", "is not a known supplier")
	}

	now := s.now()
	r := models.ReorderRequest{
		ID:                   newID("reo"),
		ItemID:               item.ID,
		ItemCode:             item.Code,
		ItemName:             item.Name,
		SupplierID:           supplierID,
		RequestedQuantity:    req.RequestedQuantity,
		ApproxCost:           approxCost(req.RequestedQuantity, item.CostPrice),
		Status:               models.ReorderOpen,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		RequestedBy:          requestedBy,
		Notes:                req.Notes,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.reorders.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create reorder request: %w", err)
	}
	s.log.Info().Str("reorder", r.ID).Str("item", item.Code).Int64("quantity", r.RequestedQuantity).Msg("reorder opened")
	return &r, nil
}

// Update edits a reorder that is still Open
func (s *ReorderService) Update(ctx context.Context, id string, req models.UpdateReorderRequest) (*models.ReorderRequest, error) {
	var out *models.ReorderRequest
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		r, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		if r.Status != models.ReorderOpen {
			return utils.NewApiError("only open reorder requests can be edited", http.StatusConflict, utils.CodeInvalidTransition)
		}

		if req.RequestedQuantity != nil {
			if *req.RequestedQuantity <= 0 {
				return utils.CreateFieldError("requestedQuantity", "must be greater than 0")
			}
			item, err := s.items.Get(ctx, r.ItemID)
			if err != nil {
				return lookupError(err, "inventory item")
			}
			r.RequestedQuantity = *req.RequestedQuantity
			r.ApproxCost = approxCost(r.RequestedQuantity, item.CostPrice)
		}
		if req.SupplierID != nil {
			if *req.SupplierID != "" {
				if _, err := s.suppliers.Get(ctx, *req.SupplierID); err != nil {
					return utils.CreateFieldError("supplierId", "is not a known supplier")
				}
			}
			r.SupplierID = *req.SupplierID
		}
		if req.ExpectedDeliveryDate != nil {
			r.ExpectedDeliveryDate = *req.ExpectedDeliveryDate
		}
		if req.Notes != nil {
			r.Notes = *req.Notes
		}

		r.UpdatedAt = s.now()
		if err := s.reorders.Update(ctx, *r); err != nil {
			return lookupError(err, "reorder request")
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Transition moves a reorder along its lifecycle. Received adds the full
// requested quantity to stock; Partial leaves stock for manual reconciliation.
func (s *ReorderService) Transition(ctx context.Context, id string, req models.ReorderTransitionRequest, actor string) (*models.ReorderRequest, error) {
	var out *models.ReorderRequest
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		r, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		if !CanTransition(r.Status, req.Status) {
			return utils.CreateTransitionError(string(r.Status), string(req.Status))
		}

		r.Status = req.Status
		r.UpdatedAt = s.now()
		if req.PurchaseOrderNumber != "" {
			r.PurchaseOrderNumber = req.PurchaseOrderNumber
		}
		if req.ExpectedDeliveryDate != "" {
			r.ExpectedDeliveryDate = req.ExpectedDeliveryDate
		}
		if req.ActualDeliveryDate != "" {
			r.ActualDeliveryDate = req.ActualDeliveryDate
		}
		if req.Notes != "" {
			r.Notes = req.Notes
		}
		if req.Status == models.ReorderConfirmed {
			r.ApprovedBy = actor
		}
		if (req.Status == models.ReorderReceived || req.Status == models.ReorderPartial) && r.ActualDeliveryDate == "" {
			r.ActualDeliveryDate = r.UpdatedAt.Format(dateLayout)
		}

		if err := s.reorders.Update(ctx, *r); err != nil {
			return lookupError(err, "reorder request")
		}

		if req.Status == models.ReorderReceived {
			item, err := s.items.Get(ctx, r.ItemID)
			if err != nil {
				return lookupError(err, "inventory item")
			}
			ref := r.PurchaseOrderNumber
			if ref == "" {
				ref = r.ID
			}
			if _, err := s.inventory.apply(ctx, item, StockAdjustment{
				Type:            models.TransactionPurchase,
				Quantity:        r.RequestedQuantity,
				PerformedBy:     actor,
				ReferenceNumber: ref,
				Notes:           "Reorder received - PO: " + ref,
			}); err != nil {
				return err
			}
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("reorder", out.ID).Str("status", string(out.Status)).Str("by", actor).Msg("reorder status changed")
	return out, nil
}

// Cancel shorthand for the Open -> Cancelled transition
func (s *ReorderService) Cancel(ctx context.Context, id, reason, actor string) (*models.ReorderRequest, error) {
	return s.Transition(ctx, id, models.ReorderTransitionRequest{
		Status: models.ReorderCancelled,
		Notes:  strings.TrimSpace(reason),
	}, actor)
}

func approxCost(qty int64, cost float64) float64 {
	return decimal.NewFromInt(qty).Mul(decimal.NewFromFloat(cost)).Round(2).InexactFloat64()
}
