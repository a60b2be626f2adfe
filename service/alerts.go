package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/repository"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/rs/zerolog"
)

// AlertService low-stock alerts. Alerts are recomputed from the items on
// Refresh; a dismissed alert stays hidden until the next Refresh.
type AlertService struct {
	items repository.Repository[models.InventoryItem]
	now   Clock
	log   zerolog.Logger

	mu       sync.Mutex
	alerts   []models.LowStockAlert
	computed bool
}

func NewAlertService(s *repository.Stores) *AlertService {
	return &AlertService{
		items: s.Items,
		now:   time.Now,
		log:   utils.Component("alerts"),
	}
}

// DeriveAlerts one alert per item at or below its reorder point
func DeriveAlerts(items []models.InventoryItem, now time.Time) []models.LowStockAlert {
	alerts := make([]models.LowStockAlert, 0)
	for _, item := range items {
		if item.QuantityInHand > item.ReorderPoint {
			continue
		}
		level := models.AlertWarning
		if item.QuantityInHand <= 0 {
			level = models.AlertCritical
		}
		alerts = append(alerts, models.LowStockAlert{
			ID:              "alert-" + item.ID,
			ItemID:          item.ID,
			ItemCode:        item.Code,
			ItemName:        item.Name,
			CurrentQuantity: item.QuantityInHand,
			ReorderPoint:    item.ReorderPoint,
			Level:           level,
			Status:          models.AlertActive,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}
	return alerts
}

// Refresh recomputes every alert, restoring dismissed ones still eligible
func (s *AlertService) Refresh(ctx context.Context) ([]models.LowStockAlert, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	alerts := DeriveAlerts(items, s.now())

	s.mu.Lock()
	s.alerts, s.computed = alerts, true
	s.mu.Unlock()

	s.log.Debug().Int("alerts", len(alerts)).Msg("low stock alerts refreshed")
	return active(alerts), nil
}

// Active alerts not dismissed since the last Refresh
func (s *AlertService) Active(ctx context.Context) ([]models.LowStockAlert, error) {
	s.mu.Lock()
	computed := s.computed
	s.mu.Unlock()
	if !computed {
		return s.Refresh(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return active(s.alerts), nil
}

// Dismiss hides one alert; the item's stock is untouched
func (s *AlertService) Dismiss(ctx context.Context, id string) (*models.LowStockAlert, error) {
	if _, err := s.Active(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.alerts {
		if s.alerts[i].ID != id {
			continue
		}
		s.alerts[i].Status = models.AlertIgnored
		s.alerts[i].UpdatedAt = s.now()
		alert := s.alerts[i]
		return &alert, nil
	}
	return nil, utils.CreateNotFoundError("stock alert")
}

func active(alerts []models.LowStockAlert) []models.LowStockAlert {
	return Filter(alerts, func(a models.LowStockAlert) bool { return a.Status == models.AlertActive })
}
