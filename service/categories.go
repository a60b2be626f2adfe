package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/repository"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"
)

// CategoryService inventory categories; ItemCount is derived on read
type CategoryService struct {
	categories repository.Repository[models.InventoryCategory]
	items      repository.Repository[models.InventoryItem]
	tx         repository.TxManager
	now        Clock
}

func NewCategoryService(s *repository.Stores) *CategoryService {
	return &CategoryService{categories: s.Categories, items: s.Items, tx: s.Tx, now: time.Now}
}

// CategoryFilters list query
type CategoryFilters struct {
	Search   string `form:"search"`
	IsActive *bool  `form:"isActive"`
}

func (s *CategoryService) List(ctx context.Context, f CategoryFilters) ([]models.InventoryCategory, error) {
	all, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	counts, err := s.itemCounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		all[i].ItemCount = counts[all[i].ID]
	}
	return Filter(all,
		func(c models.InventoryCategory) bool { return matchesText(f.Search, c.Name, c.Code) },
		func(c models.InventoryCategory) bool { return f.IsActive == nil || c.IsActive == *f.IsActive },
	), nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.InventoryCategory, error) {
	c, err := s.categories.Get(ctx, id)
	if err != nil {
		return nil, lookupError(err, "category")
	}
	counts, err := s.itemCounts(ctx)
	if err != nil {
		return nil, err
	}
	c.ItemCount = counts[id]
	return c, nil
}

func (s *CategoryService) Create(ctx context.Context, req models.CategoryRequest) (*models.InventoryCategory, error) {
	if fields := validateStruct(req); len(fields) > 0 {
		return nil, utils.CreateValidationError(fields)
	}
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	now := s.now()
	c := models.InventoryCategory{
		ID:          newID("cat"),
		Name:        strings.TrimSpace(req.Name),
		Code:        code,
		Description: req.Description,
		Color:       req.Color,
		IsActive:    boolOr(req.IsActive, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkCode(ctx, code, ""); err != nil {
			return err
		}
		if err := s.categories.Create(ctx, c); err != nil {
			return fmt.Errorf("create category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, req models.UpdateCategoryRequest) (*models.InventoryCategory, error) {
	if fields := validateStruct(req); len(fields) > 0 {
		return nil, utils.CreateValidationError(fields)
	}

	var out *models.InventoryCategory
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		c, err := s.Get(ctx, id)
		if err != nil {
			return err
		}

		if req.Code != nil {
			code := strings.ToUpper(strings.TrimSpace(*req.Code))
			if err := s.checkCode(ctx, code, id); err != nil {
				return err
			}
			c.Code = code
		}
		if req.Name != nil {
			c.Name = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			c.Description = *req.Description
		}
		if req.Color != nil {
			c.Color = *req.Color
		}
		if req.IsActive != nil {
			c.IsActive = *req.IsActive
		}

		c.UpdatedAt = s.now()
		if err := s.categories.Update(ctx, *c); err != nil {
			return lookupError(err, "category")
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete refuses while any item is filed under the category
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		c, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		if c.ItemCount > 0 {
			return utils.CreateDependencyError(fmt.Sprintf("cannot delete category with %d items", c.ItemCount))
		}
		if err := s.categories.Delete(ctx, id); err != nil {
			return lookupError(err, "category")
		}
		return nil
	})
}

func (s *CategoryService) itemCounts(ctx context.Context) (map[string]int, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	counts := make(map[string]int)
	for _, item := range items {
		counts[item.CategoryID]++
	}
	return counts, nil
}

func (s *CategoryService) checkCode(ctx context.Context, code, selfID string) error {
	dup, err := findBy(ctx, s.categories, func(c models.InventoryCategory) bool {
		return c.ID != selfID && strings.EqualFold(c.Code, code)
	})
	if err != nil {
		return fmt.Errorf("check category code: %w", err)
	}
	if dup != nil {
		return utils.CreateDuplicateError("code", code)
	}
	return nil
}
