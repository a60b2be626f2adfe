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
)

// BranchService lab branches. Codes are stored upper-cased and unique; at
// most one branch is the main branch.
type BranchService struct {
	branches repository.Repository[models.Branch]
	items    repository.Repository[models.InventoryItem]
	tx       repository.TxManager
	now      Clock
	log      zerolog.Logger
}

func NewBranchService(s *repository.Stores) *BranchService {
	return &BranchService{
		branches: s.Branches,
		items:    s.Items,
		tx:       s.Tx,
		now:      time.Now,
		log:      utils.Component("branches"),
	}
}

// BranchFilters list query
type BranchFilters struct {
	Search   string `form:"search"`
	IsActive *bool  `form:"isActive"`
}

func (s *BranchService) List(ctx context.Context, f BranchFilters) ([]models.Branch, error) {
	all, err := s.branches.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return Filter(all,
		func(b models.Branch) bool { return matchesText(f.Search, b.Name, b.Code, b.City) },
		func(b models.Branch) bool { return f.IsActive == nil || b.IsActive == *f.IsActive },
	), nil
}

func (s *BranchService) Get(ctx context.Context, id string) (*models.Branch, error) {
	b, err := s.branches.Get(ctx, id)
	if err != nil {
		return nil, lookupError(err, "branch")
	}
	return b, nil
}

func (s *BranchService) Create(ctx context.Context, req models.BranchRequest) (*models.Branch, error) {
	if fields := validateStruct(req); len(fields) > 0 {
		return nil, utils.CreateValidationError(fields)
	}

	now := s.now()
	b := models.Branch{
		ID:           newID("branch"),
		Name:         strings.TrimSpace(req.Name),
		Code:         strings.ToUpper(strings.TrimSpace(req.Code)),
		Address:      req.Address,
		City:         req.City,
		Pincode:      req.Pincode,
		Phone:        req.Phone,
		Email:        req.Email,
		IsActive:     boolOr(req.IsActive, true),
		IsMainBranch: req.IsMainBranch,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkCode(ctx, b.Code, ""); err != nil {
			return err
		}
		if b.IsMainBranch {
			if err := s.clearMain(ctx, b.ID); err != nil {
				return err
			}
		}
		if err := s.branches.Create(ctx, b); err != nil {
			return fmt.Errorf("create branch: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("branch", b.Code).Msg("branch created")
	return &b, nil
}

// Update partial edit; making a branch main demotes the previous one
func (s *BranchService) Update(ctx context.Context, id string, req models.UpdateBranchRequest) (*models.Branch, error) {
	if fields := validateStruct(req); len(fields) > 0 {
		return nil, utils.CreateValidationError(fields)
	}

	var out *models.Branch
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		b, err := s.Get(ctx, id)
		if err != nil {
			return err
		}

		if req.Code != nil {
			code := strings.ToUpper(strings.TrimSpace(*req.Code))
			if err := s.checkCode(ctx, code, id); err != nil {
				return err
			}
			b.Code = code
		}
		if req.Name != nil {
			b.Name = strings.TrimSpace(*req.Name)
		}
		if req.Address != nil {
			b.Address = *req.Address
		}
		if req.City != nil {
			b.City = *req.City
		}
		if req.Pincode != nil {
			b.Pincode = *req.Pincode
		}
		if req.Phone != nil {
			b.Phone = *req.Phone
		}
		if req.Email != nil {
			b.Email = *req.Email
		}
		if req.IsActive != nil {
			b.IsActive = *req.IsActive
		}
		if req.IsMainBranch != nil {
			if *req.IsMainBranch && !b.IsMainBranch {
				if err := s.clearMain(ctx, id); err != nil {
					return err
				}
			}
			b.IsMainBranch = *req.IsMainBranch
		}

		b.UpdatedAt = s.now()
		if err := s.branches.Update(ctx, *b); err != nil {
			return lookupError(err, "branch")
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleActive flips the active flag
func (s *BranchService) ToggleActive(ctx context.Context, id string) (*models.Branch, error) {
	var out *models.Branch
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		b, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		b.IsActive = !b.IsActive
		b.UpdatedAt = s.now()
		if err := s.branches.Update(ctx, *b); err != nil {
			return lookupError(err, "branch")
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete refuses the main branch and branches still holding items
func (s *BranchService) Delete(ctx context.Context, id string) error {
	var code string
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		b, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		if b.IsMainBranch {
			return utils.CreateDependencyError("cannot delete main branch")
		}

		items, err := s.items.List(ctx)
		if err != nil {
			return fmt.Errorf("list inventory items: %w", err)
		}
		held := len(Filter(items, func(i models.InventoryItem) bool { return i.BranchID == id }))
		if held > 0 {
			return utils.CreateDependencyError(fmt.Sprintf("cannot delete branch with %d items", held))
		}

		if err := s.branches.Delete(ctx, id); err != nil {
			return lookupError(err, "branch")
		}
		code = b.Code
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("branch", code).Msg("branch deleted")
	return nil
}

func (s *BranchService) checkCode(ctx context.Context, code, selfID string) error {
	dup, err := findBy(ctx, s.branches, func(b models.Branch) bool {
		return b.ID != selfID && strings.EqualFold(b.Code, code)
	})
	if err != nil {
		return fmt.Errorf("check branch code: %w", err)
	}
	if dup != nil {
		return utils.CreateDuplicateError("code", code)
	}
	return nil
}

func (s *BranchService) clearMain(ctx context.Context, exceptID string) error {
	all, err := s.branches.List(ctx)
	if err != nil {
		return fmt.Errorf("list branches: %w", err)
	}
	for _, b := range all {
		if b.ID == exceptID || !b.IsMainBranch {
			continue
		}
		b.IsMainBranch = false
		b.UpdatedAt = s.now()
		if err := s.branches.Update(ctx, b); err != nil {
			return fmt.Errorf("demote main branch: %w", err)
		}
	}
	return nil
}
