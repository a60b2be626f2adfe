package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/repository"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"
)

// CatalogFilters list query shared by tests and packages
type CatalogFilters struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	IsActive *bool  `form:"isActive"`
}

// TestService "Manage Tests" back office
type TestService struct {
	tests    repository.Repository[models.Test]
	packages repository.Repository[models.HealthPackage]
	tx       repository.TxManager
	now      Clock
}

func NewTestService(s *repository.Stores) *TestService {
	return &TestService{tests: s.Tests, packages: s.Packages, tx: s.Tx, now: time.Now}
}

func (s *TestService) List(ctx context.Context, f CatalogFilters) ([]models.Test, error) {
	all, err := s.tests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}
	return Filter(all,
		func(t models.Test) bool { return matchesText(f.Search, t.Title, t.Code) },
		func(t models.Test) bool { return f.Category == "" || strings.EqualFold(t.Category, f.Category) },
		func(t models.Test) bool { return f.IsActive == nil || t.IsActive == *f.IsActive },
	), nil
}

func (s *TestService) Get(ctx context.Context, id string) (*models.Test, error) {
	t, err := s.tests.Get(ctx, id)
	if err != nil {
		return nil, lookupError(err, "test")
	}
	return t, nil
}

func (s *TestService) Create(ctx context.Context, req models.TestRequest) (*models.Test, error) {
	fields := merge(validateStruct(req), checkPrice(req.Price))
	if len(fields) > 0 {
		return nil, utils.CreateValidationError(fields)
	}
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	now := s.now()
	t := models.Test{
		ID:                  newID("test"),
		Title:               strings.TrimSpace(req.Title),
		Code:                code,
		Slug:                utils.Slugify(req.Title),
		Category:            req.Category,
		Description:         req.Description,
		Price:               req.Price,
		SampleType:          req.SampleType,
		TurnaroundTime:      req.TurnaroundTime,
		PreparationRequired: req.PreparationRequired,
		IsActive:            boolOr(req.IsActive, true),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkCode(ctx, code, ""); err != nil {
			return err
		}
		if err := s.tests.Create(ctx, t); err != nil {
			return fmt.Errorf("create test: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TestService) Update(ctx context.Context, id string, req models.UpdateTestRequest) (*models.Test, error) {
	fields := validateStruct(req)
	if req.Price != nil {
		fields = merge(fields, checkPrice(*req.Price))
	}
	if len(fields) > 0 {
		return nil, utils.CreateValidationError(fields)
	}

	var out *models.Test
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		t, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		if req.Code != nil {
			code := strings.ToUpper(strings.TrimSpace(*req.Code))
			if err := s.checkCode(ctx, code, id); err != nil {
				return err
			}
			t.Code = code
		}
		if req.Title != nil {
			t.Title = strings.TrimSpace(*req.Title)
			t.Slug = utils.Slugify(t.Title)
		}
		if req.Category != nil {
			t.Category = *req.Category
		}
		if req.Description != nil {
			t.Description = *req.Description
		}
		if req.Price != nil {
			t.Price = *req.Price
		}
		if req.SampleType != nil {
			t.SampleType = *req.SampleType
		}
		if req.TurnaroundTime != nil {
			t.TurnaroundTime = *req.TurnaroundTime
		}
		if req.PreparationRequired != nil {
			t.PreparationRequired = *req.PreparationRequired
		}
		if req.IsActive != nil {
			t.IsActive = *req.IsActive
		}

		t.UpdatedAt = s.now()
		if err := s.tests.Update(ctx, *t); err != nil {
			return lookupError(err, "test")
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete refuses tests bundled in a package
func (s *TestService) Delete(ctx context.Context, id string) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
		pkg, err := findBy(ctx, s.packages, func(p models.HealthPackage) bool { return contains(p.TestIDs, id) })
		if err != nil {
			return fmt.Errorf("check packages: %w", err)
		}
		if pkg != nil {
			return utils.CreateDependencyError(fmt.Sprintf("test is included in package %q", pkg.Title))
		}
		if err := s.tests.Delete(ctx, id); err != nil {
			return lookupError(err, "test")
		}
		return nil
	})
}

func (s *TestService) checkCode(ctx context.Context, code, selfID string) error {
	dup, err := findBy(ctx, s.tests, func(t models.Test) bool {
		return t.ID != selfID && strings.EqualFold(t.Code, code)
	})
	if err != nil {
		return fmt.Errorf("check test code: %w", err)
	}
	if dup != nil {
		return utils.CreateDuplicateError("code", code)
	}
	return nil
}

func checkPrice(p models.PriceInfo) utils.FieldErrors {
	fields := utils.FieldErrors{}
	if p.Final <= 0 {
		fields.Add("price.final", "must be greater than 0")
	}
	if p.Original != nil && *p.Original < p.Final {
		fields.Add("price.original", "must not be below the final price")
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// PackageService "Manage Packages" back office
type PackageService struct {
	packages repository.Repository[models.HealthPackage]
	tests    repository.Repository[models.Test]
	tx       repository.TxManager
	now      Clock
}

func NewPackageService(s *repository.Stores) *PackageService {
	return &PackageService{packages: s.Packages, tests: s.Tests, tx: s.Tx, now: time.Now}
}

func (s *PackageService) List(ctx context.Context, f CatalogFilters) ([]models.HealthPackage, error) {
	all, err := s.packages.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	return Filter(all,
		func(p models.HealthPackage) bool { return matchesText(f.Search, p.Title, p.Subtitle) },
		func(p models.HealthPackage) bool { return f.Category == "" || strings.EqualFold(p.Category, f.Category) },
		func(p models.HealthPackage) bool { return f.IsActive == nil || p.IsActive == *f.IsActive },
	), nil
}

func (s *PackageService) Get(ctx context.Context, id string) (*models.HealthPackage, error) {
	p, err := s.packages.Get(ctx, id)
	if err != nil {
		return nil, lookupError(err, "package")
	}
	return p, nil
}

func (s *PackageService) Create(ctx context.Context, req models.PackageRequest) (*models.HealthPackage, error) {
	fields := validateStruct(req)
	testIDs := dedupe(req.TestIDs)

	now := s.now()
	p := models.HealthPackage{
		ID:          newID("pkg"),
		Title:       strings.TrimSpace(req.Title),
		Subtitle:    req.Subtitle,
		Slug:        utils.Slugify(req.Title),
		Category:    req.Category,
		Description: req.Description,
		TestIDs:     testIDs,
		TestCount:   len(testIDs),
		Price:       req.Price,
		Discount:    req.Discount,
		ReportTime:  req.ReportTime,
		IsActive:    boolOr(req.IsActive, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		missing, err := s.missingTests(ctx, testIDs)
		if err != nil {
			return err
		}
		if invalid := merge(fields, missing); len(invalid) > 0 {
			return utils.CreateValidationError(invalid)
		}
		if err := s.packages.Create(ctx, p); err != nil {
			return fmt.Errorf("create package: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PackageService) Update(ctx context.Context, id string, req models.UpdatePackageRequest) (*models.HealthPackage, error) {
	fields := validateStruct(req)
	var testIDs []string
	if req.TestIDs != nil {
		testIDs = dedupe(req.TestIDs)
	}

	var out *models.HealthPackage
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if testIDs != nil {
			missing, err := s.missingTests(ctx, testIDs)
			if err != nil {
				return err
			}
			fields = merge(fields, missing)
		}
		if len(fields) > 0 {
			return utils.CreateValidationError(fields)
		}

		p, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		if req.Title != nil {
			p.Title = strings.TrimSpace(*req.Title)
			p.Slug = utils.Slugify(p.Title)
		}
		if req.Subtitle != nil {
			p.Subtitle = *req.Subtitle
		}
		if req.Category != nil {
			p.Category = *req.Category
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if testIDs != nil {
			p.TestIDs = testIDs
			p.TestCount = len(testIDs)
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		if req.Discount != nil {
			p.Discount = *req.Discount
		}
		if req.ReportTime != nil {
			p.ReportTime = *req.ReportTime
		}
		if req.IsActive != nil {
			p.IsActive = *req.IsActive
		}

		p.UpdatedAt = s.now()
		if err := s.packages.Update(ctx, *p); err != nil {
			return lookupError(err, "package")
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PackageService) Delete(ctx context.Context, id string) error {
	if err := s.packages.Delete(ctx, id); err != nil {
		return lookupError(err, "package")
	}
	return nil
}

func (s *PackageService) missingTests(ctx context.Context, ids []string) (utils.FieldErrors, error) {
	if len(ids) == 0 {
		return utils.FieldErrors{"testIds": "must include at least one test"}, nil
	}
	for _, id := range ids {
		_, err := s.tests.Get(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return utils.FieldErrors{"testIds": "unknown test " + id}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("load test: %w", err)
		}
	}
	return nil, nil
}
