package service

import (
	"context"
	"fmt"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/repository"
)

// CatalogService read side of the catalog consumed by the booking wizard
type CatalogService struct {
	tests     repository.Repository[models.Test]
	packages  repository.Repository[models.HealthPackage]
	locations repository.Repository[models.LabLocation]
	slots     repository.Repository[models.TimeSlot]
	now       Clock
}

func NewCatalogService(s *repository.Stores) *CatalogService {
	return &CatalogService{
		tests:     s.Tests,
		packages:  s.Packages,
		locations: s.LabLocations,
		slots:     s.TimeSlots,
		now:       time.Now,
	}
}

// BookingOptions scheduling choices shown on step 4
type BookingOptions struct {
	AvailableDates      []string             `json:"availableDates"`
	HomeCollectionSlots []string             `json:"homeCollectionSlots"`
	LabLocations        []models.LabLocation `json:"labLocations"`
	TimeSlots           []models.TimeSlot    `json:"timeSlots"`
}

// Snapshot loads every catalog entity keyed by id
func (s *CatalogService) Snapshot(ctx context.Context) (*CatalogSnapshot, error) {
	tests, err := s.tests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}
	packages, err := s.packages.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	locations, err := s.locations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lab locations: %w", err)
	}
	slots, err := s.slots.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}

	snap := &CatalogSnapshot{
		Tests:     make(map[string]models.Test, len(tests)),
		Packages:  make(map[string]models.HealthPackage, len(packages)),
		Locations: make(map[string]models.LabLocation, len(locations)),
		Slots:     slots,
	}
	for _, t := range tests {
		snap.Tests[t.ID] = t
	}
	for _, p := range packages {
		snap.Packages[p.ID] = p
	}
	for _, l := range locations {
		snap.Locations[l.ID] = l
	}
	return snap, nil
}

// ActiveTests tests offered to patients
func (s *CatalogService) ActiveTests(ctx context.Context, query string) ([]models.Test, error) {
	tests, err := s.tests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}
	return Filter(tests,
		func(t models.Test) bool { return t.IsActive },
		func(t models.Test) bool { return matchesText(query, t.Title, t.Code, t.Category) },
	), nil
}

// ActivePackages packages offered to patients
func (s *CatalogService) ActivePackages(ctx context.Context, query string) ([]models.HealthPackage, error) {
	packages, err := s.packages.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	return Filter(packages,
		func(p models.HealthPackage) bool { return p.IsActive },
		func(p models.HealthPackage) bool { return matchesText(query, p.Title, p.Category) },
	), nil
}

// Options dates, slots and locations for scheduling
func (s *CatalogService) Options(ctx context.Context) (*BookingOptions, error) {
	locations, err := s.locations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lab locations: %w", err)
	}
	slots, err := s.slots.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}
	return &BookingOptions{
		AvailableDates:      AvailableDates(s.now()),
		HomeCollectionSlots: HomeCollectionSlots,
		LabLocations:        Filter(locations, func(l models.LabLocation) bool { return l.IsActive }),
		TimeSlots:           slots,
	}, nil
}
