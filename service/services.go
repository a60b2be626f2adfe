package service

import (
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/repository"
)

// Services every service of the application over one set of stores
type Services struct {
	Catalog    *CatalogService
	Booking    *BookingService
	Orders     *OrderService
	Inventory  *InventoryService
	Reorders   *ReorderService
	Alerts     *AlertService
	Branches   *BranchService
	Categories *CategoryService
	Tests      *TestService
	Packages   *PackageService
	AdminUsers *AdminUserService
	Auth       *AuthService
	Finance    *FinanceService
	Audit      *OperationLogService
}

// NewServices wires the services; the order service doubles as booking backend
func NewServices(s *repository.Stores, sessionTTL, otpCooldown time.Duration) *Services {
	catalog := NewCatalogService(s)
	orders := NewOrderService(s, catalog)
	inventory := NewInventoryService(s)
	return &Services{
		Catalog:    catalog,
		Booking:    NewBookingService(s, catalog, orders, sessionTTL, otpCooldown),
		Orders:     orders,
		Inventory:  inventory,
		Reorders:   NewReorderService(s, inventory),
		Alerts:     NewAlertService(s),
		Branches:   NewBranchService(s),
		Categories: NewCategoryService(s),
		Tests:      NewTestService(s),
		Packages:   NewPackageService(s),
		AdminUsers: NewAdminUserService(s),
		Auth:       NewAuthService(s),
		Finance:    NewFinanceService(s),
		Audit:      NewOperationLogService(s),
	}
}
