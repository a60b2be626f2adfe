package models

import "time"

// AdminRole role assignable to a back-office user
type AdminRole string

const (
	RoleSuperAdmin AdminRole = "Super Admin"
	RoleManager    AdminRole = "Manager"
	RoleOperator   AdminRole = "Operator"
	RoleAccountant AdminRole = "Accountant"
	RoleTechnician AdminRole = "Technician"
	RoleViewer     AdminRole = "Viewer"
)

// AllRoles in display order
var AllRoles = []AdminRole{RoleSuperAdmin, RoleManager, RoleOperator, RoleAccountant, RoleTechnician, RoleViewer}

// Valid reports whether r is one of the six roles
func (r AdminRole) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// Capability single named permission
type Capability string

const (
	CanManageUsers     Capability = "canManageUsers"
	CanManageTests     Capability = "canManageTests"
	CanManagePackages  Capability = "canManagePackages"
	CanViewOrders      Capability = "canViewOrders"
	CanEditOrders      Capability = "canEditOrders"
	CanViewReports     Capability = "canViewReports"
	CanEditReports     Capability = "canEditReports"
	CanManageFinance   Capability = "canManageFinance"
	CanViewCustomers   Capability = "canViewCustomers"
	CanEditCustomers   Capability = "canEditCustomers"
	CanManageTenants   Capability = "canManageTenants"
	CanManageInventory Capability = "canManageInventory"
)

// AllCapabilities in display order
var AllCapabilities = []Capability{
	CanManageUsers, CanManageTests, CanManagePackages, CanViewOrders, CanEditOrders,
	CanViewReports, CanEditReports, CanManageFinance, CanViewCustomers, CanEditCustomers,
	CanManageTenants, CanManageInventory,
}

// AdminUserStatus account state
type AdminUserStatus string

const (
	AdminUserActive    AdminUserStatus = "Active"
	AdminUserInactive  AdminUserStatus = "Inactive"
	AdminUserSuspended AdminUserStatus = "Suspended"
)

// Valid reports whether s is a known status
func (s AdminUserStatus) Valid() bool {
	return s == AdminUserActive || s == AdminUserInactive || s == AdminUserSuspended
}

// AdminUser back-office account. Capabilities is derived from Roles on every read.
type AdminUser struct {
	ID           string          `json:"id" bson:"_id"`
	Username     string          `json:"username" bson:"username"`
	Email        string          `json:"email" bson:"email"`
	FullName     string          `json:"fullName" bson:"fullName"`
	Phone        string          `json:"phone,omitempty" bson:"phone,omitempty"`
	PasswordHash string          `json:"-" bson:"passwordHash"`
	Roles        []AdminRole     `json:"roles" bson:"roles"`
	Capabilities []Capability    `json:"permissions" bson:"-"`
	Status       AdminUserStatus `json:"status" bson:"status"`
	BranchID     string          `json:"branchId,omitempty" bson:"branchId,omitempty"`
	LastLogin    *time.Time      `json:"lastLogin,omitempty" bson:"lastLogin,omitempty"`
	CreatedAt    time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt" bson:"updatedAt"`
}

func (u AdminUser) GetID() string { return u.ID }

// RoleNames roles as plain strings, used for token claims
func (u AdminUser) RoleNames() []string {
	out := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		out[i] = string(r)
	}
	return out
}

// AdminUserStats dashboard counts
type AdminUserStats struct {
	TotalUsers     int               `json:"totalUsers"`
	ActiveUsers    int               `json:"activeUsers"`
	InactiveUsers  int               `json:"inactiveUsers"`
	SuspendedUsers int               `json:"suspendedUsers"`
	ByRole         map[AdminRole]int `json:"byRole"`
}

// AdminUserFilters list filters
type AdminUserFilters struct {
	Search string          `form:"search"`
	Role   AdminRole       `form:"role"`
	Status AdminUserStatus `form:"status"`
}
