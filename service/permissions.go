package service

import (
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
)

// CapabilitySet set of granted capabilities
type CapabilitySet map[models.Capability]struct{}

func newCapabilitySet(caps ...models.Capability) CapabilitySet {
	set := make(CapabilitySet, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

// Has reports whether c is granted
func (s CapabilitySet) Has(c models.Capability) bool {
	_, ok := s[c]
	return ok
}

// List granted capabilities in display order
func (s CapabilitySet) List() []models.Capability {
	out := make([]models.Capability, 0, len(s))
	for _, c := range models.AllCapabilities {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

var roleCapabilities = map[models.AdminRole]CapabilitySet{
	models.RoleSuperAdmin: newCapabilitySet(models.AllCapabilities...),
	models.RoleManager: newCapabilitySet(
		models.CanManageUsers, models.CanManageTests, models.CanManagePackages,
		models.CanViewOrders, models.CanEditOrders, models.CanViewReports, models.CanEditReports,
		models.CanManageFinance, models.CanViewCustomers, models.CanEditCustomers,
		models.CanManageInventory,
	),
	models.RoleOperator: newCapabilitySet(
		models.CanManageTests, models.CanManagePackages, models.CanViewOrders, models.CanEditOrders,
		models.CanViewReports, models.CanViewCustomers, models.CanEditCustomers,
		models.CanManageInventory,
	),
	models.RoleAccountant: newCapabilitySet(
		models.CanViewOrders, models.CanViewReports, models.CanEditReports,
		models.CanManageFinance, models.CanViewCustomers,
	),
	models.RoleTechnician: newCapabilitySet(
		models.CanManageTests, models.CanManagePackages, models.CanViewOrders,
		models.CanViewReports, models.CanViewCustomers,
	),
	models.RoleViewer: newCapabilitySet(
		models.CanViewOrders, models.CanViewReports, models.CanViewCustomers,
	),
}

// RoleCapabilities fixed capability set of one role
func RoleCapabilities(role models.AdminRole) CapabilitySet {
	return roleCapabilities[role]
}

// EffectiveCapabilities union over roles: granted iff at least one role grants it
func EffectiveCapabilities(roles []models.AdminRole) CapabilitySet {
	set := CapabilitySet{}
	for _, r := range roles {
		for c := range roleCapabilities[r] {
			set[c] = struct{}{}
		}
	}
	return set
}

// HasCapability checks raw role names, as carried in a token
func HasCapability(roles []string, c models.Capability) bool {
	for _, r := range roles {
		if roleCapabilities[models.AdminRole(r)].Has(c) {
			return true
		}
	}
	return false
}
