package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"
)

// DefaultAdminUsername account created on an empty user store
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin12345"
)

func price(final int64, original ...int64) models.PriceInfo {
	p := models.PriceInfo{Final: final, Currency: "INR"}
	if len(original) > 0 {
		o := original[0]
		p.Original = &o
	}
	return p
}

// SeedData populates empty stores with the reference catalog, inventory and
// a default super admin. Each group is skipped when it already has data.
func SeedData(ctx context.Context, s *Stores) error {
	base := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)
	stamp := func(i int) time.Time { return base.Add(time.Duration(i) * time.Minute) }

	if err := seedCatalog(ctx, s, stamp); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if err := seedInventory(ctx, s, stamp); err != nil {
		return fmt.Errorf("seed inventory: %w", err)
	}
	if err := InitializeAdminAccount(ctx, s); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

func seedCatalog(ctx context.Context, s *Stores, stamp func(int) time.Time) error {
	if n, err := s.Tests.Count(ctx); err != nil || n > 0 {
		if err == nil {
			utils.Logger.Info().Msg("catalog already present, skipping seed")
		}
		return err
	}

	tests := []models.Test{
		{ID: "test-1", Title: "Complete Blood Count (CBC)", Code: "CBC", Slug: "complete-blood-count-cbc", Category: "Blood Tests", Price: price(399, 500), SampleType: "Blood", TurnaroundTime: "6-8 hours"},
		{ID: "test-2", Title: "Lipid Profile", Code: "LIPID", Slug: "lipid-profile", Category: "Blood Tests", Price: price(599, 800), SampleType: "Blood", TurnaroundTime: "12-24 hours", PreparationRequired: true},
		{ID: "test-3", Title: "Thyroid Function Test (TFT)", Code: "TFT", Slug: "thyroid-function-test", Category: "Hormone Tests", Price: price(450), SampleType: "Blood", TurnaroundTime: "24 hours"},
		{ID: "test-4", Title: "HbA1c (Diabetes Test)", Code: "HBA1C", Slug: "hba1c", Category: "Diabetes", Price: price(499, 600), SampleType: "Blood", TurnaroundTime: "24 hours"},
		{ID: "test-5", Title: "Liver Function Test (LFT)", Code: "LFT", Slug: "liver-function-test", Category: "Blood Tests", Price: price(549, 700), SampleType: "Blood", TurnaroundTime: "24 hours", PreparationRequired: true},
		{ID: "test-6", Title: "Kidney Function Test (KFT)", Code: "KFT", Slug: "kidney-function-test", Category: "Blood Tests", Price: price(599), SampleType: "Blood", TurnaroundTime: "24 hours"},
		{ID: "test-7", Title: "Vitamin D Test", Code: "VITD", Slug: "vitamin-d-test", Category: "Vitamins", Price: price(899, 1200), SampleType: "Blood", TurnaroundTime: "48 hours"},
		{ID: "test-8", Title: "Urine Routine & Microscopy", Code: "URINE", Slug: "urine-routine", Category: "Urine Tests", Price: price(199, 300), SampleType: "Urine", TurnaroundTime: "6 hours"},
	}
	for i, t := range tests {
		t.IsActive = true
		t.CreatedAt, t.UpdatedAt = stamp(i), stamp(i)
		if err := s.Tests.Create(ctx, t); err != nil {
			return err
		}
	}

	packages := []models.HealthPackage{
		{ID: "pkg-001", Title: "Basic Health Checkup", Category: "Preventive", TestIDs: []string{"test-1", "test-2", "test-8"}, Price: 999, Discount: 20, ReportTime: "Same Day"},
		{ID: "pkg-002", Title: "Advanced Full Body Checkup", Category: "Preventive", TestIDs: []string{"test-1", "test-2", "test-3", "test-4", "test-5", "test-6", "test-7", "test-8"}, Price: 2499, Discount: 25, ReportTime: "Next Day"},
		{ID: "pkg-003", Title: "Diabetes Care Package", Category: "Diabetes", TestIDs: []string{"test-4", "test-6", "test-2", "test-8"}, Price: 1299, Discount: 15, ReportTime: "Same Day"},
		{ID: "pkg-004", Title: "Heart Health Package", Category: "Cardiac", TestIDs: []string{"test-2", "test-1", "test-6"}, Price: 1899, Discount: 18, ReportTime: "Same Day"},
		{ID: "pkg-005", Title: "Women's Health Package", Category: "Women's Health", TestIDs: []string{"test-1", "test-3", "test-7"}, Price: 2999, Discount: 22, ReportTime: "2-3 Days"},
		{ID: "pkg-006", Title: "Senior Citizen Package", Category: "Senior Care", TestIDs: []string{"test-1", "test-5", "test-6", "test-2", "test-4", "test-7"}, Price: 3499, Discount: 30, ReportTime: "Next Day"},
		{ID: "pkg-007", Title: "Fever Panel", Category: "Infection", TestIDs: []string{"test-1", "test-8"}, Price: 1000, Discount: 10, ReportTime: "Same Day"},
	}
	for i, p := range packages {
		p.Slug = utils.Slugify(p.Title)
		p.TestCount = len(p.TestIDs)
		p.IsActive = true
		p.CreatedAt, p.UpdatedAt = stamp(i), stamp(i)
		if err := s.Packages.Create(ctx, p); err != nil {
			return err
		}
	}

	labs := []models.LabLocation{
		{ID: "lab-001", Name: "Ekta Janch Kendra - Main Branch", Address: "123, Main Road, Near City Hospital, Delhi", IsActive: true},
		{ID: "lab-002", Name: "Ekta Janch Kendra - South Branch", Address: "456, South Extension, Part II, Delhi", IsActive: true},
		{ID: "lab-003", Name: "Ekta Janch Kendra - West Branch", Address: "789, Rajouri Garden, Delhi", IsActive: true},
	}
	for _, l := range labs {
		if err := s.LabLocations.Create(ctx, l); err != nil {
			return err
		}
	}

	slots := []models.TimeSlot{
		{ID: "slot-1", Time: "06:00 AM - 07:00 AM", Available: true},
		{ID: "slot-2", Time: "07:00 AM - 08:00 AM", Available: true},
		{ID: "slot-3", Time: "08:00 AM - 09:00 AM", Available: true},
		{ID: "slot-4", Time: "09:00 AM - 10:00 AM", Available: false},
		{ID: "slot-5", Time: "10:00 AM - 11:00 AM", Available: true},
		{ID: "slot-6", Time: "11:00 AM - 12:00 PM", Available: true},
		{ID: "slot-7", Time: "04:00 PM - 05:00 PM", Available: true},
		{ID: "slot-8", Time: "05:00 PM - 06:00 PM", Available: true},
		{ID: "slot-9", Time: "06:00 PM - 07:00 PM", Available: false},
	}
	for _, sl := range slots {
		if err := s.TimeSlots.Create(ctx, sl); err != nil {
			return err
		}
	}

	utils.LogInfo(map[string]interface{}{"tests": len(tests), "packages": len(packages)}, "catalog seeded")
	return nil
}

func seedInventory(ctx context.Context, s *Stores, stamp func(int) time.Time) error {
	if n, err := s.Branches.Count(ctx); err != nil || n > 0 {
		return err
	}

	branches := []models.Branch{
		{ID: "branch-001", Name: "Main Laboratory", Code: "MAIN", City: "Jaipur", Pincode: "302001", Phone: "0141-2345678", IsMainBranch: true},
		{ID: "branch-002", Name: "City Center Branch", Code: "CCB", City: "Jaipur", Pincode: "302015", Phone: "0141-3456789", Email: "citycenter@ektalab.com"},
		{ID: "branch-003", Name: "Malviya Nagar Branch", Code: "MNB", City: "Jaipur", Pincode: "302017", Phone: "0141-4567890"},
		{ID: "branch-004", Name: "Vaishali Nagar Branch", Code: "VNB", City: "Jaipur", Pincode: "302021", Phone: "0141-5678901"},
	}
	for i, b := range branches {
		b.IsActive = true
		b.CreatedAt, b.UpdatedAt = stamp(i), stamp(i)
		if err := s.Branches.Create(ctx, b); err != nil {
			return err
		}
	}

	categories := []models.InventoryCategory{
		{ID: "cat-001", Name: "Lab Reagents", Code: "LAB-REG", Color: "#3b82f6"},
		{ID: "cat-002", Name: "Sample Collection", Code: "SAM-COL", Color: "#22c55e"},
		{ID: "cat-003", Name: "Medical Consumables", Code: "MED-CON", Color: "#f59e0b"},
		{ID: "cat-004", Name: "Lab Equipment Parts", Code: "LAB-EQP", Color: "#8b5cf6"},
		{ID: "cat-005", Name: "Testing Kits", Code: "TST-KIT", Color: "#ec4899"},
		{ID: "cat-006", Name: "Safety Equipment", Code: "SAF-EQP", Color: "#ef4444"},
		{ID: "cat-007", Name: "Office Supplies", Code: "OFF-SUP", Color: "#6b7280"},
	}
	for i, c := range categories {
		c.IsActive = true
		c.CreatedAt, c.UpdatedAt = stamp(i), stamp(i)
		if err := s.Categories.Create(ctx, c); err != nil {
			return err
		}
	}

	suppliers := []models.Supplier{
		{ID: "sup-001", Name: "BioMed Supplies Pvt Ltd", Code: "BMS", Phone: "011-45678901", City: "Delhi"},
		{ID: "sup-002", Name: "DiagChem India", Code: "DCI", Phone: "0120-4567890", City: "Noida"},
		{ID: "sup-003", Name: "MedEquip Solutions", Code: "MES", Phone: "022-56789012", City: "Mumbai"},
		{ID: "sup-004", Name: "SafeGuard Medical", Code: "SGM", Phone: "0141-6789012", City: "Jaipur"},
	}
	for i, sp := range suppliers {
		sp.IsActive = true
		sp.CreatedAt, sp.UpdatedAt = stamp(i), stamp(i)
		if err := s.Suppliers.Create(ctx, sp); err != nil {
			return err
		}
	}

	items := []models.InventoryItem{
		{ID: "inv-001", Code: "REG-CBC-001", Name: "CBC Reagent Kit", CategoryID: "cat-001", BranchID: "branch-001", SupplierID: "sup-001", UnitType: models.UnitKit, QuantityInHand: 45, ReorderPoint: 20, ReorderQuantity: 50, MinQuantity: 10, MaxQuantity: 100, CostPrice: 3500, StorageLocation: "Cold Storage Room"},
		{ID: "inv-002", Code: "REG-LFT-001", Name: "Liver Function Test Reagent", CategoryID: "cat-001", BranchID: "branch-001", SupplierID: "sup-002", UnitType: models.UnitKit, QuantityInHand: 12, ReorderPoint: 15, ReorderQuantity: 30, MinQuantity: 5, MaxQuantity: 60, CostPrice: 2800},
		{ID: "inv-003", Code: "REG-KFT-001", Name: "Kidney Function Test Reagent", CategoryID: "cat-001", BranchID: "branch-002", SupplierID: "sup-002", UnitType: models.UnitKit, QuantityInHand: 25, ReorderPoint: 15, ReorderQuantity: 30, MinQuantity: 5, MaxQuantity: 60, CostPrice: 2200},
		{ID: "inv-004", Code: "SAM-EDTA-001", Name: "EDTA Vacutainer Tubes", CategoryID: "cat-002", BranchID: "branch-001", SupplierID: "sup-001", UnitType: models.UnitBox, QuantityInHand: 85, ReorderPoint: 50, ReorderQuantity: 100, MinQuantity: 25, MaxQuantity: 200, CostPrice: 450},
		{ID: "inv-005", Code: "SAM-SST-001", Name: "Serum Separator Tubes", CategoryID: "cat-002", BranchID: "branch-002", SupplierID: "sup-001", UnitType: models.UnitBox, QuantityInHand: 35, ReorderPoint: 40, ReorderQuantity: 80, MinQuantity: 20, MaxQuantity: 150, CostPrice: 520},
		{ID: "inv-006", Code: "SAM-SYR-001", Name: "Disposable Syringes 5ml", CategoryID: "cat-002", BranchID: "branch-003", SupplierID: "sup-004", UnitType: models.UnitBox, QuantityInHand: 120, ReorderPoint: 50, ReorderQuantity: 100, MinQuantity: 25, MaxQuantity: 250, CostPrice: 280},
		{ID: "inv-007", Code: "CON-GLV-001", Name: "Nitrile Examination Gloves", CategoryID: "cat-003", BranchID: "branch-001", SupplierID: "sup-004", UnitType: models.UnitBox, QuantityInHand: 8, ReorderPoint: 20, ReorderQuantity: 50, MinQuantity: 10, MaxQuantity: 100, CostPrice: 380},
		{ID: "inv-008", Code: "CON-MSK-001", Name: "3-Ply Surgical Masks", CategoryID: "cat-003", BranchID: "branch-004", SupplierID: "sup-004", UnitType: models.UnitBox, QuantityInHand: 45, ReorderPoint: 30, ReorderQuantity: 60, MinQuantity: 15, MaxQuantity: 150, CostPrice: 150},
		{ID: "inv-009", Code: "CON-CTS-001", Name: "Cotton Swabs Sterile", CategoryID: "cat-003", BranchID: "branch-001", SupplierID: "sup-001", UnitType: models.UnitPack, QuantityInHand: 200, ReorderPoint: 100, ReorderQuantity: 200, MinQuantity: 50, MaxQuantity: 500, CostPrice: 85},
		{ID: "inv-010", Code: "KIT-COVID-001", Name: "COVID-19 Rapid Antigen Test Kit", CategoryID: "cat-005", BranchID: "branch-001", SupplierID: "sup-002", UnitType: models.UnitKit, QuantityInHand: 0, ReorderPoint: 100, ReorderQuantity: 200, MinQuantity: 50, MaxQuantity: 400, CostPrice: 120},
	}

	// opening stock goes through the ledger like every other quantity change
	return s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		for i, item := range items {
			item.Currency = "INR"
			item.Status = models.ItemStatusActive
			item.CreatedAt, item.UpdatedAt = stamp(i), stamp(i)
			if err := s.Items.Create(ctx, item); err != nil {
				return err
			}
			if item.QuantityInHand == 0 {
				continue
			}
			if err := s.Ledger.Append(ctx, models.StockTransaction{
				ID:             fmt.Sprintf("txn-%s-opening", item.ID),
				ItemID:         item.ID,
				ItemCode:       item.Code,
				ItemName:       item.Name,
				Type:           models.TransactionPurchase,
				Quantity:       item.QuantityInHand,
				QuantityBefore: 0,
				QuantityAfter:  item.QuantityInHand,
				PerformedBy:    "system",
				Reason:         "Opening stock",
				CreatedAt:      item.CreatedAt,
			}); err != nil {
				return err
			}
		}
		utils.Logger.Info().Int("items", len(items)).Msg("inventory seeded")
		return nil
	})
}

// InitializeAdminAccount creates the default super admin when no account exists
func InitializeAdminAccount(ctx context.Context, s *Stores) error {
	count, err := s.AdminUsers.Count(ctx)
	if err != nil {
		return fmt.Errorf("count admin users: %w", err)
	}
	if count > 0 {
		utils.Logger.Info().Msg("admin accounts exist, skipping default admin")
		return nil
	}

	now := time.Now()
	admin := models.AdminUser{
		ID:           "admin-001",
		Username:     DefaultAdminUsername,
		Email:        "admin@ektajanch.in",
		FullName:     "System Administrator",
		PasswordHash: utils.HashPassword(DefaultAdminPassword),
		Roles:        []models.AdminRole{models.RoleSuperAdmin},
		Status:       models.AdminUserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.AdminUsers.Create(ctx, admin); err != nil {
		return fmt.Errorf("create default admin: %w", err)
	}

	utils.Logger.Warn().Str("username", DefaultAdminUsername).Msg("default super admin created, change its password")
	return nil
}
