package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"
)

// Wizard step titles
const (
	StepTitleMethod            = "Booking Type"
	StepTitlePatient           = "Patient Details"
	StepTitleSelection         = "Select Tests"
	StepTitleCollectionDetails = "Collection Details"
	StepTitleLabVisit          = "Lab Visit"
	StepTitlePayment           = "Payment"
	StepTitleOTP               = "Verify OTP"

	FirstStep = 1
	LastStep  = 6
	OTPLength = 6
)

// HomeCollectionSlots time windows offered for home sample collection
var HomeCollectionSlots = []string{
	"06:00 AM - 08:00 AM",
	"08:00 AM - 10:00 AM",
	"10:00 AM - 12:00 PM",
	"04:00 PM - 06:00 PM",
}

const (
	availableDateCount = 14
	availableDateScan  = 21
	dateLayout         = "2006-01-02"
)

var otpPattern = regexp.MustCompile(`^\d{6}$`)

// CatalogSnapshot reference data the step validators check selections against
type CatalogSnapshot struct {
	Tests     map[string]models.Test
	Packages  map[string]models.HealthPackage
	Locations map[string]models.LabLocation
	Slots     []models.TimeSlot
}

// StepsFor the progress indicator for a method. Step 4 is labelled for
// the lab visit until a method is chosen.
func StepsFor(method models.BookingMethod) []models.WizardStep {
	fourth := StepTitleLabVisit
	if method == models.BookingMethodHomeCollection {
		fourth = StepTitleCollectionDetails
	}
	return []models.WizardStep{
		{ID: 1, Title: StepTitleMethod},
		{ID: 2, Title: StepTitlePatient},
		{ID: 3, Title: StepTitleSelection},
		{ID: 4, Title: fourth},
		{ID: 5, Title: StepTitlePayment},
		{ID: 6, Title: StepTitleOTP},
	}
}

// AvailableDates bookable dates after now: up to 14 days, Sundays skipped,
// looking no further than three weeks ahead.
func AvailableDates(now time.Time) []string {
	dates := make([]string, 0, availableDateCount)
	for i := 1; i <= availableDateScan && len(dates) < availableDateCount; i++ {
		day := now.AddDate(0, 0, i)
		if day.Weekday() == time.Sunday {
			continue
		}
		dates = append(dates, day.Format(dateLayout))
	}
	return dates
}

// ValidateMethodStep step 1
func ValidateMethodStep(method models.BookingMethod) utils.FieldErrors {
	if method == "" {
		return utils.FieldErrors{"method": "is required"}
	}
	if !method.Valid() {
		return utils.FieldErrors{"method": "must be one of: home-collection, lab-visit, slot-booking"}
	}
	return nil
}

// ValidatePatientStep step 2
func ValidatePatientStep(p *models.PatientDetails) utils.FieldErrors {
	if p == nil {
		return utils.FieldErrors{"patient": "is required"}
	}
	return validateStruct(p)
}

// ValidateSelectionStep step 3: at least one test or package, every id
// referencing an active catalog entry
func ValidateSelectionStep(tests, packages []string, catalog *CatalogSnapshot) utils.FieldErrors {
	if len(tests) == 0 && len(packages) == 0 {
		return utils.FieldErrors{"selectedTests": "select at least one test or package"}
	}

	fields := utils.FieldErrors{}
	for _, id := range tests {
		if t, ok := catalog.Tests[id]; !ok || !t.IsActive {
			fields.Add("selectedTests", "unknown test "+id)
		}
	}
	for _, id := range packages {
		if p, ok := catalog.Packages[id]; !ok || !p.IsActive {
			fields.Add("selectedPackages", "unknown package "+id)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// ValidateHomeCollectionStep step 4 for home collection
func ValidateHomeCollectionStep(h *models.HomeCollectionDetails, dates []string) utils.FieldErrors {
	if h == nil {
		return utils.FieldErrors{"homeCollection": "is required"}
	}
	fields := validateStruct(h)
	if h.PreferredDate != "" && !contains(dates, h.PreferredDate) {
		fields = merge(fields, utils.FieldErrors{"preferredDate": "is not an available date"})
	}
	if h.PreferredTime != "" && !contains(HomeCollectionSlots, h.PreferredTime) {
		fields = merge(fields, utils.FieldErrors{"preferredTime": "is not an offered time slot"})
	}
	return fields
}

// ValidateLabVisitStep step 4 for lab visits and slot bookings. The slot may
// be given by id or by its time label.
func ValidateLabVisitStep(l *models.LabVisitDetails, catalog *CatalogSnapshot) utils.FieldErrors {
	if l == nil {
		return utils.FieldErrors{"labVisit": "is required"}
	}
	fields := validateStruct(l)
	if l.LabLocation != "" {
		if loc, ok := catalog.Locations[l.LabLocation]; !ok || !loc.IsActive {
			fields = merge(fields, utils.FieldErrors{"labLocation": "is not an active lab location"})
		}
	}
	if l.PreferredDate != "" {
		if _, err := time.Parse(dateLayout, l.PreferredDate); err != nil {
			fields = merge(fields, utils.FieldErrors{"preferredDate": "must be a date in YYYY-MM-DD format"})
		}
	}
	if l.PreferredTime != "" {
		slot, ok := findSlot(catalog.Slots, l.PreferredTime)
		switch {
		case !ok:
			fields = merge(fields, utils.FieldErrors{"preferredTime": "is not a known time slot"})
		case !slot.Available:
			fields = merge(fields, utils.FieldErrors{"preferredTime": "slot is not available"})
		}
	}
	return fields
}

// ValidatePaymentStep step 5; returns the details with the coupon upper-cased
func ValidatePaymentStep(p *models.PaymentDetails) (*models.PaymentDetails, utils.FieldErrors) {
	if p == nil {
		return nil, utils.FieldErrors{"payment": "is required"}
	}

	fields := utils.FieldErrors{}
	switch {
	case p.Mode == "":
		fields.Add("paymentMode", "is required")
	case !p.Mode.Valid():
		fields.Add("paymentMode", "must be one of: UPI, Card, NetBanking, Cash, Pay Later")
	}
	if !p.AgreeTerms {
		fields.Add("agreeTerms", "must be accepted")
	}
	if len(fields) > 0 {
		return nil, fields
	}

	out := *p
	out.CouponCode = strings.ToUpper(strings.TrimSpace(p.CouponCode))
	return &out, nil
}

// ValidateOTPCode step 6
func ValidateOTPCode(code string) utils.FieldErrors {
	if !otpPattern.MatchString(code) {
		return utils.FieldErrors{"otp": "Please enter complete 6-digit OTP"}
	}
	return nil
}

func findSlot(slots []models.TimeSlot, ref string) (models.TimeSlot, bool) {
	for _, s := range slots {
		if s.ID == ref || s.Time == ref {
			return s, true
		}
	}
	return models.TimeSlot{}, false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// dedupe keeps the first occurrence of each id
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func trimPatient(p models.PatientDetails) models.PatientDetails {
	p.FullName = strings.TrimSpace(p.FullName)
	p.Mobile = strings.TrimSpace(p.Mobile)
	p.Email = strings.TrimSpace(p.Email)
	p.AlternateContact = strings.TrimSpace(p.AlternateContact)
	p.ReferralCode = strings.TrimSpace(p.ReferralCode)
	return p
}
