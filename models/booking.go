package models

import "time"

// BookingMethod how the sample is collected
type BookingMethod string

const (
	BookingMethodHomeCollection BookingMethod = "home-collection"
	BookingMethodLabVisit       BookingMethod = "lab-visit"
	BookingMethodSlotBooking    BookingMethod = "slot-booking"
)

// Valid reports whether m is one of the three booking methods
func (m BookingMethod) Valid() bool {
	switch m {
	case BookingMethodHomeCollection, BookingMethodLabVisit, BookingMethodSlotBooking:
		return true
	}
	return false
}

// Badge display label shown on the confirmation screen
func (m BookingMethod) Badge() string {
	switch m {
	case BookingMethodHomeCollection:
		return "Home Collection"
	case BookingMethodLabVisit:
		return "Lab Visit"
	case BookingMethodSlotBooking:
		return "Slot Booking"
	}
	return ""
}

// Gender patient gender
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// PaymentMode how the booking is paid
type PaymentMode string

const (
	PaymentModeUPI        PaymentMode = "UPI"
	PaymentModeCard       PaymentMode = "Card"
	PaymentModeNetBanking PaymentMode = "NetBanking"
	PaymentModeCash       PaymentMode = "Cash"
	PaymentModePayLater   PaymentMode = "Pay Later"
)

// PaymentModes accepted at checkout
var PaymentModes = []PaymentMode{
	PaymentModeUPI,
	PaymentModeCard,
	PaymentModeNetBanking,
	PaymentModeCash,
	PaymentModePayLater,
}

// Valid reports whether m is an accepted payment mode
func (m PaymentMode) Valid() bool {
	for _, mode := range PaymentModes {
		if m == mode {
			return true
		}
	}
	return false
}

// PatientDetails step 2 data
type PatientDetails struct {
	FullName         string `json:"fullName" bson:"fullName" validate:"required"`
	Mobile           string `json:"mobile" bson:"mobile" validate:"required,digits=10"`
	Email            string `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Age              int    `json:"age" bson:"age" validate:"gte=1,lte=120"`
	Gender           Gender `json:"gender" bson:"gender" validate:"required,oneof=Male Female Other"`
	AlternateContact string `json:"alternateContact,omitempty" bson:"alternateContact,omitempty" validate:"omitempty,digits=10"`
	ReferralCode     string `json:"referralCode,omitempty" bson:"referralCode,omitempty"`
}

// HomeCollectionDetails step 4 data for home collection
type HomeCollectionDetails struct {
	Address       string `json:"address" bson:"address" validate:"required"`
	Landmark      string `json:"landmark,omitempty" bson:"landmark,omitempty"`
	City          string `json:"city" bson:"city" validate:"required"`
	Pincode       string `json:"pincode" bson:"pincode" validate:"required,digits=6"`
	PreferredDate string `json:"preferredDate" bson:"preferredDate" validate:"required"`
	PreferredTime string `json:"preferredTime" bson:"preferredTime" validate:"required"`
	Instructions  string `json:"instructions,omitempty" bson:"instructions,omitempty"`
}

// LabVisitDetails step 4 data for lab visits and slot bookings
type LabVisitDetails struct {
	LabLocation   string `json:"labLocation" bson:"labLocation" validate:"required"`
	PreferredDate string `json:"preferredDate" bson:"preferredDate" validate:"required"`
	PreferredTime string `json:"preferredTime" bson:"preferredTime" validate:"required"`
}

// PaymentDetails step 5 data
type PaymentDetails struct {
	Mode       PaymentMode `json:"paymentMode" bson:"paymentMode"`
	CouponCode string      `json:"couponCode,omitempty" bson:"couponCode,omitempty"`
	AgreeTerms bool        `json:"agreeTerms" bson:"agreeTerms"`
}

// BookingDraft booking accumulated across the wizard. Exactly one of
// HomeCollection and LabVisit is set once step 4 is done, chosen by Method.
type BookingDraft struct {
	Method         BookingMethod          `json:"method,omitempty"`
	Patient        *PatientDetails        `json:"patient,omitempty"`
	Tests          []string               `json:"tests"`
	Packages       []string               `json:"packages"`
	HomeCollection *HomeCollectionDetails `json:"homeCollection,omitempty"`
	LabVisit       *LabVisitDetails       `json:"labVisit,omitempty"`
	Payment        *PaymentDetails        `json:"payment,omitempty"`
}

// WizardStep entry of the progress indicator
type WizardStep struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// BookingConfirmation terminal screen data
type BookingConfirmation struct {
	BookingID   string        `json:"bookingId"`
	OrderNumber string        `json:"orderNumber"`
	Method      BookingMethod `json:"method"`
	MethodBadge string        `json:"methodBadge"`
	Total       int64         `json:"total"`
}

// BookingSession persisted wizard state of one booking in progress
type BookingSession struct {
	ID           string               `json:"id"`
	Step         int                  `json:"step"`
	Draft        BookingDraft         `json:"draft"`
	OTPDigits    []string             `json:"otpDigits"`
	OTPFocus     int                  `json:"otpFocus"`
	Resends      int                  `json:"resends"`
	Confirmation *BookingConfirmation `json:"confirmation,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	ExpiresAt    time.Time            `json:"expiresAt"`
}

// Clone deep copy, the wizard never shares slices or step blocks between snapshots
func (d BookingDraft) Clone() BookingDraft {
	out := d
	out.Tests = append([]string(nil), d.Tests...)
	out.Packages = append([]string(nil), d.Packages...)
	if d.Patient != nil {
		p := *d.Patient
		out.Patient = &p
	}
	if d.HomeCollection != nil {
		h := *d.HomeCollection
		out.HomeCollection = &h
	}
	if d.LabVisit != nil {
		l := *d.LabVisit
		out.LabVisit = &l
	}
	if d.Payment != nil {
		p := *d.Payment
		out.Payment = &p
	}
	return out
}

// Clone deep copy of the session
func (s BookingSession) Clone() BookingSession {
	out := s
	out.Draft = s.Draft.Clone()
	out.OTPDigits = append([]string(nil), s.OTPDigits...)
	if s.Confirmation != nil {
		c := *s.Confirmation
		out.Confirmation = &c
	}
	return out
}
