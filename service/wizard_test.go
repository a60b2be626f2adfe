package service

import (
	"testing"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *CatalogSnapshot {
	return &CatalogSnapshot{
		Tests: map[string]models.Test{
			"test-1": {ID: "test-1", Price: models.PriceInfo{Final: 399}, IsActive: true},
			"test-2": {ID: "test-2", Price: models.PriceInfo{Final: 599}, IsActive: true},
			"test-9": {ID: "test-9", Price: models.PriceInfo{Final: 100}, IsActive: false},
		},
		Packages: map[string]models.HealthPackage{
			"pkg-001": {ID: "pkg-001", Price: 999, Discount: 20, IsActive: true},
			"pkg-007": {ID: "pkg-007", Price: 1000, Discount: 10, IsActive: true},
		},
		Locations: map[string]models.LabLocation{
			"lab-001": {ID: "lab-001", IsActive: true},
			"lab-009": {ID: "lab-009", IsActive: false},
		},
		Slots: []models.TimeSlot{
			{ID: "slot-1", Time: "06:00 AM - 07:00 AM", Available: true},
			{ID: "slot-4", Time: "09:00 AM - 10:00 AM", Available: false},
		},
	}
}

func validPatient() models.PatientDetails {
	return models.PatientDetails{FullName: "Asha Rao", Mobile: "9876543210", Age: 29, Gender: models.GenderFemale}
}

func stepContext() StepContext {
	return StepContext{Catalog: testCatalog(), AvailableDates: AvailableDates(testNow)}
}

func homeCollection() *models.HomeCollectionDetails {
	return &models.HomeCollectionDetails{
		Address:       "12 MG Road",
		City:          "Jaipur",
		Pincode:       "302001",
		PreferredDate: "2026-03-11",
		PreferredTime: HomeCollectionSlots[0],
	}
}

func TestValidatePatientStepAcceptsValidInput(t *testing.T) {
	for _, mutate := range []func(*models.PatientDetails){
		func(p *models.PatientDetails) {},
		func(p *models.PatientDetails) { p.Age = 1 },
		func(p *models.PatientDetails) { p.Age = 120 },
		func(p *models.PatientDetails) { p.Gender = models.GenderOther },
		func(p *models.PatientDetails) { p.Email = "asha@example.com" },
		func(p *models.PatientDetails) { p.AlternateContact = "9123456780" },
	} {
		p := validPatient()
		mutate(&p)
		assert.Empty(t, ValidatePatientStep(&p), "%+v", p)
	}
}

func TestValidatePatientStepFlagsOnlyTheBrokenField(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.PatientDetails)
		field  string
	}{
		{"missing name", func(p *models.PatientDetails) { p.FullName = "" }, "fullName"},
		{"short mobile", func(p *models.PatientDetails) { p.Mobile = "98765" }, "mobile"},
		{"long mobile", func(p *models.PatientDetails) { p.Mobile = "98765432101" }, "mobile"},
		{"letter in mobile", func(p *models.PatientDetails) { p.Mobile = "98765432a0" }, "mobile"},
		{"age zero", func(p *models.PatientDetails) { p.Age = 0 }, "age"},
		{"age too high", func(p *models.PatientDetails) { p.Age = 121 }, "age"},
		{"unknown gender", func(p *models.PatientDetails) { p.Gender = "Unknown" }, "gender"},
		{"bad email", func(p *models.PatientDetails) { p.Email = "not-an-email" }, "email"},
		{"bad alternate contact", func(p *models.PatientDetails) { p.AlternateContact = "123" }, "alternateContact"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPatient()
			tc.mutate(&p)
			fields := ValidatePatientStep(&p)
			assert.Equal(t, []string{tc.field}, fields.Fields())
		})
	}
}

func TestWizardAdvanceOnlyMovesOnValidInput(t *testing.T) {
	session := &models.BookingSession{Step: FirstStep}
	w := NewWizard(session)
	sc := stepContext()

	fields := w.Advance(models.StepInput{Method: "drone-delivery"}, sc)
	assert.Contains(t, fields, "method")
	assert.Equal(t, 1, w.Step())

	require.Empty(t, w.Advance(models.StepInput{Method: models.BookingMethodHomeCollection}, sc))
	assert.Equal(t, 2, w.Step())

	bad := validPatient()
	bad.Mobile = "123"
	assert.Contains(t, w.Advance(models.StepInput{Patient: &bad}, sc), "mobile")
	assert.Equal(t, 2, w.Step())
	assert.Nil(t, w.Draft().Patient)

	good := validPatient()
	require.Empty(t, w.Advance(models.StepInput{Patient: &good}, sc))
	assert.Equal(t, 3, w.Step())

	assert.Contains(t, w.Advance(models.StepInput{}, sc), "selectedTests")
	assert.Contains(t, w.Advance(models.StepInput{Tests: []string{"test-9"}}, sc), "selectedTests")
	assert.Equal(t, 3, w.Step())

	require.Empty(t, w.Advance(models.StepInput{Tests: []string{"test-1", "test-1"}, Packages: []string{"pkg-007"}}, sc))
	assert.Equal(t, 4, w.Step())
	assert.Equal(t, []string{"test-1"}, w.Draft().Tests)

	sunday := homeCollection()
	sunday.PreferredDate = "2026-03-15"
	assert.Contains(t, w.Advance(models.StepInput{HomeCollection: sunday}, sc), "preferredDate")
	badPin := homeCollection()
	badPin.Pincode = "3020"
	assert.Contains(t, w.Advance(models.StepInput{HomeCollection: badPin}, sc), "pincode")
	assert.Equal(t, 4, w.Step())

	require.Empty(t, w.Advance(models.StepInput{HomeCollection: homeCollection()}, sc))
	assert.Equal(t, 5, w.Step())

	fields = w.Advance(models.StepInput{Payment: &models.PaymentDetails{Mode: models.PaymentModeUPI}}, sc)
	assert.Contains(t, fields, "agreeTerms")
	assert.Equal(t, 5, w.Step())

	require.Empty(t, w.Advance(models.StepInput{Payment: &models.PaymentDetails{Mode: models.PaymentModeUPI, AgreeTerms: true, CouponCode: " save10 "}}, sc))
	assert.Equal(t, LastStep, w.Step())
	assert.Equal(t, "SAVE10", w.Draft().Payment.CouponCode)

	assert.Empty(t, w.Advance(models.StepInput{}, sc))
	assert.Equal(t, LastStep, w.Step())
}

func TestWizardRetreatKeepsData(t *testing.T) {
	p := validPatient()
	session := &models.BookingSession{
		Step: 4,
		Draft: models.BookingDraft{
			Method:  models.BookingMethodLabVisit,
			Patient: &p,
			Tests:   []string{"test-1"},
		},
	}
	w := NewWizard(session)

	for want := 3; want >= 1; want-- {
		w.Retreat()
		assert.Equal(t, want, w.Step())
	}
	w.Retreat()
	assert.Equal(t, 1, w.Step())

	draft := w.Draft()
	assert.Equal(t, models.BookingMethodLabVisit, draft.Method)
	require.NotNil(t, draft.Patient)
	assert.Equal(t, "Asha Rao", draft.Patient.FullName)
	assert.Equal(t, []string{"test-1"}, draft.Tests)
}

func TestWizardMethodChangeDropsOtherVisitBlock(t *testing.T) {
	session := &models.BookingSession{
		Step: FirstStep,
		Draft: models.BookingDraft{
			Method:         models.BookingMethodHomeCollection,
			HomeCollection: homeCollection(),
		},
	}
	w := NewWizard(session)

	require.Empty(t, w.Advance(models.StepInput{Method: models.BookingMethodSlotBooking}, stepContext()))
	assert.Nil(t, w.Draft().HomeCollection)
	assert.Equal(t, models.BookingMethodSlotBooking, w.Draft().Method)
}

func TestStepsForLabelsStepFourByMethod(t *testing.T) {
	home := StepsFor(models.BookingMethodHomeCollection)
	require.Len(t, home, 6)
	assert.Equal(t, StepTitleCollectionDetails, home[3].Title)
	assert.Equal(t, 4, home[3].ID)

	for _, m := range []models.BookingMethod{models.BookingMethodLabVisit, models.BookingMethodSlotBooking, ""} {
		steps := StepsFor(m)
		require.Len(t, steps, 6)
		assert.Equal(t, StepTitleLabVisit, steps[3].Title, m)
	}
	assert.Equal(t, StepTitleOTP, home[5].Title)
}

func TestValidateLabVisitStep(t *testing.T) {
	catalog := testCatalog()
	ok := &models.LabVisitDetails{LabLocation: "lab-001", PreferredDate: "2026-03-12", PreferredTime: "slot-1"}
	assert.Empty(t, ValidateLabVisitStep(ok, catalog))

	byLabel := *ok
	byLabel.PreferredTime = "06:00 AM - 07:00 AM"
	assert.Empty(t, ValidateLabVisitStep(&byLabel, catalog))

	full := *ok
	full.PreferredTime = "slot-4"
	assert.Equal(t, []string{"preferredTime"}, ValidateLabVisitStep(&full, catalog).Fields())

	closed := *ok
	closed.LabLocation = "lab-009"
	assert.Equal(t, []string{"labLocation"}, ValidateLabVisitStep(&closed, catalog).Fields())

	badDate := *ok
	badDate.PreferredDate = "12/03/2026"
	assert.Equal(t, []string{"preferredDate"}, ValidateLabVisitStep(&badDate, catalog).Fields())
}

func TestAvailableDatesSkipsSundays(t *testing.T) {
	dates := AvailableDates(testNow)

	require.Len(t, dates, 14)
	assert.Equal(t, "2026-03-11", dates[0])
	assert.NotContains(t, dates, "2026-03-15")
	assert.NotContains(t, dates, "2026-03-22")
	assert.NotContains(t, dates, "2026-03-10")
	assert.Equal(t, "2026-03-26", dates[13])
}

func TestValidateOTPCode(t *testing.T) {
	assert.Empty(t, ValidateOTPCode("123456"))
	for _, code := range []string{"", "12345", "1234567", "12a456"} {
		assert.Contains(t, ValidateOTPCode(code), "otp", code)
	}
}
