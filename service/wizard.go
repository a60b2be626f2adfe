package service

import (
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"
)

// Wizard step machine over one booking session. Advance validates the
// current step before merging and moving on; Retreat never validates and
// never drops data.
type Wizard struct {
	session *models.BookingSession
}

// StepContext reference data a step needs to validate against
type StepContext struct {
	Catalog        *CatalogSnapshot
	AvailableDates []string
}

func NewWizard(session *models.BookingSession) *Wizard {
	if session.Step < FirstStep || session.Step > LastStep {
		session.Step = FirstStep
	}
	return &Wizard{session: session}
}

func (w *Wizard) Step() int { return w.session.Step }

func (w *Wizard) Draft() models.BookingDraft { return w.session.Draft }

func (w *Wizard) Steps() []models.WizardStep { return StepsFor(w.session.Draft.Method) }

// Advance validates input against the current step. On success the values
// are merged into the draft and the step moves forward by one; on failure
// nothing changes. The last step is completed by OTP verification, so
// Advance there accepts nothing and stays put.
func (w *Wizard) Advance(input models.StepInput, sc StepContext) utils.FieldErrors {
	draft := &w.session.Draft

	switch w.session.Step {
	case 1:
		if fields := ValidateMethodStep(input.Method); fields != nil {
			return fields
		}
		w.setMethod(input.Method)

	case 2:
		if input.Patient == nil {
			return utils.FieldErrors{"patient": "is required"}
		}
		patient := trimPatient(*input.Patient)
		if fields := ValidatePatientStep(&patient); len(fields) > 0 {
			return fields
		}
		draft.Patient = &patient

	case 3:
		tests, packages := dedupe(input.Tests), dedupe(input.Packages)
		if fields := ValidateSelectionStep(tests, packages, sc.Catalog); fields != nil {
			return fields
		}
		draft.Tests, draft.Packages = tests, packages

	case 4:
		if draft.Method == models.BookingMethodHomeCollection {
			if fields := ValidateHomeCollectionStep(input.HomeCollection, sc.AvailableDates); len(fields) > 0 {
				return fields
			}
			h := *input.HomeCollection
			draft.HomeCollection, draft.LabVisit = &h, nil
		} else {
			if fields := ValidateLabVisitStep(input.LabVisit, sc.Catalog); len(fields) > 0 {
				return fields
			}
			l := *input.LabVisit
			draft.LabVisit, draft.HomeCollection = &l, nil
		}

	case 5:
		payment, fields := ValidatePaymentStep(input.Payment)
		if fields != nil {
			return fields
		}
		draft.Payment = payment

	case LastStep:
		return nil
	}

	w.session.Step++
	return nil
}

// Retreat moves back one step, a no-op on the first
func (w *Wizard) Retreat() {
	if w.session.Step > FirstStep {
		w.session.Step--
	}
}

// setMethod records the method and drops the step 4 block belonging to the
// other kind of visit, so at most one of the two is ever set
func (w *Wizard) setMethod(method models.BookingMethod) {
	draft := &w.session.Draft
	draft.Method = method
	if method == models.BookingMethodHomeCollection {
		draft.LabVisit = nil
	} else {
		draft.HomeCollection = nil
	}
}
