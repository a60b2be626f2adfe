package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"sync"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/repository"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BookingResult answer of the booking backend
type BookingResult struct {
	Success     bool   `json:"success"`
	BookingID   string `json:"bookingId"`
	OrderNumber string `json:"orderNumber,omitempty"`
}

// BookingBackend verifies the OTP and records the booking
type BookingBackend interface {
	VerifyOTPAndCreateBooking(ctx context.Context, otp string, draft models.BookingDraft, quote models.PriceQuote) (*BookingResult, error)
}

const sessionLockStripes = 64

// BookingService drives booking wizard sessions
type BookingService struct {
	sessions  repository.SessionStore
	cooldowns repository.CooldownStore
	catalog   *CatalogService
	backend   BookingBackend

	ttl      time.Duration
	cooldown time.Duration
	now      Clock
	log      zerolog.Logger

	locks [sessionLockStripes]sync.Mutex
}

func NewBookingService(s *repository.Stores, catalog *CatalogService, backend BookingBackend, ttl, cooldown time.Duration) *BookingService {
	return &BookingService{
		sessions:  s.Sessions,
		cooldowns: s.Cooldowns,
		catalog:   catalog,
		backend:   backend,
		ttl:       ttl,
		cooldown:  cooldown,
		now:       time.Now,
		log:       utils.Component("booking"),
	}
}

// lock serialises work on one session; unrelated sessions rarely share a stripe
func (s *BookingService) lock(id string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	m := &s.locks[h.Sum32()%sessionLockStripes]
	m.Lock()
	return m.Unlock
}

// Start opens a new wizard at step 1
func (s *BookingService) Start(ctx context.Context) (*models.BookingState, error) {
	now := s.now()
	session := &models.BookingSession{
		ID:        uuid.NewString(),
		Step:      FirstStep,
		OTPDigits: make([]string, OTPLength),
		CreatedAt: now,
	}
	if err := s.sessions.Save(ctx, session, s.ttl); err != nil {
		return nil, fmt.Errorf("save booking session: %w", err)
	}
	s.log.Info().Str("session", session.ID).Msg("booking started")
	return s.state(ctx, session)
}

// State current snapshot of a session
func (s *BookingService) State(ctx context.Context, id string) (*models.BookingState, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.state(ctx, session)
}

// Advance validates the current step and moves forward. Entering the OTP
// step clears the cells and starts the resend countdown.
func (s *BookingService) Advance(ctx context.Context, id string, input models.StepInput) (*models.BookingState, error) {
	defer s.lock(id)()

	session, err := s.editable(ctx, id)
	if err != nil {
		return nil, err
	}

	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	from := session.Step
	wizard := NewWizard(session)
	if fields := wizard.Advance(input, StepContext{Catalog: catalog, AvailableDates: AvailableDates(s.now())}); len(fields) > 0 {
		s.log.Debug().Str("session", id).Int("step", from).Strs("fields", fields.Fields()).Msg("step rejected")
		return nil, utils.CreateValidationError(fields)
	}

	if from != LastStep && session.Step == LastStep {
		session.OTPDigits = make([]string, OTPLength)
		session.OTPFocus = 0
		if err := s.cooldowns.Start(ctx, id, s.cooldown); err != nil {
			return nil, fmt.Errorf("start otp cooldown: %w", err)
		}
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return s.stateFrom(ctx, session, catalog)
}

// Retreat moves back one step keeping everything entered
func (s *BookingService) Retreat(ctx context.Context, id string) (*models.BookingState, error) {
	defer s.lock(id)()

	session, err := s.editable(ctx, id)
	if err != nil {
		return nil, err
	}
	NewWizard(session).Retreat()
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return s.state(ctx, session)
}

// EnterDigit types value into one OTP cell
func (s *BookingService) EnterDigit(ctx context.Context, id string, index int, value string) (*models.BookingState, error) {
	return s.editOTP(ctx, id, func(o *OTPInput) bool { return o.SetDigit(index, value) })
}

// Backspace on one OTP cell
func (s *BookingService) Backspace(ctx context.Context, id string, index int) (*models.BookingState, error) {
	return s.editOTP(ctx, id, func(o *OTPInput) bool { return o.Backspace(index) })
}

// Paste fills the OTP cells from clipboard text
func (s *BookingService) Paste(ctx context.Context, id string, value string) (*models.BookingState, error) {
	return s.editOTP(ctx, id, func(o *OTPInput) bool { return o.Paste(value) })
}

// ResendOTP clears the cells and restarts the countdown. Rejected while the
// previous countdown is still running.
func (s *BookingService) ResendOTP(ctx context.Context, id string) (*models.BookingState, error) {
	defer s.lock(id)()

	session, err := s.atOTPStep(ctx, id)
	if err != nil {
		return nil, err
	}

	left, err := s.cooldowns.Remaining(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("read otp cooldown: %w", err)
	}
	if left > 0 {
		return nil, utils.CreateTooManyRequestsError(fmt.Sprintf("resend available in %d seconds", seconds(left)))
	}

	otp := NewOTPInput(session.OTPDigits, session.OTPFocus)
	otp.Clear()
	session.OTPDigits, session.OTPFocus = otp.Digits, otp.Focus
	session.Resends++

	if err := s.cooldowns.Start(ctx, id, s.cooldown); err != nil {
		return nil, fmt.Errorf("start otp cooldown: %w", err)
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	s.log.Info().Str("session", id).Int("resends", session.Resends).Msg("otp resent")
	return s.state(ctx, session)
}

// VerifyOTP completes the booking. An empty code uses the entered cells.
func (s *BookingService) VerifyOTP(ctx context.Context, id string, code string) (*models.BookingState, error) {
	defer s.lock(id)()

	session, err := s.atOTPStep(ctx, id)
	if err != nil {
		return nil, err
	}

	if code == "" {
		code = NewOTPInput(session.OTPDigits, session.OTPFocus).Code()
	}
	if fields := ValidateOTPCode(code); fields != nil {
		return nil, utils.CreateValidationError(fields)
	}

	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	quote := QuotePrice(session.Draft.Tests, session.Draft.Packages, catalog)

	result, err := s.backend.VerifyOTPAndCreateBooking(ctx, code, session.Draft.Clone(), quote)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, utils.CreateFieldError("otp", "Invalid OTP")
	}

	session.Confirmation = &models.BookingConfirmation{
		BookingID:   result.BookingID,
		OrderNumber: result.OrderNumber,
		Method:      session.Draft.Method,
		MethodBadge: session.Draft.Method.Badge(),
		Total:       quote.DisplayGrandTotal,
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("session", id).
		Str("bookingId", result.BookingID).
		Int64("total", quote.DisplayGrandTotal).
		Msg("booking confirmed")
	return s.stateFrom(ctx, session, catalog)
}

// Discard drops a session, starting over is a new Start
func (s *BookingService) Discard(ctx context.Context, id string) error {
	defer s.lock(id)()

	if err := s.sessions.Delete(ctx, id); err != nil {
		return lookupError(err, "booking session")
	}
	return nil
}

func (s *BookingService) editOTP(ctx context.Context, id string, edit func(*OTPInput) bool) (*models.BookingState, error) {
	defer s.lock(id)()

	session, err := s.atOTPStep(ctx, id)
	if err != nil {
		return nil, err
	}
	otp := NewOTPInput(session.OTPDigits, session.OTPFocus)
	if edit(otp) {
		session.OTPDigits, session.OTPFocus = otp.Digits, otp.Focus
		if err := s.save(ctx, session); err != nil {
			return nil, err
		}
	}
	return s.state(ctx, session)
}

func (s *BookingService) load(ctx context.Context, id string) (*models.BookingSession, error) {
	session, err := s.sessions.Load(ctx, id)
	if err != nil {
		return nil, lookupError(err, "booking session")
	}
	return session, nil
}

// editable a session that has not been confirmed yet
func (s *BookingService) editable(ctx context.Context, id string) (*models.BookingSession, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Confirmation != nil {
		return nil, utils.CreateBadRequestError("booking already confirmed, start a new booking")
	}
	return session, nil
}

func (s *BookingService) atOTPStep(ctx context.Context, id string) (*models.BookingSession, error) {
	session, err := s.editable(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Step != LastStep {
		return nil, utils.CreateBadRequestError("OTP is only accepted on the verification step")
	}
	return session, nil
}

func (s *BookingService) save(ctx context.Context, session *models.BookingSession) error {
	if err := s.sessions.Save(ctx, session, s.ttl); err != nil {
		return fmt.Errorf("save booking session: %w", err)
	}
	return nil
}

func (s *BookingService) state(ctx context.Context, session *models.BookingSession) (*models.BookingState, error) {
	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.stateFrom(ctx, session, catalog)
}

func (s *BookingService) stateFrom(ctx context.Context, session *models.BookingSession, catalog *CatalogSnapshot) (*models.BookingState, error) {
	state := &models.BookingState{
		SessionID:    session.ID,
		CurrentStep:  session.Step,
		Steps:        StepsFor(session.Draft.Method),
		Draft:        session.Draft.Clone(),
		Quote:        QuotePrice(session.Draft.Tests, session.Draft.Packages, catalog),
		Confirmation: session.Confirmation,
		ExpiresAt:    session.ExpiresAt,
	}
	if state.Draft.Tests == nil {
		state.Draft.Tests = []string{}
	}
	if state.Draft.Packages == nil {
		state.Draft.Packages = []string{}
	}

	if session.Step == LastStep {
		left, err := s.cooldowns.Remaining(ctx, session.ID)
		if err != nil && !errors.Is(err, context.Canceled) {
			s.log.Warn().Err(err).Str("session", session.ID).Msg("failed to read otp cooldown")
		}
		otp := NewOTPInput(session.OTPDigits, session.OTPFocus)
		state.OTP = &models.OTPState{
			Digits:       otp.Digits,
			Focus:        otp.Focus,
			Complete:     otp.Complete(),
			ResendIn:     seconds(left),
			CanResend:    left <= 0,
			ResendsSoFar: session.Resends,
		}
	}
	return state, nil
}

func seconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}
