package service

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// walkToOTP drives a fresh home collection session up to the OTP step
func walkToOTP(t *testing.T, svc *Services) *models.BookingState {
	t.Helper()
	ctx := context.Background()

	state, err := svc.Booking.Start(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, state.CurrentStep)
	id := state.SessionID

	patient := models.PatientDetails{FullName: "Asha Rao", Mobile: "9876543210", Age: 29, Gender: models.GenderFemale}
	inputs := []models.StepInput{
		{Method: models.BookingMethodHomeCollection},
		{Patient: &patient},
		{Tests: []string{"test-1"}, Packages: []string{"pkg-007"}},
		{HomeCollection: &models.HomeCollectionDetails{
			Address:       "12 MG Road",
			City:          "Jaipur",
			Pincode:       "302001",
			PreferredDate: AvailableDates(testNow)[0],
			PreferredTime: HomeCollectionSlots[1],
		}},
		{Payment: &models.PaymentDetails{Mode: models.PaymentModeUPI, AgreeTerms: true}},
	}
	for i, in := range inputs {
		state, err = svc.Booking.Advance(ctx, id, in)
		require.NoError(t, err, "step %d", i+1)
		require.Equal(t, i+2, state.CurrentStep)
	}
	return state
}

func TestBookingEndToEndHomeCollection(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, 30*time.Second)

	state := walkToOTP(t, svc)
	id := state.SessionID

	assert.Equal(t, StepTitleCollectionDetails, state.Steps[3].Title)
	assert.Equal(t, int64(1299), state.Quote.DisplayGrandTotal)
	require.NotNil(t, state.OTP)
	assert.False(t, state.OTP.CanResend)
	assert.Equal(t, make([]string, OTPLength), state.OTP.Digits)

	for i, d := range "123456" {
		state, err := svc.Booking.EnterDigit(ctx, id, i, string(d))
		require.NoError(t, err)
		if i < OTPLength-1 {
			assert.Equal(t, i+1, state.OTP.Focus)
		}
	}

	state, err := svc.Booking.VerifyOTP(ctx, id, "")
	require.NoError(t, err)
	require.NotNil(t, state.Confirmation)
	assert.Equal(t, int64(1299), state.Confirmation.Total)
	assert.Equal(t, "Home Collection", state.Confirmation.MethodBadge)
	assert.Equal(t, "ORD-2026-0001", state.Confirmation.OrderNumber)

	orders, err := svc.Orders.List(ctx, models.OrderFilters{})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	order := orders[0]
	assert.Equal(t, state.Confirmation.BookingID, order.BookingID)
	assert.Equal(t, models.OrderSourceHomeCollect, order.Source)
	assert.Equal(t, 1299.0, order.TotalAmount)
	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)
	assert.Equal(t, "Asha Rao", order.Patient.Name)
	require.NotNil(t, order.HomeCollection)
	assert.Equal(t, "302001", order.HomeCollection.Pincode)
	assert.Len(t, order.Tests, 1)
	assert.Len(t, order.Packages, 1)

	// a confirmed session is read-only
	_, err = svc.Booking.Retreat(ctx, id)
	apiErr := requireApiError(t, err, utils.CodeBadRequest)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestBookingRejectedStepKeepsSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, time.Second)

	state, err := svc.Booking.Start(ctx)
	require.NoError(t, err)

	_, err = svc.Booking.Advance(ctx, state.SessionID, models.StepInput{})
	apiErr := requireApiError(t, err, utils.CodeValidationFailed)
	assert.Contains(t, apiErr.Fields, "method")

	again, err := svc.Booking.State(ctx, state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, again.CurrentStep)
	assert.Empty(t, again.Draft.Method)
}

func TestBookingOTPOnlyOnLastStep(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, time.Second)

	state, err := svc.Booking.Start(ctx)
	require.NoError(t, err)

	_, err = svc.Booking.EnterDigit(ctx, state.SessionID, 0, "1")
	requireApiError(t, err, utils.CodeBadRequest)
	_, err = svc.Booking.VerifyOTP(ctx, state.SessionID, "123456")
	requireApiError(t, err, utils.CodeBadRequest)
}

func TestBookingVerifyNeedsSixDigits(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, time.Second)
	state := walkToOTP(t, svc)

	_, err := svc.Booking.Paste(ctx, state.SessionID, "123")
	require.NoError(t, err)

	_, err = svc.Booking.VerifyOTP(ctx, state.SessionID, "")
	apiErr := requireApiError(t, err, utils.CodeValidationFailed)
	assert.Equal(t, "Please enter complete 6-digit OTP", apiErr.Fields["otp"])

	pasted, err := svc.Booking.Paste(ctx, state.SessionID, "987654")
	require.NoError(t, err)
	assert.True(t, pasted.OTP.Complete)

	done, err := svc.Booking.VerifyOTP(ctx, state.SessionID, "")
	require.NoError(t, err)
	assert.NotNil(t, done.Confirmation)
}

func TestBookingResendRespectsCooldown(t *testing.T) {
	ctx := context.Background()

	svc, _ := newTestServices(t, 30*time.Second)
	state := walkToOTP(t, svc)
	require.Positive(t, state.OTP.ResendIn)
	assert.LessOrEqual(t, state.OTP.ResendIn, 30)

	_, err := svc.Booking.ResendOTP(ctx, state.SessionID)
	apiErr := requireApiError(t, err, utils.CodeTooManyRequests)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)

	svc, _ = newTestServices(t, 0)
	state = walkToOTP(t, svc)
	assert.True(t, state.OTP.CanResend)

	_, err = svc.Booking.Paste(ctx, state.SessionID, "1234")
	require.NoError(t, err)
	resent, err := svc.Booking.ResendOTP(ctx, state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "", NewOTPInput(resent.OTP.Digits, 0).Code())
	assert.Equal(t, 0, resent.OTP.Focus)
	assert.Equal(t, 1, resent.OTP.ResendsSoFar)
}

func TestBookingRetreatFromOTPKeepsDraft(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, time.Second)
	state := walkToOTP(t, svc)

	back, err := svc.Booking.Retreat(ctx, state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 5, back.CurrentStep)
	assert.Nil(t, back.OTP)
	require.NotNil(t, back.Draft.Payment)
	assert.Equal(t, models.PaymentModeUPI, back.Draft.Payment.Mode)
	assert.Equal(t, []string{"test-1"}, back.Draft.Tests)
}

func TestBookingDiscard(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, time.Second)

	state, err := svc.Booking.Start(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.Booking.Discard(ctx, state.SessionID))

	_, err = svc.Booking.State(ctx, state.SessionID)
	requireApiError(t, err, utils.CodeResourceNotFound)
	requireApiError(t, svc.Booking.Discard(ctx, state.SessionID), utils.CodeResourceNotFound)
}

func TestBookingOrderNumbersIncrease(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, time.Second)

	for i := 1; i <= 3; i++ {
		state := walkToOTP(t, svc)
		done, err := svc.Booking.VerifyOTP(ctx, state.SessionID, "123456")
		require.NoError(t, err)
		assert.Equal(t, "ORD-2026-000"+strconv.Itoa(i), done.Confirmation.OrderNumber)
	}
}
