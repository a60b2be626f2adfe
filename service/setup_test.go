package service

import (
	"context"
	"testing"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/repository"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/stretchr/testify/require"
)

// a Tuesday, so the first bookable date is the next day
var testNow = time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)

func fixedClock() time.Time { return testNow }

// newTestServices seeded in-memory services with every clock pinned to testNow
func newTestServices(t *testing.T, otpCooldown time.Duration) (*Services, *repository.Stores) {
	t.Helper()
	stores := repository.NewMemoryStores(0)
	return seededServices(t, stores, otpCooldown), stores
}

// newSlowServices like newTestServices, but every store call takes latency,
// which widens the window between a read and the write that follows it
func newSlowServices(t *testing.T, latency time.Duration) *Services {
	t.Helper()
	return seededServices(t, repository.NewMemoryStores(latency), time.Second)
}

func seededServices(t *testing.T, stores *repository.Stores, otpCooldown time.Duration) *Services {
	t.Helper()
	require.NoError(t, repository.SeedData(context.Background(), stores))

	svc := NewServices(stores, 30*time.Minute, otpCooldown)
	svc.Booking.now = fixedClock
	svc.Orders.now = fixedClock
	svc.Inventory.now = fixedClock
	svc.Reorders.now = fixedClock
	svc.Alerts.now = fixedClock
	svc.Branches.now = fixedClock
	svc.Categories.now = fixedClock
	svc.AdminUsers.now = fixedClock
	svc.Auth.now = fixedClock
	svc.Finance.now = fixedClock
	return svc
}

func requireApiError(t *testing.T, err error, code string) *utils.ApiError {
	t.Helper()
	require.Error(t, err)
	var apiErr *utils.ApiError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, code, apiErr.ErrorCode, apiErr.Error())
	return apiErr
}
