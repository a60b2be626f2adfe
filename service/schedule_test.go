package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextRun(t *testing.T) {
	morning := time.Date(2026, 3, 10, 5, 59, 0, 0, time.Local)
	assert.Equal(t, time.Date(2026, 3, 10, 6, 0, 0, 0, time.Local), nextRun(morning, 6, 0, 0))

	exact := time.Date(2026, 3, 10, 6, 0, 0, 0, time.Local)
	assert.Equal(t, time.Date(2026, 3, 11, 6, 0, 0, 0, time.Local), nextRun(exact, 6, 0, 0))

	assert.Equal(t, time.Date(2026, 3, 11, 6, 0, 0, 0, time.Local), nextRun(testNow, 6, 0, 0))
}
