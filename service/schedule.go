package service

import (
	"context"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"
)

// nextRun first hour:min:sec strictly after now
func nextRun(now time.Time, hour, min, sec int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, sec, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// ScheduleDailyTaskAt runs task every day at hour:min:sec until ctx is done
func ScheduleDailyTaskAt(ctx context.Context, hour, min, sec int, task func(ctx context.Context)) {
	go func() {
		for {
			wait := time.Until(nextRun(time.Now(), hour, min, sec))
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				task(ctx)
			}
		}
	}()
}

// RefreshLowStockAlerts daily job rebuilding the alert list from current stock
func RefreshLowStockAlerts(alerts *AlertService) func(ctx context.Context) {
	log := utils.Component("scheduler")
	return func(ctx context.Context) {
		active, err := alerts.Refresh(ctx)
		if err != nil {
			log.Error().Err(err).Msg("low stock alert refresh failed")
			return
		}
		log.Info().Int("active", len(active)).Msg("low stock alerts refreshed")
	}
}
