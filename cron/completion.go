package cron

import (
	"context"
	"time"

	bookingRepo "rentora/database/repository/booking"
	"rentora/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartCompletionWorker schedules the daily sweep that marks confirmed
// bookings as completed once their check-out has passed. Returns the cron
// runner so the caller can stop it on shutdown.
func StartCompletionWorker(repo bookingRepo.BookingRepository) *cron.Cron {
	logger := utils.GetLogger()

	c := cron.New()
	// Shortly after midnight, when check-outs for the day roll over.
	if _, err := c.AddFunc("15 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		completed, err := repo.CompleteDeparted(ctx, time.Now())
		if err != nil {
			logger.Error("completion sweep failed", zap.Error(err))
			return
		}
		if completed > 0 {
			logger.Info("marked departed bookings completed", zap.Int64("count", completed))
		}
	}); err != nil {
		logger.Error("failed to schedule completion sweep", zap.Error(err))
		return c
	}

	c.Start()
	logger.Info("booking completion worker started")
	return c
}
