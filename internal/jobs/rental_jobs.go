package jobs

import (
	"context"

	"library-rental-backend/internal/logger"
)

// MarkOverdueRentals flips RENTED rentals past their due date to OVERDUE
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		ctx := context.Background()
		now := jr.now()

		count, err := jr.services.Overdue.Sweep(ctx, now)
		if err != nil {
			logger.Error("Failed to mark overdue rentals", "error", err, "marked_before_failure", count)
			return
		}
		logger.Info("Marked rentals as overdue", "count", count, "as_of", now)
	})
}
