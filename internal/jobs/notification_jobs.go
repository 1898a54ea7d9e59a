package jobs

import (
	"context"

	"library-rental-backend/internal/logger"
)

// SendOverdueReminders emails borrowers holding OVERDUE rentals
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		sent, err := jr.services.Reminder.SendOverdueReminders(context.Background())
		if err != nil {
			logger.Error("Failed to send overdue reminders", "error", err)
			return
		}
		logger.Info("Sent overdue reminders", "count", sent)
	})
}
