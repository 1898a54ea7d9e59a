package service

import (
	"context"
	"fmt"

	"library-rental-backend/internal/domain"
	"library-rental-backend/internal/logger"
	"library-rental-backend/internal/repository"
)

type reminderService struct {
	store    repository.Store
	emailSvc EmailService
}

func NewReminderService(store repository.Store, emailSvc EmailService) ReminderService {
	return &reminderService{store: store, emailSvc: emailSvc}
}

// SendOverdueReminders emails every borrower holding an OVERDUE rental.
// Delivery failures are logged and skipped; only listing failures abort the run.
func (s *reminderService) SendOverdueReminders(ctx context.Context) (int, error) {
	var overdue []domain.Rental
	filter := domain.RentalFilter{Status: domain.RentalStatusOverdue, Page: 1, PageSize: domain.MaxPageSize}
	for {
		page, total, err := s.store.Rentals().List(ctx, filter)
		if err != nil {
			return 0, fmt.Errorf("failed to list overdue rentals: %w", err)
		}
		overdue = append(overdue, page...)
		if len(page) == 0 || int32(len(overdue)) >= total {
			break
		}
		filter.Page++
	}

	sent := 0
	for i := range overdue {
		rental := &overdue[i]
		borrower, err := s.store.Users().GetByID(ctx, rental.BorrowerID)
		if err != nil {
			logger.WarnContext(ctx, "Skipping reminder, borrower lookup failed", "rental_id", rental.ID, "error", err)
			continue
		}
		book, err := s.store.Books().GetByID(ctx, rental.BookID)
		if err != nil {
			logger.WarnContext(ctx, "Skipping reminder, book lookup failed", "rental_id", rental.ID, "error", err)
			continue
		}
		if err := s.emailSvc.SendOverdueReminder(ctx, borrower, book, rental); err != nil {
			logger.ErrorContext(ctx, "Failed to send overdue reminder", "rental_id", rental.ID, "email", borrower.Email, "error", err)
			continue
		}
		sent++
	}

	logger.InfoContext(ctx, "Overdue reminders sent", "sent", sent, "overdue", len(overdue))
	return sent, nil
}
