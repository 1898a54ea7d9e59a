package service

import (
	"context"
	"time"

	"library-rental-backend/internal/domain"
)

// Clock supplies "now" to handlers and jobs; the engine itself only sees explicit timestamps.
type Clock func() time.Time

// UTCClock is the production clock.
func UTCClock() time.Time {
	return time.Now().UTC()
}

// RentalService coordinates inventory and rental state for the write operations.
type RentalService interface {
	CreateRental(ctx context.Context, bookID, borrowerID int32, now time.Time) (*domain.Rental, error)
	ReturnRental(ctx context.Context, rentalID int32, now time.Time) (*domain.Rental, error)
	MarkOverdueByID(ctx context.Context, rentalID int32, now time.Time) (*domain.Rental, error)
	DeleteRental(ctx context.Context, rentalID int32) error
	GetRental(ctx context.Context, rentalID int32) (*domain.Rental, error)
	ListRentals(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, int32, error)
}

type OverdueService interface {
	// Sweep reclassifies RENTED rentals due before now and returns how many changed.
	Sweep(ctx context.Context, now time.Time) (int, error)
}

type InventoryService interface {
	CheckInventory(ctx context.Context, bookID int32) (*domain.InventoryReport, error)
}

type RentalRuleService interface {
	ListRules(ctx context.Context) ([]domain.RentalRule, error)
	GetRule(ctx context.Context, name string) (*domain.RentalRule, error)
	PutRule(ctx context.Context, name, value string) (*domain.RentalRule, error)
	DeleteRule(ctx context.Context, name string) error
	// LoanPeriod is the LOAN_PERIOD_DAYS rule when valid, otherwise the configured default.
	LoanPeriod(ctx context.Context) time.Duration
}

type ReminderService interface {
	SendOverdueReminders(ctx context.Context) (int, error)
}

type EmailService interface {
	SendOverdueReminder(ctx context.Context, borrower *domain.User, book *domain.Book, rental *domain.Rental) error
}
