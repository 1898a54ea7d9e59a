package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library-rental-backend/internal/domain"
	"library-rental-backend/internal/logger"
	"library-rental-backend/internal/repository"
)

type rentalService struct {
	store repository.Store
	rules RentalRuleService
}

func NewRentalService(store repository.Store, rules RentalRuleService) RentalService {
	return &rentalService{
		store: store,
		rules: rules,
	}
}

// CreateRental reserves a copy and records the rental in one unit of work.
// A rejected reservation leaves no rental behind.
func (s *rentalService) CreateRental(ctx context.Context, bookID, borrowerID int32, now time.Time) (*domain.Rental, error) {
	if _, err := s.store.Books().GetByID(ctx, bookID); err != nil {
		return nil, err
	}
	if _, err := s.store.Users().GetByID(ctx, borrowerID); err != nil {
		return nil, err
	}

	rental, err := domain.NewRental(bookID, borrowerID, now, s.rules.LoanPeriod(ctx))
	if err != nil {
		return nil, err
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		if err := NewInventoryLedger(repos.Books).ReserveCopy(ctx, bookID); err != nil {
			return err
		}
		return repos.Rentals.Create(ctx, &rental)
	})
	if err != nil {
		logger.WarnContext(ctx, "Rental not created", "book_id", bookID, "borrower_id", borrowerID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Rental created",
		"rental_id", rental.ID,
		"book_id", bookID,
		"borrower_id", borrowerID,
		"due_date", rental.DueDate)
	return &rental, nil
}

// ReturnRental closes a RENTED or OVERDUE rental and releases its copy.
// A second return fails with domain.ErrAlreadyReturned and changes nothing.
func (s *rentalService) ReturnRental(ctx context.Context, rentalID int32, now time.Time) (*domain.Rental, error) {
	var returned domain.Rental
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		current, err := repos.Rentals.GetByIDForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}
		next, err := current.MarkReturned(now)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) {
				return fmt.Errorf("%w: %w", domain.ErrAlreadyReturned, err)
			}
			return err
		}
		if err := repos.Rentals.Update(ctx, &next); err != nil {
			return err
		}
		if err := NewInventoryLedger(repos.Books).ReleaseCopy(ctx, next.BookID); err != nil {
			return err
		}
		returned = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Rental returned", "rental_id", rentalID, "book_id", returned.BookID)
	return &returned, nil
}

// MarkOverdueByID applies the overdue rule to a single rental. Rentals that are
// not yet due, already overdue or returned come back unchanged.
func (s *rentalService) MarkOverdueByID(ctx context.Context, rentalID int32, now time.Time) (*domain.Rental, error) {
	var result domain.Rental
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		r, _, err := markOverdue(ctx, repos.Rentals, rentalID, now)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteRental removes a rental. An outstanding rental gives its copy back in the same unit of work.
func (s *rentalService) DeleteRental(ctx context.Context, rentalID int32) error {
	return s.store.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		current, err := repos.Rentals.GetByIDForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}
		if err := repos.Rentals.Delete(ctx, rentalID); err != nil {
			return err
		}
		if current.Status.Outstanding() {
			if err := NewInventoryLedger(repos.Books).ReleaseCopy(ctx, current.BookID); err != nil {
				return err
			}
		}
		logger.InfoContext(ctx, "Rental deleted", "rental_id", rentalID, "status", current.Status)
		return nil
	})
}

func (s *rentalService) GetRental(ctx context.Context, rentalID int32) (*domain.Rental, error) {
	return s.store.Rentals().GetByID(ctx, rentalID)
}

func (s *rentalService) ListRentals(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, int32, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown rental status %q", domain.ErrInvalidArgument, filter.Status)
	}
	return s.store.Rentals().List(ctx, filter.Normalize())
}
