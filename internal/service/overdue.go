package service

import (
	"context"
	"fmt"
	"time"

	"library-rental-backend/internal/domain"
	"library-rental-backend/internal/logger"
	"library-rental-backend/internal/repository"
)

const defaultSweepBatchSize = 500

type overdueService struct {
	store     repository.Store
	batchSize int32
}

func NewOverdueService(store repository.Store, batchSize int32) OverdueService {
	if batchSize <= 0 {
		batchSize = defaultSweepBatchSize
	}
	return &overdueService{store: store, batchSize: batchSize}
}

// Sweep pages through RENTED rentals due before now and flips each to OVERDUE
// in its own unit of work. A rental returned in the meantime is left alone.
func (s *overdueService) Sweep(ctx context.Context, now time.Time) (int, error) {
	total := 0
	for {
		candidates, err := s.store.Rentals().ListOverdueCandidates(ctx, now, s.batchSize)
		if err != nil {
			return total, fmt.Errorf("failed to list overdue candidates: %w", err)
		}

		updated := 0
		for _, candidate := range candidates {
			if err := ctx.Err(); err != nil {
				return total + updated, err
			}
			var changed bool
			err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
				_, c, err := markOverdue(ctx, repos.Rentals, candidate.ID, now)
				changed = c
				return err
			})
			if err != nil {
				return total + updated, fmt.Errorf("failed to mark rental %d overdue: %w", candidate.ID, err)
			}
			if changed {
				updated++
			}
		}
		total += updated

		// Candidates that were not updated are no longer RENTED, so the next page moves on.
		if len(candidates) < int(s.batchSize) {
			break
		}
	}

	logger.InfoContext(ctx, "Overdue sweep finished", "updated", total, "as_of", now)
	return total, nil
}

// markOverdue re-reads the rental under lock and only writes RENTED -> OVERDUE
// through a status compare-and-set, so a concurrent return is never overwritten.
func markOverdue(ctx context.Context, rentals repository.RentalRepository, rentalID int32, now time.Time) (domain.Rental, bool, error) {
	current, err := rentals.GetByIDForUpdate(ctx, rentalID)
	if err != nil {
		return domain.Rental{}, false, err
	}
	next := current.DeriveOverdue(now)
	if next.Status == current.Status {
		return *current, false, nil
	}

	ok, err := rentals.UpdateStatusIf(ctx, rentalID, domain.RentalStatusRented, domain.RentalStatusOverdue, now)
	if err != nil {
		return domain.Rental{}, false, err
	}
	if !ok {
		latest, err := rentals.GetByID(ctx, rentalID)
		if err != nil {
			return domain.Rental{}, false, err
		}
		return *latest, false, nil
	}
	logger.DebugContext(ctx, "Rental marked overdue", "rental_id", rentalID, "due_date", current.DueDate)
	return next, true, nil
}
