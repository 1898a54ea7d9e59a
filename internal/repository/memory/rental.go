package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"library-rental-backend/internal/domain"
)

type rentalRepository struct {
	s *Store
	j *journal
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	if _, err := (&bookRepository{s: r.s}).GetByID(ctx, rt.BookID); err != nil {
		return err
	}
	r.s.write(r.j, func() {
		r.s.nextRentalID++
		rt.ID = r.s.nextRentalID
		r.s.rentals[rt.ID] = *rt
		id := rt.ID
		r.j.record(func() { delete(r.s.rentals, id) })
	})
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	var (
		rt domain.Rental
		ok bool
	)
	r.s.read(func() { rt, ok = r.s.rentals[id] })
	if !ok {
		return nil, fmt.Errorf("rental %d: %w", id, domain.ErrNotFound)
	}
	return &rt, nil
}

// GetByIDForUpdate needs no extra locking: units of work are already exclusive.
func (r *rentalRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Rental, error) {
	return r.GetByID(ctx, id)
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	found := false
	r.s.write(r.j, func() {
		prev, ok := r.s.rentals[rt.ID]
		if !ok {
			return
		}
		found = true
		r.s.rentals[rt.ID] = *rt
		r.j.record(func() { r.s.rentals[prev.ID] = prev })
	})
	if !found {
		return fmt.Errorf("rental %d: %w", rt.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *rentalRepository) UpdateStatusIf(ctx context.Context, id int32, from, to domain.RentalStatus, updatedOn time.Time) (bool, error) {
	changed := false
	r.s.write(r.j, func() {
		prev, ok := r.s.rentals[id]
		if !ok || prev.Status != from {
			return
		}
		next := prev
		next.Status = to
		next.UpdatedOn = updatedOn
		r.s.rentals[id] = next
		r.j.record(func() { r.s.rentals[id] = prev })
		changed = true
	})
	return changed, nil
}

func (r *rentalRepository) Delete(ctx context.Context, id int32) error {
	found := false
	r.s.write(r.j, func() {
		prev, ok := r.s.rentals[id]
		if !ok {
			return
		}
		found = true
		delete(r.s.rentals, id)
		r.j.record(func() { r.s.rentals[id] = prev })
	})
	if !found {
		return fmt.Errorf("rental %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *rentalRepository) List(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, int32, error) {
	filter = filter.Normalize()
	matched := r.collect(func(rt domain.Rental) bool {
		return (filter.BookID == 0 || rt.BookID == filter.BookID) &&
			(filter.BorrowerID == 0 || rt.BorrowerID == filter.BorrowerID) &&
			(filter.Status == "" || rt.Status == filter.Status)
	})
	sort.Slice(matched, func(i, k int) bool {
		if matched[i].RentalDate.Equal(matched[k].RentalDate) {
			return matched[i].ID > matched[k].ID
		}
		return matched[i].RentalDate.After(matched[k].RentalDate)
	})
	return pageOf(matched, filter), int32(len(matched)), nil
}

func (r *rentalRepository) ListOverdueCandidates(ctx context.Context, now time.Time, limit int32) ([]domain.Rental, error) {
	matched := r.collect(func(rt domain.Rental) bool {
		return rt.Status == domain.RentalStatusRented && rt.DueDate.Before(now)
	})
	sort.Slice(matched, func(i, k int) bool {
		if matched[i].DueDate.Equal(matched[k].DueDate) {
			return matched[i].ID < matched[k].ID
		}
		return matched[i].DueDate.Before(matched[k].DueDate)
	})
	if limit > 0 && int(limit) < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *rentalRepository) CountOutstandingByBook(ctx context.Context, bookID int32) (int32, error) {
	return int32(len(r.collect(func(rt domain.Rental) bool {
		return rt.BookID == bookID && rt.Status.Outstanding()
	}))), nil
}

func (r *rentalRepository) collect(match func(domain.Rental) bool) []domain.Rental {
	var out []domain.Rental
	r.s.read(func() {
		for _, rt := range r.s.rentals {
			if match(rt) {
				out = append(out, rt)
			}
		}
	})
	return out
}
