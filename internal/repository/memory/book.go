package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"library-rental-backend/internal/domain"
)

type bookRepository struct {
	s *Store
	j *journal
}

func (r *bookRepository) Create(ctx context.Context, b *domain.Book) error {
	if err := b.CheckCounts(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	if b.CreatedOn.IsZero() {
		b.CreatedOn = time.Now()
	}
	r.s.write(r.j, func() {
		r.s.nextBookID++
		b.ID = r.s.nextBookID
		r.s.books[b.ID] = *b
		id := b.ID
		r.j.record(func() { delete(r.s.books, id) })
	})
	return nil
}

func (r *bookRepository) GetByID(ctx context.Context, id int32) (*domain.Book, error) {
	var (
		b  domain.Book
		ok bool
	)
	r.s.read(func() { b, ok = r.s.books[id] })
	if !ok {
		return nil, fmt.Errorf("book %d: %w", id, domain.ErrNotFound)
	}
	return &b, nil
}

func (r *bookRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Book, int32, error) {
	f := domain.RentalFilter{Page: page, PageSize: pageSize}.Normalize()
	var all []domain.Book
	r.s.read(func() {
		for _, b := range r.s.books {
			all = append(all, b)
		}
	})
	sort.Slice(all, func(i, k int) bool { return all[i].ID < all[k].ID })
	return pageOf(all, f), int32(len(all)), nil
}

func (r *bookRepository) DecrementAvailable(ctx context.Context, id int32) (bool, error) {
	return r.adjust(id, -1, func(b domain.Book) bool { return b.AvailableCopies > 0 }), nil
}

func (r *bookRepository) IncrementAvailable(ctx context.Context, id int32) (bool, error) {
	return r.adjust(id, 1, func(b domain.Book) bool { return b.AvailableCopies < b.TotalCopies }), nil
}

func (r *bookRepository) adjust(id, delta int32, guard func(domain.Book) bool) bool {
	changed := false
	r.s.write(r.j, func() {
		b, ok := r.s.books[id]
		if !ok || !guard(b) {
			return
		}
		prev := b
		b.AvailableCopies += delta
		r.s.books[id] = b
		r.j.record(func() { r.s.books[id] = prev })
		changed = true
	})
	return changed
}

func pageOf[T any](all []T, f domain.RentalFilter) []T {
	start := int(f.Offset())
	if start >= len(all) {
		return nil
	}
	end := start + int(f.PageSize)
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}
