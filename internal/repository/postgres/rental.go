package postgres

import (
	"context"
	"fmt"
	"time"

	"library-rental-backend/internal/domain"
	"library-rental-backend/internal/repository"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"
)

var rentalColumns = []interface{}{
	"id", "book_id", "borrower_id", "rental_date", "due_date", "return_date", "status", "created_on", "updated_on",
}

type rentalRepository struct {
	q querier
}

func NewRentalRepository(q querier) repository.RentalRepository {
	return &rentalRepository{q: q}
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query, args, err := dialect.Insert(tableRentals).Prepared(true).
		Rows(goqu.Record{
			"book_id":     rt.BookID,
			"borrower_id": rt.BorrowerID,
			"rental_date": rt.RentalDate,
			"due_date":    rt.DueDate,
			"status":      string(rt.Status),
			"created_on":  rt.CreatedOn,
			"updated_on":  rt.UpdatedOn,
		}).
		Returning("id").
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build rental insert: %w", err)
	}
	return r.q.QueryRowxContext(ctx, query, args...).Scan(&rt.ID)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	return r.get(ctx, id, false)
}

func (r *rentalRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Rental, error) {
	return r.get(ctx, id, true)
}

func (r *rentalRepository) get(ctx context.Context, id int32, lock bool) (*domain.Rental, error) {
	ds := dialect.From(tableRentals).Prepared(true).
		Select(rentalColumns...).
		Where(goqu.C("id").Eq(id))
	if lock {
		ds = ds.ForUpdate(exp.Wait)
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build rental select: %w", err)
	}
	rt := &domain.Rental{}
	if err := sqlx.GetContext(ctx, r.q, rt, query, args...); err != nil {
		return nil, notFound(err, "rental %d", id)
	}
	return rt, nil
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query, args, err := dialect.Update(tableRentals).Prepared(true).
		Set(goqu.Record{
			"status":      string(rt.Status),
			"return_date": rt.ReturnDate,
			"updated_on":  rt.UpdatedOn,
		}).
		Where(goqu.C("id").Eq(rt.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build rental update: %w", err)
	}
	n, err := exec(ctx, r.q, "update_rental", query, args)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("rental %d: %w", rt.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *rentalRepository) UpdateStatusIf(ctx context.Context, id int32, from, to domain.RentalStatus, updatedOn time.Time) (bool, error) {
	query, args, err := dialect.Update(tableRentals).Prepared(true).
		Set(goqu.Record{"status": string(to), "updated_on": updatedOn}).
		Where(goqu.C("id").Eq(id), goqu.C("status").Eq(string(from))).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("failed to build rental status update: %w", err)
	}
	n, err := exec(ctx, r.q, "update_rental_status", query, args)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *rentalRepository) Delete(ctx context.Context, id int32) error {
	query, args, err := dialect.Delete(tableRentals).Prepared(true).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build rental delete: %w", err)
	}
	n, err := exec(ctx, r.q, "delete_rental", query, args)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("rental %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *rentalRepository) List(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, int32, error) {
	filter = filter.Normalize()

	where := rentalFilterExpressions(filter)

	countQuery, countArgs, err := dialect.From(tableRentals).Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(where...).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build rental count: %w", err)
	}
	var count int32
	if err := sqlx.GetContext(ctx, r.q, &count, countQuery, countArgs...); err != nil {
		return nil, 0, err
	}

	query, args, err := dialect.From(tableRentals).Prepared(true).
		Select(rentalColumns...).
		Where(where...).
		Order(goqu.I("rental_date").Desc(), goqu.I("id").Desc()).
		Limit(uint(filter.PageSize)).
		Offset(uint(filter.Offset())).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build rental select: %w", err)
	}
	var rentals []domain.Rental
	if err := sqlx.SelectContext(ctx, r.q, &rentals, query, args...); err != nil {
		return nil, 0, err
	}
	return rentals, count, nil
}

func (r *rentalRepository) ListOverdueCandidates(ctx context.Context, now time.Time, limit int32) ([]domain.Rental, error) {
	ds := dialect.From(tableRentals).Prepared(true).
		Select(rentalColumns...).
		Where(
			goqu.C("status").Eq(string(domain.RentalStatusRented)),
			goqu.C("due_date").Lt(now),
		).
		Order(goqu.I("due_date").Asc(), goqu.I("id").Asc())
	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build overdue candidate select: %w", err)
	}
	var rentals []domain.Rental
	if err := sqlx.SelectContext(ctx, r.q, &rentals, query, args...); err != nil {
		return nil, err
	}
	return rentals, nil
}

func (r *rentalRepository) CountOutstandingByBook(ctx context.Context, bookID int32) (int32, error) {
	query, args, err := dialect.From(tableRentals).Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(
			goqu.C("book_id").Eq(bookID),
			goqu.C("status").In(string(domain.RentalStatusRented), string(domain.RentalStatusOverdue)),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("failed to build outstanding count: %w", err)
	}
	var count int32
	if err := sqlx.GetContext(ctx, r.q, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}

func rentalFilterExpressions(filter domain.RentalFilter) []exp.Expression {
	var where []exp.Expression
	if filter.BookID != 0 {
		where = append(where, goqu.C("book_id").Eq(filter.BookID))
	}
	if filter.BorrowerID != 0 {
		where = append(where, goqu.C("borrower_id").Eq(filter.BorrowerID))
	}
	if filter.Status != "" {
		where = append(where, goqu.C("status").Eq(string(filter.Status)))
	}
	return where
}
