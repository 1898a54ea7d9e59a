package postgres

import (
	"context"
	"fmt"
	"time"

	"library-rental-backend/internal/domain"
	"library-rental-backend/internal/repository"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
)

var bookColumns = []interface{}{"id", "title", "author", "isbn", "total_copies", "available_copies", "created_on"}

type bookRepository struct {
	q querier
}

func NewBookRepository(q querier) repository.BookRepository {
	return &bookRepository{q: q}
}

func (r *bookRepository) Create(ctx context.Context, b *domain.Book) error {
	if b.CreatedOn.IsZero() {
		b.CreatedOn = time.Now()
	}
	if err := b.CheckCounts(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	query, args, err := dialect.Insert(tableBooks).Prepared(true).
		Rows(goqu.Record{
			"title":            b.Title,
			"author":           b.Author,
			"isbn":             b.ISBN,
			"total_copies":     b.TotalCopies,
			"available_copies": b.AvailableCopies,
			"created_on":       b.CreatedOn,
		}).
		Returning("id").
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build book insert: %w", err)
	}
	return r.q.QueryRowxContext(ctx, query, args...).Scan(&b.ID)
}

func (r *bookRepository) GetByID(ctx context.Context, id int32) (*domain.Book, error) {
	query, args, err := dialect.From(tableBooks).Prepared(true).
		Select(bookColumns...).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build book select: %w", err)
	}
	b := &domain.Book{}
	if err := sqlx.GetContext(ctx, r.q, b, query, args...); err != nil {
		return nil, notFound(err, "book %d", id)
	}
	return b, nil
}

func (r *bookRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Book, int32, error) {
	limit, offset := paging(page, pageSize)

	countQuery, countArgs, err := dialect.From(tableBooks).Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build book count: %w", err)
	}
	var count int32
	if err := sqlx.GetContext(ctx, r.q, &count, countQuery, countArgs...); err != nil {
		return nil, 0, err
	}

	query, args, err := dialect.From(tableBooks).Prepared(true).
		Select(bookColumns...).
		Order(goqu.I("id").Asc()).
		Limit(limit).
		Offset(offset).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build book select: %w", err)
	}
	var books []domain.Book
	if err := sqlx.SelectContext(ctx, r.q, &books, query, args...); err != nil {
		return nil, 0, err
	}
	return books, count, nil
}

func (r *bookRepository) DecrementAvailable(ctx context.Context, id int32) (bool, error) {
	query, args, err := dialect.Update(tableBooks).Prepared(true).
		Set(goqu.Record{"available_copies": goqu.L("available_copies - 1")}).
		Where(goqu.C("id").Eq(id), goqu.C("available_copies").Gt(0)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("failed to build reserve update: %w", err)
	}
	n, err := exec(ctx, r.q, "reserve_copy", query, args)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *bookRepository) IncrementAvailable(ctx context.Context, id int32) (bool, error) {
	query, args, err := dialect.Update(tableBooks).Prepared(true).
		Set(goqu.Record{"available_copies": goqu.L("available_copies + 1")}).
		Where(goqu.C("id").Eq(id), goqu.C("available_copies").Lt(goqu.C("total_copies"))).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("failed to build release update: %w", err)
	}
	n, err := exec(ctx, r.q, "release_copy", query, args)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
