package repository

import (
	"context"
	"time"

	"library-rental-backend/internal/domain"
)

// Lookups that miss return an error wrapping domain.ErrNotFound.

type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id int32) (*domain.Book, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.Book, int32, error)

	// DecrementAvailable takes one copy if any is free. It reports false when nothing changed.
	DecrementAvailable(ctx context.Context, id int32) (bool, error)
	// IncrementAvailable puts one copy back unless that would exceed total copies.
	IncrementAvailable(ctx context.Context, id int32) (bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	// GetByIDForUpdate locks the rental row for the rest of the unit of work.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	// UpdateStatusIf sets the status only while the stored status still equals from.
	UpdateStatusIf(ctx context.Context, id int32, from, to domain.RentalStatus, updatedOn time.Time) (bool, error)
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, int32, error)
	// ListOverdueCandidates returns RENTED rentals due before now, oldest due first.
	ListOverdueCandidates(ctx context.Context, now time.Time, limit int32) ([]domain.Rental, error)
	// CountOutstandingByBook counts RENTED and OVERDUE rentals of a book.
	CountOutstandingByBook(ctx context.Context, bookID int32) (int32, error)
}

type RentalRuleRepository interface {
	List(ctx context.Context) ([]domain.RentalRule, error)
	GetByName(ctx context.Context, name string) (*domain.RentalRule, error)
	Upsert(ctx context.Context, rule *domain.RentalRule) error
	Delete(ctx context.Context, name string) error
}

// TxRepositories are bound to a single unit of work.
type TxRepositories struct {
	Books   BookRepository
	Rentals RentalRepository
}

// Transactor runs fn as one unit of work: every write made through the
// repositories passed to fn persists together or not at all.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}

// Store is everything the services need from persistence.
type Store interface {
	Transactor
	Books() BookRepository
	Users() UserRepository
	Rentals() RentalRepository
	RentalRules() RentalRuleRepository
}
