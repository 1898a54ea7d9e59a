package domain

import (
	"fmt"
	"time"
)

type RentalStatus string

const (
	RentalStatusRented   RentalStatus = "RENTED"
	RentalStatusOverdue  RentalStatus = "OVERDUE"
	RentalStatusReturned RentalStatus = "RETURNED"
)

// DefaultLoanPeriod applies when neither config nor a rental rule sets one.
const DefaultLoanPeriod = 14 * 24 * time.Hour

func (s RentalStatus) Valid() bool {
	switch s {
	case RentalStatusRented, RentalStatusOverdue, RentalStatusReturned:
		return true
	}
	return false
}

// Outstanding reports whether a rental in this status still holds a copy.
func (s RentalStatus) Outstanding() bool {
	return s == RentalStatusRented || s == RentalStatusOverdue
}

type Rental struct {
	ID         int32        `json:"id" db:"id"`
	BookID     int32        `json:"book_id" db:"book_id"`
	BorrowerID int32        `json:"borrower_id" db:"borrower_id"`
	RentalDate time.Time    `json:"rental_date" db:"rental_date"`
	DueDate    time.Time    `json:"due_date" db:"due_date"`
	ReturnDate *time.Time   `json:"return_date,omitempty" db:"return_date"`
	Status     RentalStatus `json:"status" db:"status"`
	CreatedOn  time.Time    `json:"created_on" db:"created_on"`
	UpdatedOn  time.Time    `json:"updated_on" db:"updated_on"`
}

// NewRental starts a rental in RENTED with DueDate = now + loanPeriod.
func NewRental(bookID, borrowerID int32, now time.Time, loanPeriod time.Duration) (Rental, error) {
	if loanPeriod <= 0 {
		return Rental{}, fmt.Errorf("%w: loan period must be positive, got %s", ErrInvalidArgument, loanPeriod)
	}
	return Rental{
		BookID:     bookID,
		BorrowerID: borrowerID,
		RentalDate: now,
		DueDate:    now.Add(loanPeriod),
		Status:     RentalStatusRented,
		CreatedOn:  now,
		UpdatedOn:  now,
	}, nil
}

// MarkReturned moves a RENTED or OVERDUE rental to RETURNED.
// It is unconditional on the prior outstanding status so a return always wins over overdue marking.
func (r Rental) MarkReturned(now time.Time) (Rental, error) {
	if !r.Status.Outstanding() {
		return r, fmt.Errorf("%w: rental %d is %s", ErrInvalidTransition, r.ID, r.Status)
	}
	if now.Before(r.RentalDate) {
		return r, fmt.Errorf("%w: return date %s precedes rental date %s",
			ErrInvalidArgument, now.Format(time.RFC3339), r.RentalDate.Format(time.RFC3339))
	}
	returned := now
	r.ReturnDate = &returned
	r.Status = RentalStatusReturned
	r.UpdatedOn = now
	return r, nil
}

// DeriveOverdue returns a copy marked OVERDUE when r is RENTED and past due at now.
// Any other rental is returned unchanged.
func (r Rental) DeriveOverdue(now time.Time) Rental {
	if r.Status != RentalStatusRented || !r.DueDate.Before(now) {
		return r
	}
	r.Status = RentalStatusOverdue
	r.UpdatedOn = now
	return r
}

// RentalFilter narrows rental listings. Zero values mean "any".
type RentalFilter struct {
	BookID     int32
	BorrowerID int32
	Status     RentalStatus
	Page       int32
	PageSize   int32
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalize clamps paging to sane bounds.
func (f RentalFilter) Normalize() RentalFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	return f
}

func (f RentalFilter) Offset() int32 {
	return (f.Page - 1) * f.PageSize
}
