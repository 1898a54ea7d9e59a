package domain

import (
	"fmt"
	"time"
)

// Book is a catalog title together with its copy counts.
// AvailableCopies is only changed through the inventory ledger.
type Book struct {
	ID              int32     `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Author          string    `json:"author" db:"author"`
	ISBN            string    `json:"isbn" db:"isbn"`
	TotalCopies     int32     `json:"total_copies" db:"total_copies"`
	AvailableCopies int32     `json:"available_copies" db:"available_copies"`
	CreatedOn       time.Time `json:"created_on" db:"created_on"`
}

// CheckCounts reports whether 0 <= AvailableCopies <= TotalCopies.
func (b Book) CheckCounts() error {
	if b.TotalCopies < 0 || b.AvailableCopies < 0 || b.AvailableCopies > b.TotalCopies {
		return fmt.Errorf("%w: book %d has %d of %d copies available",
			ErrInventoryCorruption, b.ID, b.AvailableCopies, b.TotalCopies)
	}
	return nil
}

// InventoryReport compares a book's counters with its outstanding rentals.
type InventoryReport struct {
	BookID          int32 `json:"book_id"`
	TotalCopies     int32 `json:"total_copies"`
	AvailableCopies int32 `json:"available_copies"`
	Outstanding     int32 `json:"outstanding"`
	Consistent      bool  `json:"consistent"`
}

func NewInventoryReport(b Book, outstanding int32) InventoryReport {
	return InventoryReport{
		BookID:          b.ID,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		Outstanding:     outstanding,
		Consistent:      b.CheckCounts() == nil && outstanding+b.AvailableCopies == b.TotalCopies,
	}
}
