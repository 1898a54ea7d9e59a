package service

import (
	"context"
	"fmt"

	"library-rental-backend/internal/domain"
	"library-rental-backend/internal/logger"
	"library-rental-backend/internal/repository"
)

// InventoryLedger reserves and releases copies of a book. Both operations are a
// single conditional update, so concurrent callers cannot over-reserve.
type InventoryLedger struct {
	books repository.BookRepository
}

func NewInventoryLedger(books repository.BookRepository) *InventoryLedger {
	return &InventoryLedger{books: books}
}

// ReserveCopy takes one available copy or fails with domain.ErrUnavailable.
func (l *InventoryLedger) ReserveCopy(ctx context.Context, bookID int32) error {
	ok, err := l.books.DecrementAvailable(ctx, bookID)
	if err != nil {
		return fmt.Errorf("failed to reserve copy of book %d: %w", bookID, err)
	}
	if ok {
		return nil
	}
	book, err := l.books.GetByID(ctx, bookID)
	if err != nil {
		return err
	}
	if err := book.CheckCounts(); err != nil {
		logger.ErrorContext(ctx, "Inventory corruption detected", "book_id", bookID, "error", err)
		return err
	}
	return fmt.Errorf("book %d: %w", bookID, domain.ErrUnavailable)
}

// ReleaseCopy returns one copy. Releasing past TotalCopies means an earlier
// unit of work leaked, so it fails with domain.ErrInventoryCorruption instead of clamping.
func (l *InventoryLedger) ReleaseCopy(ctx context.Context, bookID int32) error {
	ok, err := l.books.IncrementAvailable(ctx, bookID)
	if err != nil {
		return fmt.Errorf("failed to release copy of book %d: %w", bookID, err)
	}
	if ok {
		return nil
	}
	book, err := l.books.GetByID(ctx, bookID)
	if err != nil {
		return err
	}
	corruption := fmt.Errorf("%w: releasing a copy of book %d would exceed %d total copies",
		domain.ErrInventoryCorruption, bookID, book.TotalCopies)
	logger.ErrorContext(ctx, "Inventory corruption detected",
		"book_id", bookID,
		"total_copies", book.TotalCopies,
		"available_copies", book.AvailableCopies,
		"error", corruption)
	return corruption
}

type inventoryService struct {
	books   repository.BookRepository
	rentals repository.RentalRepository
}

func NewInventoryService(books repository.BookRepository, rentals repository.RentalRepository) InventoryService {
	return &inventoryService{books: books, rentals: rentals}
}

func (s *inventoryService) CheckInventory(ctx context.Context, bookID int32) (*domain.InventoryReport, error) {
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	outstanding, err := s.rentals.CountOutstandingByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to count outstanding rentals for book %d: %w", bookID, err)
	}
	report := domain.NewInventoryReport(*book, outstanding)
	if !report.Consistent {
		logger.ErrorContext(ctx, "Inventory inconsistent with outstanding rentals",
			"book_id", bookID,
			"total_copies", report.TotalCopies,
			"available_copies", report.AvailableCopies,
			"outstanding", report.Outstanding)
	}
	return &report, nil
}
