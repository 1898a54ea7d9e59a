// Package memory is a process-local record store. Units of work are
// serialized and rolled back through an undo journal.
package memory

import (
	"context"
	"sync"

	"library-rental-backend/internal/domain"
	"library-rental-backend/internal/repository"
)

type Store struct {
	// txMu is held for a whole unit of work and by writes made outside one.
	txMu sync.Mutex
	mu   sync.RWMutex

	books   map[int32]domain.Book
	users   map[int32]domain.User
	rentals map[int32]domain.Rental
	rules   map[string]domain.RentalRule

	nextBookID   int32
	nextUserID   int32
	nextRentalID int32
	nextRuleID   int32
}

var _ repository.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		books:   make(map[int32]domain.Book),
		users:   make(map[int32]domain.User),
		rentals: make(map[int32]domain.Rental),
		rules:   make(map[string]domain.RentalRule),
	}
}

// journal collects undo steps for one unit of work. A nil journal means auto-commit.
type journal struct {
	undo []func()
}

func (j *journal) record(fn func()) {
	if j != nil {
		j.undo = append(j.undo, fn)
	}
}

func (s *Store) Books() repository.BookRepository             { return &bookRepository{s: s} }
func (s *Store) Users() repository.UserRepository             { return &userRepository{s: s} }
func (s *Store) Rentals() repository.RentalRepository         { return &rentalRepository{s: s} }
func (s *Store) RentalRules() repository.RentalRuleRepository { return &rentalRuleRepository{s: s} }

// WithinTx runs fn with exclusive write access. Repositories obtained from the
// Store itself must not be used for writes inside fn.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) (err error) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	j := &journal{}
	defer func() {
		if p := recover(); p != nil {
			s.rollback(j)
			panic(p)
		}
	}()

	if err = ctx.Err(); err != nil {
		return err
	}
	if err = fn(ctx, repository.TxRepositories{
		Books:   &bookRepository{s: s, j: j},
		Rentals: &rentalRepository{s: s, j: j},
	}); err != nil {
		s.rollback(j)
		return err
	}
	return nil
}

func (s *Store) rollback(j *journal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

// write applies fn under the data lock. Outside a unit of work it also takes txMu.
func (s *Store) write(j *journal, fn func()) {
	if j == nil {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

func (s *Store) read(fn func()) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}
