package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"library-rental-backend/internal/domain"
	"library-rental-backend/internal/logger"
	"library-rental-backend/internal/repository"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schemaSQL string

const (
	driverName      = "postgres"
	tableBooks      = "books"
	tableUsers      = "users"
	tableRentals    = "rentals"
	tableRentalRule = "rental_rules"
)

var dialect = goqu.Dialect(driverName)

// querier is satisfied by both *sqlx.DB and *sqlx.Tx so repositories can run in or out of a transaction.
type querier interface {
	sqlx.ExtContext
}

type Store struct {
	db      *sqlx.DB
	books   repository.BookRepository
	users   repository.UserRepository
	rentals repository.RentalRepository
	rules   repository.RentalRuleRepository
}

var _ repository.Store = (*Store)(nil)

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewStore(db), nil
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db:      db,
		books:   NewBookRepository(db),
		users:   NewUserRepository(db),
		rentals: NewRentalRepository(db),
		rules:   NewRentalRuleRepository(db),
	}
}

// NewStoreFromDB wraps a plain *sql.DB, e.g. one opened by sqlmock.
func NewStoreFromDB(db *sql.DB) *Store {
	return NewStore(sqlx.NewDb(db, driverName))
}

func (s *Store) Books() repository.BookRepository             { return s.books }
func (s *Store) Users() repository.UserRepository             { return s.users }
func (s *Store) Rentals() repository.RentalRepository         { return s.rentals }
func (s *Store) RentalRules() repository.RentalRuleRepository { return s.rules }

func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	logger.DatabaseCall("ensure_schema", "schema.sql")
	_, err := s.db.ExecContext(ctx, schemaSQL)
	logger.DatabaseResult("ensure_schema", 0, err)
	if err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// WithinTx runs fn in a database transaction and rolls back if fn fails or panics.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logger.Error("Failed to roll back transaction", "error", rbErr, "cause", err)
			}
		}
	}()

	if err = fn(ctx, repository.TxRepositories{
		Books:   NewBookRepository(tx),
		Rentals: NewRentalRepository(tx),
	}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// exec runs a built statement and returns the number of affected rows.
func exec(ctx context.Context, q querier, operation, query string, args []interface{}) (int64, error) {
	logger.DatabaseCall(operation, query, "args", args)
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult(operation, 0, err)
		return 0, err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult(operation, n, err)
	return n, err
}

func notFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), domain.ErrNotFound)
	}
	return err
}

func paging(page, pageSize int32) (uint, uint) {
	f := domain.RentalFilter{Page: page, PageSize: pageSize}.Normalize()
	return uint(f.PageSize), uint(f.Offset())
}
