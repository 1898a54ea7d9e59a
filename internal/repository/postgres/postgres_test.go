package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-rental-backend/internal/domain"
	"library-rental-backend/internal/repository"
)

var t0 = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStoreFromDB(db), mock
}

func TestStore_WithinTx(t *testing.T) {
	ctx := context.Background()

	t.Run("Commit", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "books" SET "available_copies"=available_copies - 1`).
			WithArgs(int32(1), 0).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
			ok, err := repos.Books.DecrementAvailable(ctx, 1)
			require.True(t, ok)
			return err
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback on error", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err := store.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback on panic", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.Panics(t, func() {
			_ = store.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
				panic("boom")
			})
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Commit failure", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

		err := store.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error { return nil })
		assert.ErrorContains(t, err, "failed to commit")
	})
}

func TestStore_EnsureSchema(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS`).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(`INSERT INTO "books"`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

		b := &domain.Book{Title: "Dune", TotalCopies: 2, AvailableCopies: 2}
		require.NoError(t, store.Books().Create(ctx, b))
		assert.Equal(t, int32(7), b.ID)
	})

	t.Run("Create rejects bad counts", func(t *testing.T) {
		store, _ := newMockStore(t)
		err := store.Books().Create(ctx, &domain.Book{TotalCopies: 1, AvailableCopies: 2})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("GetByID", func(t *testing.T) {
		store, mock := newMockStore(t)
		rows := sqlmock.NewRows([]string{"id", "title", "author", "isbn", "total_copies", "available_copies", "created_on"}).
			AddRow(1, "Dune", "Frank Herbert", "9780441013593", 3, 2, t0)
		mock.ExpectQuery(`SELECT (.+) FROM "books" WHERE \("id" = \$1\)`).
			WithArgs(int32(1)).
			WillReturnRows(rows)

		b, err := store.Books().GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int32(2), b.AvailableCopies)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT (.+) FROM "books"`).
			WithArgs(int32(9)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := store.Books().GetByID(ctx, 9)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("List", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "books"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT (.+) FROM "books" ORDER BY "id" ASC LIMIT \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "author", "isbn", "total_copies", "available_copies", "created_on"}).
				AddRow(1, "Dune", "Frank Herbert", "", 3, 3, t0))

		books, total, err := store.Books().List(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int32(1), total)
		assert.Len(t, books, 1)
	})

	t.Run("Decrement with no copy left", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec(`UPDATE "books" SET "available_copies"=available_copies - 1 WHERE \(\("id" = \$1\) AND \("available_copies" > \$2\)\)`).
			WithArgs(int32(1), 0).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := store.Books().DecrementAvailable(ctx, 1)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Increment is bounded by total", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "books" SET "available_copies"=available_copies + 1 WHERE (("id" = $1) AND ("available_copies" < "total_copies"))`)).
			WithArgs(int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := store.Books().IncrementAvailable(ctx, 1)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO "users"`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	u := &domain.User{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, store.Users().Create(ctx, u))
	assert.Equal(t, int32(3), u.ID)
	assert.Equal(t, domain.UserRoleMember, u.Role)

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WithArgs(int32(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role", "created_on"}).
			AddRow(3, "Ada", "ada@example.com", "MEMBER", t0))
	got, err := store.Users().GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}
