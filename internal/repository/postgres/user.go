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

type userRepository struct {
	q querier
}

func NewUserRepository(q querier) repository.UserRepository {
	return &userRepository{q: q}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.CreatedOn.IsZero() {
		u.CreatedOn = time.Now()
	}
	if u.Role == "" {
		u.Role = domain.UserRoleMember
	}
	query, args, err := dialect.Insert(tableUsers).Prepared(true).
		Rows(goqu.Record{"name": u.Name, "email": u.Email, "role": u.Role, "created_on": u.CreatedOn}).
		Returning("id").
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build user insert: %w", err)
	}
	return r.q.QueryRowxContext(ctx, query, args...).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query, args, err := dialect.From(tableUsers).Prepared(true).
		Select("id", "name", "email", "role", "created_on").
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build user select: %w", err)
	}
	u := &domain.User{}
	if err := sqlx.GetContext(ctx, r.q, u, query, args...); err != nil {
		return nil, notFound(err, "user %d", id)
	}
	return u, nil
}
