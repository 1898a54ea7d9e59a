package memory

import (
	"context"
	"fmt"
	"time"

	"library-rental-backend/internal/domain"
)

type userRepository struct {
	s *Store
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.CreatedOn.IsZero() {
		u.CreatedOn = time.Now()
	}
	if u.Role == "" {
		u.Role = domain.UserRoleMember
	}
	r.s.write(nil, func() {
		r.s.nextUserID++
		u.ID = r.s.nextUserID
		r.s.users[u.ID] = *u
	})
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	var (
		u  domain.User
		ok bool
	)
	r.s.read(func() { u, ok = r.s.users[id] })
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return &u, nil
}
