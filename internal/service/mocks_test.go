package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"library-rental-backend/internal/domain"
)

type MockRentalRuleRepo struct {
	mock.Mock
}

func (m *MockRentalRuleRepo) List(ctx context.Context) ([]domain.RentalRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentalRule), args.Error(1)
}

func (m *MockRentalRuleRepo) GetByName(ctx context.Context, name string) (*domain.RentalRule, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRule), args.Error(1)
}

func (m *MockRentalRuleRepo) Upsert(ctx context.Context, rule *domain.RentalRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRentalRuleRepo) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOverdueReminder(ctx context.Context, borrower *domain.User, book *domain.Book, rental *domain.Rental) error {
	args := m.Called(ctx, borrower, book, rental)
	return args.Error(0)
}
