package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"library-rental-backend/internal/domain"
	"library-rental-backend/internal/service"
)

func TestRentalRuleService_LoanPeriod(t *testing.T) {
	ctx := context.Background()
	fallback := 10 * 24 * time.Hour

	tests := []struct {
		name string
		rule *domain.RentalRule
		err  error
		want time.Duration
	}{
		{"Rule set", &domain.RentalRule{Name: domain.RuleLoanPeriodDays, Value: "21"}, nil, 21 * 24 * time.Hour},
		{"Rule missing", nil, domain.ErrNotFound, fallback},
		{"Rule invalid", &domain.RentalRule{Name: domain.RuleLoanPeriodDays, Value: "-3"}, nil, fallback},
		{"Store failure", nil, errors.New("connection reset"), fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRentalRuleRepo)
			repo.On("GetByName", ctx, domain.RuleLoanPeriodDays).Return(tt.rule, tt.err)

			svc := service.NewRentalRuleService(repo, fallback, nil)
			assert.Equal(t, tt.want, svc.LoanPeriod(ctx))
			repo.AssertExpectations(t)
		})
	}
}

func TestRentalRuleService_PutRule(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRentalRuleRepo)
		repo.On("Upsert", ctx, mock.MatchedBy(func(r *domain.RentalRule) bool {
			return r.Name == domain.RuleLoanPeriodDays && r.Value == "7" && r.UpdatedOn.Equal(t0)
		})).Return(nil)

		svc := service.NewRentalRuleService(repo, 0, func() time.Time { return t0 })
		rule, err := svc.PutRule(ctx, " LOAN_PERIOD_DAYS ", " 7")
		require.NoError(t, err)
		assert.Equal(t, "7", rule.Value)
		repo.AssertExpectations(t)
	})

	t.Run("Invalid value is not stored", func(t *testing.T) {
		repo := new(MockRentalRuleRepo)
		svc := service.NewRentalRuleService(repo, 0, nil)

		_, err := svc.PutRule(ctx, domain.RuleLoanPeriodDays, "soon")
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}

func TestRentalRuleService_Memory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.rules.PutRule(ctx, "MAX_RENTALS_PER_MEMBER", "5")
	require.NoError(t, err)
	_, err = f.rules.PutRule(ctx, "MAX_RENTALS_PER_MEMBER", "6")
	require.NoError(t, err)

	rule, err := f.rules.GetRule(ctx, "MAX_RENTALS_PER_MEMBER")
	require.NoError(t, err)
	assert.Equal(t, "6", rule.Value)

	rules, err := f.rules.ListRules(ctx)
	require.NoError(t, err)
	assert.Len(t, rules, 1)

	require.NoError(t, f.rules.DeleteRule(ctx, "MAX_RENTALS_PER_MEMBER"))
	_, err = f.rules.GetRule(ctx, "MAX_RENTALS_PER_MEMBER")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.rules.DeleteRule(ctx, "MAX_RENTALS_PER_MEMBER"), domain.ErrNotFound)
}
