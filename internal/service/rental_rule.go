package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"library-rental-backend/internal/domain"
	"library-rental-backend/internal/logger"
	"library-rental-backend/internal/repository"
)

type rentalRuleService struct {
	rules             repository.RentalRuleRepository
	defaultLoanPeriod time.Duration
	now               Clock
}

func NewRentalRuleService(rules repository.RentalRuleRepository, defaultLoanPeriod time.Duration, now Clock) RentalRuleService {
	if defaultLoanPeriod <= 0 {
		defaultLoanPeriod = domain.DefaultLoanPeriod
	}
	if now == nil {
		now = UTCClock
	}
	return &rentalRuleService{
		rules:             rules,
		defaultLoanPeriod: defaultLoanPeriod,
		now:               now,
	}
}

func (s *rentalRuleService) ListRules(ctx context.Context) ([]domain.RentalRule, error) {
	return s.rules.List(ctx)
}

func (s *rentalRuleService) GetRule(ctx context.Context, name string) (*domain.RentalRule, error) {
	return s.rules.GetByName(ctx, name)
}

func (s *rentalRuleService) PutRule(ctx context.Context, name, value string) (*domain.RentalRule, error) {
	now := s.now()
	rule := domain.RentalRule{
		Name:      strings.TrimSpace(name),
		Value:     strings.TrimSpace(value),
		CreatedOn: now,
		UpdatedOn: now,
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	if err := s.rules.Upsert(ctx, &rule); err != nil {
		return nil, fmt.Errorf("failed to save rental rule %s: %w", rule.Name, err)
	}
	logger.InfoContext(ctx, "Rental rule saved", "name", rule.Name, "value", rule.Value)
	return &rule, nil
}

func (s *rentalRuleService) DeleteRule(ctx context.Context, name string) error {
	if err := s.rules.Delete(ctx, name); err != nil {
		return err
	}
	logger.InfoContext(ctx, "Rental rule deleted", "name", name)
	return nil
}

func (s *rentalRuleService) LoanPeriod(ctx context.Context) time.Duration {
	rule, err := s.rules.GetByName(ctx, domain.RuleLoanPeriodDays)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.WarnContext(ctx, "Failed to load loan period rule, using default", "error", err)
		}
		return s.defaultLoanPeriod
	}
	period, err := rule.LoanPeriod()
	if err != nil {
		logger.WarnContext(ctx, "Ignoring invalid loan period rule", "value", rule.Value, "error", err)
		return s.defaultLoanPeriod
	}
	return period
}
