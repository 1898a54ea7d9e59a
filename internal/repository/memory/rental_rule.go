package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"library-rental-backend/internal/domain"
)

type rentalRuleRepository struct {
	s *Store
}

func (r *rentalRuleRepository) List(ctx context.Context) ([]domain.RentalRule, error) {
	var rules []domain.RentalRule
	r.s.read(func() {
		for _, rule := range r.s.rules {
			rules = append(rules, rule)
		}
	})
	sort.Slice(rules, func(i, k int) bool { return rules[i].Name < rules[k].Name })
	return rules, nil
}

func (r *rentalRuleRepository) GetByName(ctx context.Context, name string) (*domain.RentalRule, error) {
	var (
		rule domain.RentalRule
		ok   bool
	)
	r.s.read(func() { rule, ok = r.s.rules[name] })
	if !ok {
		return nil, fmt.Errorf("rental rule %s: %w", name, domain.ErrNotFound)
	}
	return &rule, nil
}

func (r *rentalRuleRepository) Upsert(ctx context.Context, rule *domain.RentalRule) error {
	now := time.Now()
	if rule.UpdatedOn.IsZero() {
		rule.UpdatedOn = now
	}
	r.s.write(nil, func() {
		if existing, ok := r.s.rules[rule.Name]; ok {
			rule.ID = existing.ID
			rule.CreatedOn = existing.CreatedOn
		} else {
			r.s.nextRuleID++
			rule.ID = r.s.nextRuleID
			rule.CreatedOn = rule.UpdatedOn
		}
		r.s.rules[rule.Name] = *rule
	})
	return nil
}

func (r *rentalRuleRepository) Delete(ctx context.Context, name string) error {
	found := false
	r.s.write(nil, func() {
		if _, found = r.s.rules[name]; found {
			delete(r.s.rules, name)
		}
	})
	if !found {
		return fmt.Errorf("rental rule %s: %w", name, domain.ErrNotFound)
	}
	return nil
}
