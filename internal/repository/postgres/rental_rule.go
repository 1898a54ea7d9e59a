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

var ruleColumns = []interface{}{"id", "name", "value", "created_on", "updated_on"}

type rentalRuleRepository struct {
	q querier
}

func NewRentalRuleRepository(q querier) repository.RentalRuleRepository {
	return &rentalRuleRepository{q: q}
}

func (r *rentalRuleRepository) List(ctx context.Context) ([]domain.RentalRule, error) {
	query, args, err := dialect.From(tableRentalRule).Prepared(true).
		Select(ruleColumns...).
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build rule select: %w", err)
	}
	var rules []domain.RentalRule
	if err := sqlx.SelectContext(ctx, r.q, &rules, query, args...); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *rentalRuleRepository) GetByName(ctx context.Context, name string) (*domain.RentalRule, error) {
	query, args, err := dialect.From(tableRentalRule).Prepared(true).
		Select(ruleColumns...).
		Where(goqu.C("name").Eq(name)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build rule select: %w", err)
	}
	rule := &domain.RentalRule{}
	if err := sqlx.GetContext(ctx, r.q, rule, query, args...); err != nil {
		return nil, notFound(err, "rental rule %s", name)
	}
	return rule, nil
}

// Upsert inserts the rule or replaces the value of the rule with the same name.
func (r *rentalRuleRepository) Upsert(ctx context.Context, rule *domain.RentalRule) error {
	now := time.Now()
	if rule.CreatedOn.IsZero() {
		rule.CreatedOn = now
	}
	if rule.UpdatedOn.IsZero() {
		rule.UpdatedOn = now
	}
	query, args, err := dialect.Insert(tableRentalRule).Prepared(true).
		Rows(goqu.Record{
			"name":       rule.Name,
			"value":      rule.Value,
			"created_on": rule.CreatedOn,
			"updated_on": rule.UpdatedOn,
		}).
		OnConflict(goqu.DoUpdate("name", goqu.Record{
			"value":      goqu.L("EXCLUDED.value"),
			"updated_on": goqu.L("EXCLUDED.updated_on"),
		})).
		Returning("id", "created_on").
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build rule upsert: %w", err)
	}
	return r.q.QueryRowxContext(ctx, query, args...).Scan(&rule.ID, &rule.CreatedOn)
}

func (r *rentalRuleRepository) Delete(ctx context.Context, name string) error {
	query, args, err := dialect.Delete(tableRentalRule).Prepared(true).
		Where(goqu.C("name").Eq(name)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build rule delete: %w", err)
	}
	n, err := exec(ctx, r.q, "delete_rental_rule", query, args)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("rental rule %s: %w", name, domain.ErrNotFound)
	}
	return nil
}
