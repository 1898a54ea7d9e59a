package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RuleLoanPeriodDays overrides the configured loan period for new rentals.
const RuleLoanPeriodDays = "LOAN_PERIOD_DAYS"

type RentalRule struct {
	ID        int32     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Value     string    `json:"value" db:"value"`
	CreatedOn time.Time `json:"created_on" db:"created_on"`
	UpdatedOn time.Time `json:"updated_on" db:"updated_on"`
}

// LoanPeriod parses a LOAN_PERIOD_DAYS rule value.
func (r RentalRule) LoanPeriod() (time.Duration, error) {
	days, err := strconv.Atoi(strings.TrimSpace(r.Value))
	if err != nil || days <= 0 {
		return 0, fmt.Errorf("%w: rule %s needs a positive number of days, got %q", ErrInvalidArgument, r.Name, r.Value)
	}
	return time.Duration(days) * 24 * time.Hour, nil
}

// Validate checks rule values the engine understands; unknown names are stored as-is.
func (r RentalRule) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: rule name is required", ErrInvalidArgument)
	}
	if r.Name == RuleLoanPeriodDays {
		_, err := r.LoanPeriod()
		return err
	}
	return nil
}
