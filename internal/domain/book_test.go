package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBook_CheckCounts(t *testing.T) {
	assert.NoError(t, Book{TotalCopies: 3, AvailableCopies: 0}.CheckCounts())
	assert.NoError(t, Book{TotalCopies: 3, AvailableCopies: 3}.CheckCounts())
	assert.ErrorIs(t, Book{TotalCopies: 3, AvailableCopies: 4}.CheckCounts(), ErrInventoryCorruption)
	assert.ErrorIs(t, Book{TotalCopies: 3, AvailableCopies: -1}.CheckCounts(), ErrInventoryCorruption)
}

func TestNewInventoryReport(t *testing.T) {
	book := Book{ID: 7, TotalCopies: 3, AvailableCopies: 1}

	report := NewInventoryReport(book, 2)
	assert.True(t, report.Consistent)
	assert.Equal(t, int32(7), report.BookID)

	assert.False(t, NewInventoryReport(book, 1).Consistent)
	assert.False(t, NewInventoryReport(Book{TotalCopies: 1, AvailableCopies: 2}, -1).Consistent)
}

func TestRentalRule(t *testing.T) {
	t.Run("Loan period", func(t *testing.T) {
		period, err := RentalRule{Name: RuleLoanPeriodDays, Value: " 7 "}.LoanPeriod()
		assert.NoError(t, err)
		assert.Equal(t, 7*24*time.Hour, period)
	})

	tests := []struct {
		name    string
		rule    RentalRule
		wantErr bool
	}{
		{"Valid loan period", RentalRule{Name: RuleLoanPeriodDays, Value: "21"}, false},
		{"Zero days", RentalRule{Name: RuleLoanPeriodDays, Value: "0"}, true},
		{"Not a number", RentalRule{Name: RuleLoanPeriodDays, Value: "two weeks"}, true},
		{"Missing name", RentalRule{Value: "x"}, true},
		{"Unknown rule stored as-is", RentalRule{Name: "MAX_RENTALS", Value: "anything"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
