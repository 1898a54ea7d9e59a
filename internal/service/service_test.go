package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"library-rental-backend/internal/domain"
	"library-rental-backend/internal/repository/memory"
	"library-rental-backend/internal/service"
)

var t0 = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store     *memory.Store
	rules     service.RentalRuleService
	rentals   service.RentalService
	overdue   service.OverdueService
	inventory service.InventoryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	rules := service.NewRentalRuleService(store.RentalRules(), domain.DefaultLoanPeriod, func() time.Time { return t0 })
	return &fixture{
		store:     store,
		rules:     rules,
		rentals:   service.NewRentalService(store, rules),
		overdue:   service.NewOverdueService(store, 2),
		inventory: service.NewInventoryService(store.Books(), store.Rentals()),
	}
}

func (f *fixture) addBook(t *testing.T, copies int32) domain.Book {
	t.Helper()
	b := domain.Book{Title: "Dune", Author: "Frank Herbert", TotalCopies: copies, AvailableCopies: copies}
	require.NoError(t, f.store.Books().Create(context.Background(), &b))
	return b
}

func (f *fixture) addUser(t *testing.T) domain.User {
	t.Helper()
	u := domain.User{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, f.store.Users().Create(context.Background(), &u))
	return u
}

func (f *fixture) available(t *testing.T, bookID int32) int32 {
	t.Helper()
	b, err := f.store.Books().GetByID(context.Background(), bookID)
	require.NoError(t, err)
	return b.AvailableCopies
}

func (f *fixture) requireConsistent(t *testing.T, bookID int32) {
	t.Helper()
	report, err := f.inventory.CheckInventory(context.Background(), bookID)
	require.NoError(t, err)
	require.True(t, report.Consistent, "inventory report: %+v", report)
}
