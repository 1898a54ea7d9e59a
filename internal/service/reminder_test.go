package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"library-rental-backend/internal/domain"
	"library-rental-backend/internal/service"
)

func TestReminderService_SendOverdueReminders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	book := f.addBook(t, 3)
	ada := f.addUser(t)
	bob := domain.User{Name: "Bob", Email: "bob@example.com"}
	require.NoError(t, f.store.Users().Create(ctx, &bob))

	late, err := f.rentals.CreateRental(ctx, book.ID, ada.ID, t0)
	require.NoError(t, err)
	failing, err := f.rentals.CreateRental(ctx, book.ID, bob.ID, t0)
	require.NoError(t, err)
	_, err = f.rentals.CreateRental(ctx, book.ID, ada.ID, t0.AddDate(0, 0, 10))
	require.NoError(t, err)

	_, err = f.overdue.Sweep(ctx, t0.AddDate(0, 0, 20))
	require.NoError(t, err)

	emailSvc := new(MockEmailService)
	emailSvc.On("SendOverdueReminder", ctx, mock.MatchedBy(func(u *domain.User) bool { return u.ID == ada.ID }),
		mock.AnythingOfType("*domain.Book"),
		mock.MatchedBy(func(r *domain.Rental) bool { return r.ID == late.ID })).Return(nil).Once()
	emailSvc.On("SendOverdueReminder", ctx, mock.MatchedBy(func(u *domain.User) bool { return u.ID == bob.ID }),
		mock.AnythingOfType("*domain.Book"),
		mock.MatchedBy(func(r *domain.Rental) bool { return r.ID == failing.ID })).Return(errors.New("mailbox full")).Once()

	sent, err := service.NewReminderService(f.store, emailSvc).SendOverdueReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	emailSvc.AssertExpectations(t)
}
