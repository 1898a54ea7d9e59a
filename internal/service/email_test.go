package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-rental-backend/internal/domain"
)

type fakeSender struct {
	sent []*mail.SGMailV3
	resp *rest.Response
	err  error
}

func (f *fakeSender) SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	f.sent = append(f.sent, email)
	return f.resp, f.err
}

func TestSendGridEmailService_SendOverdueReminder(t *testing.T) {
	ctx := context.Background()
	borrower := &domain.User{ID: 1, Name: "Ada", Email: "ada@example.com"}
	book := &domain.Book{ID: 2, Title: "Dune", Author: "Frank Herbert"}
	rental := &domain.Rental{ID: 3, DueDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}

	t.Run("Success", func(t *testing.T) {
		sender := &fakeSender{resp: &rest.Response{StatusCode: 202}}
		svc := newSendGridEmailService(sender, "library@example.com", "City Library")

		require.NoError(t, svc.SendOverdueReminder(ctx, borrower, book, rental))
		require.Len(t, sender.sent, 1)
		msg := sender.sent[0]
		assert.Equal(t, "Overdue: Dune", msg.Subject)
		assert.Equal(t, "library@example.com", msg.From.Address)
		require.Len(t, msg.Personalizations, 1)
		assert.Equal(t, "ada@example.com", msg.Personalizations[0].To[0].Address)
		assert.Contains(t, msg.Content[0].Value, "2024-01-15")
	})

	t.Run("Rejected by provider", func(t *testing.T) {
		sender := &fakeSender{resp: &rest.Response{StatusCode: 401, Body: "unauthorized"}}
		svc := newSendGridEmailService(sender, "library@example.com", "City Library")

		err := svc.SendOverdueReminder(ctx, borrower, book, rental)
		assert.ErrorContains(t, err, "401")
	})

	t.Run("Transport error", func(t *testing.T) {
		sender := &fakeSender{err: errors.New("dial tcp: timeout")}
		svc := newSendGridEmailService(sender, "library@example.com", "City Library")

		assert.Error(t, svc.SendOverdueReminder(ctx, borrower, book, rental))
	})
}

func TestLogEmailService(t *testing.T) {
	err := NewLogEmailService().SendOverdueReminder(context.Background(),
		&domain.User{Email: "ada@example.com"}, &domain.Book{Title: "Dune"}, &domain.Rental{ID: 1})
	assert.NoError(t, err)
}
