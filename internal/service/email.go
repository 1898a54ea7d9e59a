package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"library-rental-backend/internal/domain"
	"library-rental-backend/internal/logger"
)

const sendGridService = "sendgrid"

type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridEmailService struct {
	client   mailSender
	from     string
	fromName string
}

func NewSendGridEmailService(apiKey, from, fromName string) EmailService {
	return newSendGridEmailService(sendgrid.NewSendClient(apiKey), from, fromName)
}

func newSendGridEmailService(client mailSender, from, fromName string) *sendGridEmailService {
	return &sendGridEmailService{client: client, from: from, fromName: fromName}
}

func (s *sendGridEmailService) SendOverdueReminder(ctx context.Context, borrower *domain.User, book *domain.Book, rental *domain.Rental) error {
	subject, body := overdueReminderContent(borrower, book, rental)
	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.from),
		subject,
		mail.NewEmail(borrower.Name, borrower.Email),
		body,
		"",
	)

	logger.ExternalServiceCall(sendGridService, "SendOverdueReminder", "rental_id", rental.ID, "to", borrower.Email)
	resp, err := s.client.SendWithContext(ctx, message)
	if err == nil && resp.StatusCode >= 300 {
		err = fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	logger.ExternalServiceResult(sendGridService, "SendOverdueReminder", err, "rental_id", rental.ID)
	if err != nil {
		return fmt.Errorf("failed to send overdue reminder: %w", err)
	}
	return nil
}

// logEmailService writes reminders to the log instead of delivering them.
type logEmailService struct{}

func NewLogEmailService() EmailService {
	return logEmailService{}
}

func (logEmailService) SendOverdueReminder(ctx context.Context, borrower *domain.User, book *domain.Book, rental *domain.Rental) error {
	subject, _ := overdueReminderContent(borrower, book, rental)
	logger.InfoContext(ctx, "Overdue reminder",
		"to", borrower.Email,
		"subject", subject,
		"rental_id", rental.ID)
	return nil
}

func overdueReminderContent(borrower *domain.User, book *domain.Book, rental *domain.Rental) (string, string) {
	subject := fmt.Sprintf("Overdue: %s", book.Title)
	body := fmt.Sprintf("Hello %s,\n\nYour rental of \"%s\" by %s was due on %s. Please return it as soon as possible.\n\nThank you,\nThe Library",
		borrower.Name, book.Title, book.Author, rental.DueDate.Format(time.DateOnly))
	return subject, body
}
