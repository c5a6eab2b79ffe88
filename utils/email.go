package utils

import (
	"fmt"

	"github.com/keighl/postmark"
)

// Mailer sends transactional mail. Failures never block a request; callers
// log and move on.
type Mailer interface {
	SendWelcomeEmail(name, email string) error
}

// EmailService sends mail through Postmark.
type EmailService struct {
	client *postmark.Client
	sender string
}

// NewEmailService initializes a Postmark-backed mailer.
func NewEmailService(apiToken, sender string) *EmailService {
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
		sender: sender,
	}
}

// SendEmail sends a basic email to the specified recipient.
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	_, err := es.client.SendEmail(postmark.Email{
		From:     es.sender,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendWelcomeEmail greets a freshly signed-up user.
func (es *EmailService) SendWelcomeEmail(name, toEmail string) error {
	subject := "Welcome to the Restaurant Directory"
	htmlContent := fmt.Sprintf(
		"<strong>Hi %s,</strong><br><br>Your account has been created. You can now list your restaurants and manage their menus.",
		name,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}
