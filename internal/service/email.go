package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"

	"wheelhub-backend/internal/logger"
)

type sendGridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridSender struct {
	client    sendGridClient
	fromEmail string
	fromName  string
}

func NewSendGridSender(apiKey, fromEmail, fromName string) EmailSender {
	return &sendGridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridSender) SendEmail(ctx context.Context, toEmail, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	logger.ExternalServiceCall("sendgrid", "send", "to", toEmail)
	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		err = fmt.Errorf("failed to send email: %w", err)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	if response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "send", nil, "status_code", response.StatusCode)
	return nil
}

type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// smtpSender is the fallback for deployments without a SendGrid account.
type smtpSender struct {
	dialer mailDialer
	from   string
}

func NewSMTPSender(host string, port int, username, password, from string) EmailSender {
	return &smtpSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *smtpSender) SendEmail(ctx context.Context, toEmail, toName, subject, plainText, htmlContent string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetAddressHeader("To", toEmail, toName)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainText)
	if htmlContent != "" {
		m.AddAlternative("text/html", htmlContent)
	}

	logger.ExternalServiceCall("smtp", "send", "to", toEmail)
	if err := s.dialer.DialAndSend(m); err != nil {
		err = fmt.Errorf("failed to send email via gomail: %w", err)
		logger.ExternalServiceResult("smtp", "send", err)
		return err
	}
	logger.ExternalServiceResult("smtp", "send", nil)
	return nil
}
