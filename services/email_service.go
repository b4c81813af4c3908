package services

import (
	"bookcatalog_server/structs"
	"context"
	"fmt"
	"html"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

const activationSubject = "Activate your account"

// emailSender is the part of the Resend client used for delivery.
type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	sender emailSender
}

// NewEmailService creates a Resend-backed mailer. Without an API key emails
// are only logged, which keeps local development free of external calls.
func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	es := &EmailService{logger: logger, cfg: cfg}
	if cfg.Email.ApiKey != "" {
		es.sender = resend.NewClient(cfg.Email.ApiKey).Emails
	}
	return es
}

func (es *EmailService) SendEmail(ctx context.Context, to []string, subject, text, htmlBody string) error {
	if es.sender == nil {
		es.logger.Info("Email delivery disabled, logging message instead",
			gecho.Field("to", to),
			gecho.Field("subject", subject),
			gecho.Field("body", text),
		)
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Subject: subject,
		Text:    text,
		Html:    htmlBody,
	}

	sent, err := es.sender.SendWithContext(ctx, params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return fmt.Errorf("failed to send email: %w", err)
	}

	es.logger.Debug("Email sent", gecho.Field("id", sent.Id), gecho.Field("to", to))
	return nil
}

// SendActivationEmail delivers the account activation link.
func (es *EmailService) SendActivationEmail(ctx context.Context, email, activationURL string) error {
	text := fmt.Sprintf("To activate your account, follow the link: %s", activationURL)

	link := html.EscapeString(activationURL)
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h1>%s</h1>
		<p>Thanks for registering. Click the link below to activate your account:</p>
		<p><a href="%s">Activate account</a></p>
		<p>Link not working? Copy and paste the following URL into your browser:</p>
		<p style="word-break: break-all;">%s</p>
		<p>If you did not create an account, please ignore this email.</p>
	</div>
</body>
</html>`, activationSubject, link, link)

	return es.SendEmail(ctx, []string{email}, activationSubject, text, body)
}
