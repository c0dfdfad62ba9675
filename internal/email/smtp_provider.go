package email

import (
	"crypto/tls"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// SMTPProvider implements Provider over SMTP via gomail.
type SMTPProvider struct {
	config    *SMTPConfig
	dialer    *gomail.Dialer
	templates *TemplateManager
}

func NewSMTPProvider(config *SMTPConfig) (*SMTPProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}

	tm, err := NewTemplateManager()
	if err != nil {
		return nil, err
	}

	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if config.UseTLS {
		dialer.TLSConfig = &tls.Config{ServerName: config.Host}
	}

	return &SMTPProvider{
		config:    config,
		dialer:    dialer,
		templates: tm,
	}, nil
}

func (p *SMTPProvider) Send(email *Email) (string, error) {
	if len(email.To) == 0 {
		return "", fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()

	from := email.From
	if from == "" {
		from = p.config.FromEmail
	}
	m.SetAddressHeader("From", from, p.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			m.AddAlternative("text/plain", email.Body)
		}
	} else {
		m.SetBody("text/plain", email.Body)
	}

	// SMTP has no message id in the submission response; assign one
	// locally so callers can correlate sends in logs.
	messageID := uuid.NewString()
	m.SetHeader("Message-ID", fmt.Sprintf("<%s@unifit>", messageID))

	if err := p.dialer.DialAndSend(m); err != nil {
		return "", fmt.Errorf("smtp send failed: %w", err)
	}
	return messageID, nil
}

func (p *SMTPProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) (string, error) {
	htmlBody, err := p.templates.Render(templateName, data)
	if err != nil {
		return "", err
	}

	return p.Send(&Email{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	})
}

func (p *SMTPProvider) SendPasswordResetCode(to, code string) (string, error) {
	return p.SendTemplate(
		[]string{to},
		passwordResetSubject,
		"password_reset_code",
		TemplateData{"Code": code},
	)
}

func (p *SMTPProvider) Validate() error {
	return p.config.Validate()
}
