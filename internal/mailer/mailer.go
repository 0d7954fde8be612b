package mailer

import (
	"fmt"
	"log"
	"net/smtp"
)

//go:generate mockgen -source=mailer.go -destination=../mocks/mailer_mock.go -package=mocks

// Mailer dispatches account-lifecycle emails. Sends are one-shot: a failed
// send is reported to the caller but never retried.
type Mailer interface {
	SendVerificationEmail(to, name, token string) error
	SendPasswordResetEmail(to, name, token string) error
}

// SMTPConfig holds the SMTP connection settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	AppURL   string // Base URL used to build verification/reset links
}

type smtpMailer struct {
	config SMTPConfig
}

// NewSMTPMailer creates a mailer that sends over plain SMTP
func NewSMTPMailer(config SMTPConfig) Mailer {
	return &smtpMailer{config: config}
}

type noopMailer struct{}

// NewNoopMailer returns a mailer that logs instead of sending. Used when
// SMTP is not configured, so local setups work without a mail account.
func NewNoopMailer() Mailer {
	return &noopMailer{}
}

func (*noopMailer) SendVerificationEmail(to, _, token string) error {
	log.Printf("mailer disabled: verification token for %s: %s", to, token)
	return nil
}

func (*noopMailer) SendPasswordResetEmail(to, _, token string) error {
	log.Printf("mailer disabled: password reset token for %s: %s", to, token)
	return nil
}

// SendVerificationEmail sends the email-verification link to a new user
func (m *smtpMailer) SendVerificationEmail(to, name, token string) error {
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", m.config.AppURL, token)

	subject := "Verify your email address"
	body := fmt.Sprintf(`Hello %s,

Please verify your email address by opening the link below:

%s

If you did not sign up, you can safely ignore this email.

Budget Tracker Team
`, name, verifyURL)

	return m.send(to, subject, body)
}

// SendPasswordResetEmail sends the password-reset link to a user
func (m *smtpMailer) SendPasswordResetEmail(to, name, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", m.config.AppURL, token)

	subject := "Password reset request"
	body := fmt.Sprintf(`Hello %s,

We received a request to reset your password. Open the link below to choose a new one:

%s

The link is valid for 24 hours. If you did not request this, you can safely ignore this email.

Budget Tracker Team
`, name, resetURL)

	return m.send(to, subject, body)
}

// auth returns PlainAuth when credentials are configured, nil for an
// authless relay.
func (m *smtpMailer) auth() smtp.Auth {
	if m.config.Username == "" {
		return nil
	}
	return smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
}

func (m *smtpMailer) send(to, subject, body string) error {
	if m.config.Host == "" {
		return fmt.Errorf("smtp host not configured")
	}

	from := m.config.From
	if from == "" {
		from = m.config.Username
	}
	if from == "" {
		return fmt.Errorf("smtp sender address not configured")
	}

	message := []byte(fmt.Sprintf(
		"From: Budget Tracker <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"\r\n"+
			"%s\r\n",
		from, to, subject, body))

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	if err := smtp.SendMail(addr, m.auth(), from, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
