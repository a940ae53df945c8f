package email

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	FromEmail  string
	FromName   string
	AdminEmail string
}

// SMTPProvider implements Provider over gomail.
type SMTPProvider struct {
	config *SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPProvider(config *SMTPConfig) *SMTPProvider {
	return &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

func (p *SMTPProvider) Validate() error {
	if p.config.Host == "" || p.config.Port == 0 {
		return errors.New("smtp host and port are required")
	}
	if p.config.FromEmail == "" {
		return errors.New("from email is required")
	}
	return nil
}

func (p *SMTPProvider) Send(email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	from := email.From
	if from == "" {
		from = p.config.FromEmail
	}
	if p.config.FromName != "" {
		m.SetAddressHeader("From", from, p.config.FromName)
	} else {
		m.SetHeader("From", from)
	}
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/plain", email.Body)

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (p *SMTPProvider) SendAdminAlert(subject, body string) error {
	if p.config.AdminEmail == "" {
		return errors.New("admin email is not configured")
	}
	return p.Send(&Email{
		To:      []string{p.config.AdminEmail},
		Subject: subject,
		Body:    body,
	})
}
