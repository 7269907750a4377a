package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPProvider реализует Provider поверх gomail
type SMTPProvider struct {
	config *SMTPConfig
	dialer *gomail.Dialer
}

// NewSMTPProvider создает новый SMTP провайдер
func NewSMTPProvider(config *SMTPConfig) *SMTPProvider {
	cfg := *config
	cfg.ResolveService()
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.SSL = cfg.SSL
	dialer.TLSConfig = &tls.Config{ServerName: cfg.Host}

	return &SMTPProvider{
		config: &cfg,
		dialer: dialer,
	}
}

// Send отправляет email сообщение
func (p *SMTPProvider) Send(ctx context.Context, email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}

	msg, err := p.buildMessage(email)
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	// gomail не принимает context, поэтому ждём результат в отдельной горутине
	done := make(chan error, 1)
	go func() {
		done <- p.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email via %s:%d: %w", p.config.Host, p.config.Port, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("email delivery aborted: %w", ctx.Err())
	}
}

// Validate проверяет конфигурацию SMTP
func (p *SMTPProvider) Validate() error {
	if p.config.Host == "" {
		return errors.New("SMTP host is required")
	}

	if p.config.Port <= 0 || p.config.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", p.config.Port)
	}

	if !p.config.HasCredentials() {
		return errors.New("SMTP credentials are required")
	}

	return nil
}

// Config возвращает итоговую конфигурацию (после подстановки сервиса)
func (p *SMTPProvider) Config() SMTPConfig {
	return *p.config
}

func (p *SMTPProvider) buildMessage(email *Email) (*gomail.Message, error) {
	if len(email.To) == 0 {
		return nil, errors.New("no recipients")
	}

	from := email.From
	if from == "" {
		from = p.config.Sender()
	}
	fromName := email.FromName
	if fromName == "" {
		fromName = p.config.FromName
	}

	m := gomail.NewMessage()
	if fromName != "" {
		m.SetAddressHeader("From", from, fromName)
	} else {
		m.SetHeader("From", from)
	}
	m.SetHeader("To", email.To...)
	if email.ReplyTo != "" {
		m.SetHeader("Reply-To", email.ReplyTo)
	}
	m.SetHeader("Subject", email.Subject)

	switch {
	case email.Body != "" && email.HTMLBody != "":
		m.SetBody("text/plain", email.Body)
		m.AddAlternative("text/html", email.HTMLBody)
	case email.HTMLBody != "":
		m.SetBody("text/html", email.HTMLBody)
	default:
		m.SetBody("text/plain", email.Body)
	}

	return m, nil
}
