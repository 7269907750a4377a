package email

import (
	"strings"
	"time"
)

// SMTPConfig содержит конфигурацию SMTP сервера
type SMTPConfig struct {
	Service   string // gmail, outlook, yahoo; заполняет Host/Port, если они пусты
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	SSL       bool // implicit TLS (обычно порт 465)
	Timeout   time.Duration
}

// DefaultTimeout ограничивает одну отправку
const DefaultTimeout = 30 * time.Second

// Порты по умолчанию, если EMAIL_PORT не задан
const (
	DefaultPort    = 587 // STARTTLS
	DefaultSSLPort = 465 // implicit TLS
)

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *SMTPConfig {
	return &SMTPConfig{
		Timeout: DefaultTimeout,
	}
}

type wellKnownService struct {
	host string
	port int
	ssl  bool
}

var wellKnownServices = map[string]wellKnownService{
	"gmail":   {host: "smtp.gmail.com", port: 587},
	"outlook": {host: "smtp.office365.com", port: 587},
	"hotmail": {host: "smtp.office365.com", port: 587},
	"yahoo":   {host: "smtp.mail.yahoo.com", port: 465, ssl: true},
}

// ResolveService подставляет хост и порт известного почтового сервиса.
// Явно заданный Host имеет приоритет. Если порт так и не задан,
// берётся 465 для SSL и 587 для остальных.
func (c *SMTPConfig) ResolveService() {
	if c.Host == "" && c.Service != "" {
		if svc, ok := wellKnownServices[strings.ToLower(strings.TrimSpace(c.Service))]; ok {
			c.Host = svc.host
			if c.Port == 0 {
				c.Port = svc.port
			}
			if svc.ssl {
				c.SSL = true
			}
		}
	}

	if c.Port == 0 {
		c.Port = DefaultPort
		if c.SSL {
			c.Port = DefaultSSLPort
		}
	}
}

// HasCredentials - заданы ли логин и пароль SMTP
func (c *SMTPConfig) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

// Sender возвращает адрес отправителя, по умолчанию логин SMTP
func (c *SMTPConfig) Sender() string {
	if c.FromEmail != "" {
		return c.FromEmail
	}
	return c.Username
}
