package email

import (
	"context"
	"sync"
)

// MockProvider запоминает отправленные письма. Используется в тестах и
// при локальной разработке без SMTP.
type MockProvider struct {
	mu   sync.Mutex
	sent []Email

	// Err возвращается из Send, если задан
	Err error
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Send(ctx context.Context, email *Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.sent = append(m.sent, *email)
	return nil
}

func (m *MockProvider) Validate() error { return nil }

// Sent возвращает копию отправленных писем
func (m *MockProvider) Sent() []Email {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Email, len(m.sent))
	copy(out, m.sent)
	return out
}

// SetErr задает ошибку отправки
func (m *MockProvider) SetErr(err error) {
	m.mu.Lock()
	m.Err = err
	m.mu.Unlock()
}
