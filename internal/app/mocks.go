package app

import (
	"sync"

	"trainertrust_backend/internal/email"
	"trainertrust_backend/internal/logger"
)

// MockEmailProvider используется для тестов и локальной разработки:
// письма не отправляются, а запоминаются и пишутся в лог.
type MockEmailProvider struct {
	mu   sync.Mutex
	sent []SentEmail
}

type SentEmail struct {
	To       []string
	Subject  string
	Template string
	Data     email.TemplateData
}

func (m *MockEmailProvider) Send(msg *email.Message) error {
	m.record(SentEmail{To: msg.To, Subject: msg.Subject})
	return nil
}

func (m *MockEmailProvider) SendTemplate(to []string, subject string, templateName string, data email.TemplateData) error {
	m.record(SentEmail{To: to, Subject: subject, Template: templateName, Data: data})
	return nil
}

func (m *MockEmailProvider) Validate() error { return nil }
func (m *MockEmailProvider) Close() error    { return nil }

// Sent возвращает копию отправленных писем
func (m *MockEmailProvider) Sent() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentEmail, len(m.sent))
	copy(out, m.sent)
	return out
}

func (m *MockEmailProvider) record(e SentEmail) {
	m.mu.Lock()
	m.sent = append(m.sent, e)
	m.mu.Unlock()
	logger.Debug("mock email", "to", e.To, "subject", e.Subject, "template", e.Template)
}
