// Package email отправляет уведомления маркетплейса: новый отзыв, отклик
// на вакансию, смена статуса отклика, новое сообщение.
package email

import "fmt"

// Message - готовое к отправке письмо
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// TemplateData - переменные шаблона письма
type TemplateData map[string]interface{}

// Provider - транспорт писем. SMTPProvider для боевого окружения,
// app.MockEmailProvider для тестов и разработки.
type Provider interface {
	Send(msg *Message) error
	SendTemplate(to []string, subject, templateName string, data TemplateData) error
	Validate() error
	Close() error
}

// SMTPConfig - параметры SMTP-сервера и отправителя
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

func (c *SMTPConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", c.Port)
	}
	if c.FromEmail == "" {
		return fmt.Errorf("sender address is required")
	}
	return nil
}
