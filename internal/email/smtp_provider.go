package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPProvider отправляет письма через gomail. Соединение открывается на каждое письмо.
type SMTPProvider struct {
	cfg      SMTPConfig
	dialer   *gomail.Dialer
	renderer Renderer
}

func NewSMTPProvider(cfg SMTPConfig, renderer Renderer) *SMTPProvider {
	return &SMTPProvider{
		cfg:      cfg,
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		renderer: renderer,
	}
}

func (p *SMTPProvider) Send(msg *Message) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}
	return p.dialer.DialAndSend(p.compose(msg))
}

func (p *SMTPProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) error {
	if p.renderer == nil {
		return fmt.Errorf("template renderer is not configured")
	}
	html, err := p.renderer.Render(templateName, data)
	if err != nil {
		return err
	}
	return p.Send(&Message{To: to, Subject: subject, HTML: html})
}

func (p *SMTPProvider) Validate() error {
	return p.cfg.validate()
}

func (p *SMTPProvider) Close() error { return nil }

func (p *SMTPProvider) compose(msg *Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.cfg.FromEmail, p.cfg.FromName)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)

	if msg.HTML == "" {
		m.SetBody("text/plain", msg.Text)
		return m
	}
	if msg.Text == "" {
		m.SetBody("text/html", msg.HTML)
		return m
	}
	m.SetBody("text/plain", msg.Text)
	m.AddAlternative("text/html", msg.HTML)
	return m
}
