package email

import (
	"fmt"

	"benchracers_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// SMTPProvider реализует Provider поверх gomail
type SMTPProvider struct {
	cfg      *config.Config
	renderer TemplateRenderer
}

// NewSMTPProvider создает новый SMTP провайдер
func NewSMTPProvider(cfg *config.Config) (*SMTPProvider, error) {
	renderer, err := NewTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create template manager: %w", err)
	}

	p := &SMTPProvider{
		cfg:      cfg,
		renderer: renderer,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Send отправляет email сообщение
func (p *SMTPProvider) Send(email *Email) error {
	m := gomail.NewMessage()

	from := email.From
	if from == "" {
		from = p.cfg.Email.FromEmail
	}
	m.SetHeader("From", m.FormatAddress(from, p.cfg.Email.FromName))
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
	} else {
		m.SetBody("text/plain", email.Body)
	}

	d := gomail.NewDialer(
		p.cfg.Email.SMTPHost,
		p.cfg.Email.SMTPPort,
		p.cfg.Email.SMTPUsername,
		p.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}

// SendTemplate отправляет email по шаблону
func (p *SMTPProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) error {
	htmlBody, err := p.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	return p.Send(&Email{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	})
}

// SendVerification отправляет письмо верификации
func (p *SMTPProvider) SendVerification(email, token string) error {
	data := TemplateData{
		"VerifyURL": fmt.Sprintf("%s/verify?token=%s", p.cfg.FrontendURL, token),
	}
	return p.SendTemplate([]string{email}, "Verify your Bench Racers account", "verification", data)
}

// SendPasswordReset отправляет письмо сброса пароля
func (p *SMTPProvider) SendPasswordReset(email, token string) error {
	data := TemplateData{
		"ResetURL": fmt.Sprintf("%s/reset-password?token=%s", p.cfg.FrontendURL, token),
	}
	return p.SendTemplate([]string{email}, "Reset your Bench Racers password", "password_reset", data)
}

// Validate проверяет конфигурацию SMTP
func (p *SMTPProvider) Validate() error {
	if p.cfg.Email.SMTPHost == "" {
		return fmt.Errorf("SMTP host is required")
	}

	if p.cfg.Email.SMTPPort <= 0 || p.cfg.Email.SMTPPort > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", p.cfg.Email.SMTPPort)
	}

	return nil
}
