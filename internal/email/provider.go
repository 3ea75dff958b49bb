package email

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет простое email сообщение
	Send(email *Email) error

	// SendTemplate отправляет email по шаблону
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// SendVerification отправляет email верификации
	SendVerification(email string, token string) error

	// SendPasswordReset отправляет ссылку для сброса пароля
	SendPasswordReset(email string, token string) error

	// Validate проверяет конфигурацию провайдера
	Validate() error
}

// TemplateRenderer определяет интерфейс для рендеринга шаблонов
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
}
