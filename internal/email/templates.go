package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateManager реализует TemplateRenderer для писем
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// Встроенные шаблоны. Каталог с .html файлами их переопределяет,
// но сервис работает и без него.
var builtinTemplates = map[string]string{
	"verification": `<html><body>
<h2>Welcome to Bench Racers!</h2>
<p>Confirm your email to start posting your builds:</p>
<p><a href="{{.VerifyURL}}">Verify my email</a></p>
<p>If you did not sign up, ignore this message.</p>
</body></html>`,

	"password_reset": `<html><body>
<h2>Password reset</h2>
<p>Someone requested a password reset for your Bench Racers account.</p>
<p><a href="{{.ResetURL}}">Reset my password</a></p>
<p>The link expires in 1 hour. If this wasn't you, ignore this message.</p>
</body></html>`,
}

// NewTemplateManager создает менеджер с встроенными шаблонами
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}

	for name, tpl := range builtinTemplates {
		if err := tm.AddTemplate(name, tpl); err != nil {
			return nil, err
		}
	}

	return tm, nil
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}
