package email

import (
	"fmt"
	"strings"
	"sync"
	"text/template"
)

// Имена встроенных шаблонов писем
const (
	TemplateSubmission = "submission"
	TemplateContact    = "contact"
)

const submissionTemplate = `Name: {{.Name}}
Contact: {{.Contact}}
Brand: {{.Brand}}
Value: {{.Value}}
Code: {{or .Code "(none)"}}
Image: {{or .Image "(none)"}}
Time: {{.Timestamp}}`

const contactTemplate = `Name: {{.Name}}
Email: {{.Email}}

Message:
{{.Message}}`

// TemplateManager реализует TemplateRenderer для текстовых писем
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер шаблонов
func NewTemplateManager() *TemplateManager {
	return &TemplateManager{
		templates: make(map[string]*template.Template),
	}
}

// NewDefaultTemplateManager создает менеджер со встроенными шаблонами
func NewDefaultTemplateManager() *TemplateManager {
	tm := NewTemplateManager()
	for name, body := range map[string]string{
		TemplateSubmission: submissionTemplate,
		TemplateContact:    contactTemplate,
	} {
		if err := tm.AddTemplate(name, body); err != nil {
			panic(err)
		}
	}
	return tm
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
	tpl, err := template.New(name).Option("missingkey=zero").Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}
