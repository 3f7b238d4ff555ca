package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Template names used by the notification pipeline.
const (
	TemplateWelcome             = "welcome"
	TemplateApplicationReceived = "application_received"
	TemplateApplicationAccepted = "application_accepted"
	TemplateApplicationRejected = "application_rejected"
	TemplateApplicationStatus   = "application_status"
)

// TemplateManager implements TemplateRenderer over html/template.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager returns a manager preloaded with the built-in templates.
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range builtinTemplates {
		// Built-in templates are compile-checked by tests, Add never fails.
		_ = tm.AddTemplate(name, body)
	}
	return tm
}

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

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}

// TemplateNames returns the names of the loaded templates.
func (tm *TemplateManager) TemplateNames() []string {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()

	names := make([]string, 0, len(tm.templates))
	for name := range tm.templates {
		names = append(names, name)
	}
	return names
}

var builtinTemplates = map[string]string{
	TemplateWelcome: `<html><body>
<h2>Welcome to InstaLab, {{.Name}}!</h2>
<p>Your account is ready. Complete your profile to get the most out of the platform.</p>
</body></html>`,

	TemplateApplicationReceived: `<html><body>
<h2>New application for {{.JobTitle}}</h2>
<p>{{.ApplicantName}} has applied for your listing "{{.JobTitle}}".</p>
<p>Log in to review the application.</p>
</body></html>`,

	TemplateApplicationAccepted: `<html><body>
<h2>Congratulations, {{.Name}}!</h2>
<p>Your application for the position <strong>{{.JobTitle}}</strong> at {{.CompanyName}} has been accepted.</p>
<p>The company will contact you with the next steps.</p>
</body></html>`,

	TemplateApplicationRejected: `<html><body>
<h2>Update on your application</h2>
<p>Hi {{.Name}},</p>
<p>Thank you for applying for <strong>{{.JobTitle}}</strong> at {{.CompanyName}}. After careful review, the company has decided to move forward with other candidates.</p>
<p>Keep an eye on new listings, new opportunities appear every day.</p>
</body></html>`,

	TemplateApplicationStatus: `<html><body>
<h2>Your application status changed</h2>
<p>Hi {{.Name}},</p>
<p>Your application for <strong>{{.JobTitle}}</strong> at {{.CompanyName}} is now <strong>{{.Status}}</strong>.</p>
</body></html>`,
}
