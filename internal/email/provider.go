package email

// Provider sends outbound mail.
type Provider interface {
	// Send delivers a single message.
	Send(email *Email) error

	// SendWithTemplate renders templateName with data and delivers the result.
	SendWithTemplate(templateName string, data TemplateData, email *Email) error

	// Validate checks the provider configuration.
	Validate() error

	// Close releases provider resources.
	Close() error
}

// TemplateRenderer renders named html templates.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
}
