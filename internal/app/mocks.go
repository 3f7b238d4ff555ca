package app

import (
	"instalab_backend/internal/email"
	"instalab_backend/internal/logger"
)

// MockEmailProvider is used in tests and local development.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(msg *email.Email) error {
	logger.GetLogger().Info("mock email", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (m *MockEmailProvider) SendWithTemplate(templateName string, data email.TemplateData, msg *email.Email) error {
	logger.GetLogger().Info("mock templated email", "to", msg.To, "template", templateName)
	return nil
}

func (m *MockEmailProvider) Validate() error { return nil }
func (m *MockEmailProvider) Close() error    { return nil }
