package queue

import (
	"instalab_backend/internal/email"
)

// EmailDispatcher turns queued jobs into provider sends.
type EmailDispatcher struct {
	provider email.Provider
	from     string
}

func NewEmailDispatcher(provider email.Provider, from string) *EmailDispatcher {
	return &EmailDispatcher{provider: provider, from: from}
}

func (d *EmailDispatcher) Handle(job EmailJob) error {
	msg := &email.Email{
		From:    d.from,
		To:      job.To,
		Subject: job.Subject,
	}

	if job.TemplateName != "" {
		return d.provider.SendWithTemplate(job.TemplateName, email.TemplateData(job.Data), msg)
	}
	return d.provider.Send(msg)
}
