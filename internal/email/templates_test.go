package email

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinTemplatesRender(t *testing.T) {
	tm := NewTemplateManager()

	data := TemplateData{
		"Name":          "Alice",
		"JobTitle":      "Backend Intern",
		"CompanyName":   "Acme Inc.",
		"ApplicantName": "Alice",
		"Status":        "reviewing",
	}

	for name := range builtinTemplates {
		body, err := tm.Render(name, data)
		require.NoError(t, err, "template %s", name)
		assert.NotEmpty(t, body)
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	tm := NewTemplateManager()

	body, err := tm.Render(TemplateWelcome, TemplateData{"Name": "<script>alert(1)</script>"})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	tm := NewTemplateManager()

	_, err := tm.Render("nope", nil)
	assert.Error(t, err)
}

func TestAddTemplateOverrides(t *testing.T) {
	tm := NewTemplateManager()
	require.NoError(t, tm.AddTemplate(TemplateWelcome, `Hello {{.Name}}`))

	body, err := tm.Render(TemplateWelcome, TemplateData{"Name": "Bob"})
	require.NoError(t, err)
	assert.Equal(t, "Hello Bob", body)
}

func TestTemplateNames(t *testing.T) {
	tm := NewTemplateManager()
	names := tm.TemplateNames()

	assert.Len(t, names, len(builtinTemplates))
	assert.True(t, contains(names, TemplateApplicationAccepted))
}

func contains(names []string, want string) bool {
	for _, name := range names {
		if strings.EqualFold(name, want) {
			return true
		}
	}
	return false
}
