package email

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinTemplates_Render(t *testing.T) {
	tm, err := NewBuiltinTemplateSet()
	require.NoError(t, err)
	assert.Equal(t, []string{
		TemplateApplicationReceived,
		TemplateApplicationStatus,
		TemplateMessageReceived,
		TemplateReviewReceived,
	}, tm.Names())

	html, err := tm.Render(TemplateReviewReceived, TemplateData{
		"RecipientName": "Dana",
		"ReviewerName":  "Acme <Training>",
		"Rating":        4,
		"JobTitle":      "Go bootcamp",
		"AppURL":        "https://app.example",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Hi Dana")
	assert.Contains(t, html, "4-star review")
	assert.Contains(t, html, "Go bootcamp")
	// html/template экранирует пользовательский ввод
	assert.Contains(t, html, "Acme &lt;Training&gt;")

	_, err = tm.Render("missing", nil)
	assert.Error(t, err)
}

func TestTemplateSet_LoadFS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.html"), []byte("<b>{{.Name}}</b>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	tm := NewTemplateSet()
	require.NoError(t, tm.LoadFS(os.DirFS(dir)))
	assert.Equal(t, []string{"custom"}, tm.Names())

	out, err := tm.Render("custom", TemplateData{"Name": "x"})
	require.NoError(t, err)
	assert.Equal(t, "<b>x</b>", out)
}

func TestSMTPProvider_Validate(t *testing.T) {
	p := NewSMTPProvider(SMTPConfig{Host: "smtp.example.com", Port: 587, FromEmail: "noreply@example.com"}, nil)
	assert.NoError(t, p.Validate())

	assert.Error(t, NewSMTPProvider(SMTPConfig{Port: 587, FromEmail: "a@b.c"}, nil).Validate())
	assert.Error(t, NewSMTPProvider(SMTPConfig{Host: "h", Port: 70000, FromEmail: "a@b.c"}, nil).Validate())
	assert.Error(t, NewSMTPProvider(SMTPConfig{Host: "h", Port: 25}, nil).Validate())

	// без рендерера шаблонные письма не отправляются
	assert.Error(t, p.SendTemplate([]string{"a@b.c"}, "s", TemplateReviewReceived, nil))
	assert.Error(t, p.Send(&Message{Subject: "no recipients"}))
}
