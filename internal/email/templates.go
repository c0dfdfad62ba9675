package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// Subject line of the reset-code email.
const passwordResetSubject = "Your UniFit password reset code"

// Built-in templates. The reset-code body is a fixed template; only
// the code varies.
var defaultTemplates = map[string]string{
	"password_reset_code": `
<html>
  <body style="font-family: sans-serif;">
    <h2>Password reset</h2>
    <p>Your password reset code is:</p>
    <p style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">{{.Code}}</p>
    <p>The code is valid for 10 minutes. If you did not request a reset, you can ignore this email.</p>
  </body>
</html>`,
}

// TemplateManager renders HTML email bodies.
type TemplateManager struct {
	templates map[string]*template.Template
}

func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}

	for name, raw := range defaultTemplates {
		tpl, err := template.New(name).Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %q: %w", name, err)
		}
		tm.templates[name] = tpl
	}
	return tm, nil
}

// Render produces the HTML body for the named template.
func (tm *TemplateManager) Render(name string, data TemplateData) (string, error) {
	tpl, ok := tm.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown email template: %s", name)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", name, err)
	}
	return buf.String(), nil
}
