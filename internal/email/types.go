package email

// Email is a single outgoing message.
type Email struct {
	From     string
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData is the payload rendered into an email template.
type TemplateData map[string]interface{}
