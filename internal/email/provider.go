package email

// Provider sends email on behalf of the application. Every send
// returns a provider-assigned message id for correlation in logs.
type Provider interface {
	// Send delivers a prepared message.
	Send(email *Email) (string, error)

	// SendTemplate renders the named template with data and delivers it.
	SendTemplate(to []string, subject, templateName string, data TemplateData) (string, error)

	// SendPasswordResetCode delivers the fixed reset-code email.
	SendPasswordResetCode(to, code string) (string, error)

	// Validate checks the provider configuration.
	Validate() error
}
