package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// IsValidEmail is a syntactic check only: a non-empty local part, one
// '@', a domain containing a dot, and no whitespace anywhere. No DNS or
// deliverability verification. Applied both at the binding layer and
// again inside the auth service.
func IsValidEmail(s string) bool {
	if strings.ContainsAny(s, " \t\n\r") {
		return false
	}

	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") {
		return false
	}

	local, domain := s[:at], s[at+1:]
	if local == "" || domain == "" {
		return false
	}

	dot := strings.Index(domain, ".")
	// The dot must separate non-empty labels.
	return dot > 0 && dot < len(domain)-1
}

func registerCustomRules(v *validator.Validate) {
	// plain_email mirrors the client-side check rather than the much
	// stricter RFC 5322 parser behind the builtin "email" tag.
	_ = v.RegisterValidation("plain_email", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
}
