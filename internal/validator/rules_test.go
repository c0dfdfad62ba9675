package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"a@b.co",
		"student@university.ac.kr",
		"first.last@example.com",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), "expected %q to be valid", email)
	}

	invalid := []string{
		"a@b",           // no dot in domain
		"a b@c.com",     // whitespace in local part
		"noatsign.com",  // missing @
		"@example.com",  // empty local part
		"user@",         // empty domain
		"user@.com",     // dot cannot lead the domain
		"user@domain.",  // dot cannot end the domain
		"a@b@c.com",     // two @
		"user@dom ain.com",
		"",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), "expected %q to be invalid", email)
	}
}

func TestValidator_PlainEmailTag(t *testing.T) {
	v := New()

	type form struct {
		Email string `json:"email" validate:"required,plain_email"`
	}

	assert.NoError(t, v.Validate(&form{Email: "a@b.co"}))

	err := v.Validate(&form{Email: "a@b"})
	assert.Error(t, err)

	vErr, ok := err.(*ValidationError)
	assert.True(t, ok)
	assert.Contains(t, vErr.Errors, "email")
}
