// Package credentials defines the login input contract and its validation
// rules. Validation produces per-field messages so a caller can mark
// individual form fields instead of showing one opaque error.
package credentials

import (
	"net/mail"
	"sort"
	"strings"
)

// Input is the raw, not-yet-validated submission as it arrives from a form
// or a JSON request body. RememberMe is optional; absence means false.
type Input struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe,omitempty"`
}

// Credentials is a validated, normalized submission.
type Credentials struct {
	Email      string
	Password   string
	RememberMe bool
}

// FieldErrors maps a field name to the message for the rule it violated.
// It implements error so validation results can travel through error-shaped
// plumbing when convenient.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed:")
	for _, f := range fields {
		b.WriteString(" ")
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(e[f])
		b.WriteString(";")
	}
	return strings.TrimSuffix(b.String(), ";")
}

// Validate checks in against the schema and returns the normalized
// Credentials. On failure the returned FieldErrors is non-nil and carries one
// message per violated rule; the Credentials value is then zero and must not
// be used.
func Validate(in Input) (Credentials, FieldErrors) {
	errs := FieldErrors{}

	switch {
	case in.Email == "":
		errs["email"] = "email is required"
	case !isEmailAddress(in.Email):
		errs["email"] = "email must be a valid email address"
	}

	if in.Password == "" {
		errs["password"] = "password is required"
	}

	if len(errs) > 0 {
		return Credentials{}, errs
	}

	return Credentials{
		Email:      in.Email,
		Password:   in.Password,
		RememberMe: in.RememberMe,
	}, nil
}

// isEmailAddress reports whether s is a plain address (no display name,
// no angle brackets) with a dotted domain, e.g. "user@example.com".
func isEmailAddress(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	domain := s[at+1:]
	if !strings.Contains(domain, ".") {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	return true
}
