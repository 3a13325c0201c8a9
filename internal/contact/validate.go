package contact

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ValidationError carries a machine-readable code and the user-facing
// message shown under the form. Messages are Indonesian to match the
// site's locale.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Code + ": " + e.Message
}

var (
	// A minimal "looks like an email" shape, not RFC 5322.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Indonesian mobile numbers: 08..., 628..., +628... after separators
	// are stripped.
	phonePattern    = regexp.MustCompile(`^(\+62|62|0)8[1-9][0-9]{7,11}$`)
	phoneSeparators = strings.NewReplacer(" ", "", "-", "")
)

// Validate applies the form rules in a fixed order and reports the first
// failure. The required-fields check runs first; every later rule assumes
// its field is present.
func Validate(s Submission) *ValidationError {
	if s.Name == "" || s.Email == "" || s.Phone == "" || s.ProjectType == "" || s.Message == "" {
		return &ValidationError{
			Code:    "required_fields",
			Message: "Nama, email, no. HP, jenis project, dan pesan wajib diisi.",
		}
	}

	if utf8.RuneCountInString(s.Name) > 100 {
		return &ValidationError{
			Code:    "invalid_name",
			Message: "Nama tidak valid (maks 100 karakter).",
		}
	}

	if utf8.RuneCountInString(s.Email) > 320 || !emailPattern.MatchString(s.Email) {
		return &ValidationError{
			Code:    "invalid_email",
			Message: "Format email tidak valid.",
		}
	}

	if n := utf8.RuneCountInString(s.Message); n < 10 || n > 2000 {
		return &ValidationError{
			Code:    "invalid_message",
			Message: "Pesan harus antara 10 - 2000 karakter.",
		}
	}

	if s.Company != "" && utf8.RuneCountInString(s.Company) > 100 {
		return &ValidationError{
			Code:    "invalid_company",
			Message: "Nama perusahaan tidak valid (maks 100 karakter).",
		}
	}

	if !phonePattern.MatchString(phoneSeparators.Replace(s.Phone)) {
		return &ValidationError{
			Code:    "invalid_phone",
			Message: "Format nomor HP/WhatsApp tidak valid.",
		}
	}

	if !validProjectType(s.ProjectType) {
		return &ValidationError{
			Code:    "invalid_project_type",
			Message: "Jenis project tidak valid.",
		}
	}

	return nil
}
