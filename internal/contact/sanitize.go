package contact

import "strings"

var htmlEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// Sanitize neutralizes HTML-significant characters in a user-supplied
// string bound for the notification email, then trims surrounding
// whitespace. Not idempotent: a second pass would double-escape, so each
// field is sanitized exactly once per submission.
func Sanitize(s string) string {
	return strings.TrimSpace(htmlEscaper.Replace(s))
}

// sanitized holds the escaped copies of a submission's fields. Only these
// values may reach the email body.
type sanitized struct {
	Name        string
	Email       string
	Phone       string
	Company     string
	ProjectType string
	Message     string
}

func sanitizeSubmission(s Submission) sanitized {
	company := "-"
	if s.Company != "" {
		company = Sanitize(s.Company)
	}
	return sanitized{
		Name:        Sanitize(s.Name),
		Email:       Sanitize(s.Email),
		Phone:       Sanitize(s.Phone),
		Company:     company,
		ProjectType: Sanitize(s.ProjectType),
		Message:     Sanitize(s.Message),
	}
}
