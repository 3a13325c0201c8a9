package contact

// Submission is a contact-form payload as posted by the website. It lives
// for the duration of one request and is never persisted.
type Submission struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Company     string `json:"company,omitempty"`
	ProjectType string `json:"projectType"`
	Message     string `json:"message"`
	// Honeypot is a hidden form field no human ever fills in. A non-empty
	// value marks the sender as a bot.
	Honeypot string `json:"_honeypot,omitempty"`
}

// ProjectTypes is the closed set of offerings the form presents. Labels
// must match the form options verbatim, case and spacing included.
var ProjectTypes = []string{
	"Website",
	"Aplikasi Mobile",
	"AI / ML / Deep Learning",
	"UI UX & Desain",
	"Video Production",
	"Data Engineering",
}

func validProjectType(v string) bool {
	for _, t := range ProjectTypes {
		if v == t {
			return true
		}
	}
	return false
}
