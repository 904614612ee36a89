package site

import "time"

// Site is the complete set of pages produced by one build.
type Site struct {
	Pages         []*Page               `json:"pages"`
	Configuration TemplateConfiguration `json:"configuration"`
	BuildID       string                `json:"buildID"`
	CommitHash    string                `json:"commitHash"`
	GeneratedDate time.Time             `json:"generatedDate"`
}

// FormattedDate returns the generation time as a medium date and short time
// in the configured locale.
func (s *Site) FormattedDate() string {
	return FormatDateTime(s.GeneratedDate, s.Configuration.Locale())
}
