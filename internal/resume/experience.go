package resume

import "regexp"

var (
	experienceStart = []string{"experience", "work", "employment"}
	experienceEnd   = []string{"education", "skills", "projects"}

	positionKeywords = []string{"Developer", "Engineer", "Manager", "Analyst", "Consultant", "Intern"}

	durationPattern = regexp.MustCompile(`(?i)\b\d{4}\s*-\s*(\d{4}|present)\b`)
)

// ExtractExperience builds one entry per non-empty line of the experience
// section. Company and description are the raw line; no attempt is made to
// split a position from an employer.
func ExtractExperience(text string) []Experience {
	var entries []Experience
	for _, line := range sectionLines(splitLines(text), experienceStart, experienceEnd) {
		entries = append(entries, Experience{
			Position:    lineIfContains(line, positionKeywords, PositionNotSpecified),
			Company:     line,
			Duration:    firstMatch(durationPattern, line, DurationNotSpecified),
			Description: line,
		})
	}

	if len(entries) == 0 {
		return []Experience{{
			Position:    ExperienceNotFound,
			Company:     NotAvailable,
			Duration:    NotAvailable,
			Description: NoExperienceDetails,
		}}
	}
	return entries
}
