package resume

import "regexp"

var (
	educationStart = []string{"education", "academic"}
	educationEnd   = []string{"experience", "work", "skills"}

	degreeKeywords      = []string{"Bachelor", "Master", "PhD", "B.S.", "M.S.", "B.A.", "M.A.", "B.Tech", "M.Tech"}
	institutionKeywords = []string{"University", "College", "Institute", "School"}

	yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// ExtractEducation builds one entry per non-empty line of the education
// section. When there is no such line a single placeholder entry is returned.
func ExtractEducation(text string) []Education {
	var entries []Education
	for _, line := range sectionLines(splitLines(text), educationStart, educationEnd) {
		entries = append(entries, Education{
			Degree:      lineIfContains(line, degreeKeywords, DegreeNotSpecified),
			Institution: lineIfContains(line, institutionKeywords, InstitutionUnknown),
			Year:        firstMatch(yearPattern, line, YearNotSpecified),
			GPA:         NotAvailable,
		})
	}

	if len(entries) == 0 {
		return []Education{{
			Degree:      EducationNotFound,
			Institution: NotAvailable,
			Year:        NotAvailable,
			GPA:         NotAvailable,
		}}
	}
	return entries
}

func lineIfContains(line string, keywords []string, fallback string) string {
	if containsAny(line, keywords) {
		return line
	}
	return fallback
}

func firstMatch(re *regexp.Regexp, line, fallback string) string {
	if m := re.FindString(line); m != "" {
		return m
	}
	return fallback
}
