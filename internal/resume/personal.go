package resume

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[-\s]?)?\(?\d{3}\)?[-\s]?\d{3}[-\s]?\d{4}`)

	addressKeywords = []string{"address", "street", "city"}
)

// ExtractPersonalInfo pulls name, email, phone and address out of the text.
// Fields with no match are set to NotFound.
func ExtractPersonalInfo(text string) PersonalInfo {
	lines := splitLines(text)
	return PersonalInfo{
		Name:    orNotFound(firstNonEmptyLine(lines)),
		Email:   orNotFound(emailPattern.FindString(text)),
		Phone:   orNotFound(phonePattern.FindString(text)),
		Address: orNotFound(findAddress(lines)),
	}
}

func firstNonEmptyLine(lines []string) string {
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func findAddress(lines []string) string {
	for _, line := range lines {
		if containsAny(line, addressKeywords) || commaSegments(line) >= 2 {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

// commaSegments counts comma separated parts, ignoring trailing empty ones,
// so "Acme," is a single segment while ", Acme" is two.
func commaSegments(line string) int {
	if !strings.Contains(line, ",") {
		return 0
	}
	parts := strings.Split(line, ",")
	n := len(parts)
	for n > 0 && parts[n-1] == "" {
		n--
	}
	return n
}

func orNotFound(s string) string {
	if s == "" {
		return NotFound
	}
	return s
}
