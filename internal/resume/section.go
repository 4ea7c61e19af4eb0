package resume

import "strings"

// splitLines breaks text on '\n' only; a trailing '\r' is left for trimming.
func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

func containsAny(line string, keywords []string) bool {
	lower := strings.ToLower(line)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// sectionLines returns the trimmed, non-empty lines between the first line
// matching a start keyword and the first subsequent line matching an end
// keyword. A start line seen while already inside re-enters the section and
// is skipped. Scanning stops for good at the first end line.
func sectionLines(lines []string, start, end []string) []string {
	var out []string
	inside := false
	for _, line := range lines {
		if containsAny(line, start) {
			inside = true
			continue
		}
		if !inside {
			continue
		}
		if containsAny(line, end) {
			break
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
