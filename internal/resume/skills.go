package resume

import (
	"regexp"
	"strings"
	"unicode/utf16"
)

// knownSkills is matched case-insensitively against the whole text, in order.
var knownSkills = []string{
	"Java", "Python", "JavaScript", "React", "Spring", "Spring Boot",
	"Node.js", "HTML", "CSS", "SQL", "MySQL", "PostgreSQL",
	"MongoDB", "Git", "Docker", "AWS", "Azure", "REST API",
	"Microservices", "Angular", "Vue.js", "TypeScript", "C++", "C#",
}

var (
	skillsStart = []string{"skills", "technologies", "technical"}
	skillsEnd   = []string{"experience", "education", "work"}

	skillDelimiters = regexp.MustCompile(`[,:|•]`)
)

// ExtractSkills returns vocabulary hits followed by tokens from the skills
// section. The result may hold duplicates and is never empty.
func ExtractSkills(text string) []string {
	var skills []string

	lower := strings.ToLower(text)
	for _, skill := range knownSkills {
		if strings.Contains(lower, strings.ToLower(skill)) {
			skills = append(skills, skill)
		}
	}

	for _, line := range sectionLines(splitLines(text), skillsStart, skillsEnd) {
		for _, token := range skillDelimiters.Split(line, -1) {
			if token = strings.TrimSpace(token); utf16Len(token) > 1 {
				skills = append(skills, token)
			}
		}
	}

	if len(skills) == 0 {
		return []string{SkillsNotFound}
	}
	return skills
}

// utf16Len counts UTF-16 code units, so a character outside the BMP counts
// as two.
func utf16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}
