// Package resume turns plain résumé text into PortfolioData using keyword
// sectioning and regular expressions. Every function here is pure.
package resume

// Parse runs every field extractor over text and assembles the result.
// It never fails; missing data shows up as sentinel strings.
func Parse(text string) PortfolioData {
	return PortfolioData{
		PersonalInfo: ExtractPersonalInfo(text),
		Skills:       ExtractSkills(text),
		Experience:   ExtractExperience(text),
		Education:    ExtractEducation(text),
	}
}
