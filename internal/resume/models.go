package resume

const (
	NotFound             = "Not Found"
	SkillsNotFound       = "Skills not found"
	NotAvailable         = "N/A"
	DegreeNotSpecified   = "Degree not specified"
	InstitutionUnknown   = "Institution not specified"
	YearNotSpecified     = "Year not specified"
	EducationNotFound    = "Education not found"
	PositionNotSpecified = "Position not specified"
	DurationNotSpecified = "Duration not specified"
	ExperienceNotFound   = "Experience not found"
	NoExperienceDetails  = "No experience details available"
)

type PersonalInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	GPA         string `json:"gpa"`
}

type Experience struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// PortfolioData is everything extracted from one résumé.
type PortfolioData struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Skills       []string     `json:"skills"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
}
