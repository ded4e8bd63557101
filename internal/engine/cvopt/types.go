// Package cvopt is the rule-based résumé analysis pipeline: keyword extraction,
// section segmentation, dimensional scoring, content synthesis and recommendations.
//
// Every function in this package is pure and synchronous. Empty or malformed text
// degrades to empty results and documented default scores; nothing here performs I/O.
package cvopt

// --- Keywords ---

// KeywordSource records how a keyword candidate was found.
type KeywordSource string

const (
	SourceToken  KeywordSource = "token"
	SourcePhrase KeywordSource = "phrase"
)

// Keyword is a normalized term with its rank (1 = most relevant).
type Keyword struct {
	Term   string        `json:"term"`
	Rank   int           `json:"rank"`
	Source KeywordSource `json:"source"`
}

// --- Sections ---

// ExperienceEntry is one role parsed from the experience section.
// Dates are free-form ("2019", "03/2020", "Present").
type ExperienceEntry struct {
	Title     string   `json:"title,omitempty"`
	Company   string   `json:"company,omitempty"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
	Bullets   []string `json:"bullets"`
}

// EducationEntry is one degree/institution record. Entries with neither a degree
// nor an institution are dropped by the extractor.
type EducationEntry struct {
	Degree          string   `json:"degree"`
	Institution     string   `json:"institution,omitempty"`
	Location        string   `json:"location,omitempty"`
	Year            string   `json:"year,omitempty"`
	GPA             string   `json:"gpa,omitempty"`
	RelevantCourses []string `json:"relevant_courses"`
	Achievements    []string `json:"achievements"`
}

// LanguageEntry pairs a spoken language with a normalized proficiency level.
type LanguageEntry struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

// ContactInfo holds the header details found near the top of a résumé.
type ContactInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Sections is the segmented résumé. A missing section is an empty value:
// slices are never nil after Segment.
type Sections struct {
	Profile            string            `json:"profile"`
	TechnicalSkills    []string          `json:"technical_skills"`
	ProfessionalSkills []string          `json:"professional_skills"`
	Experience         []ExperienceEntry `json:"experience"`
	Education          []EducationEntry  `json:"education"`
	Achievements       []string          `json:"achievements"`
	Goals              []string          `json:"goals"`
	Languages          []LanguageEntry   `json:"languages"`
	Contact            ContactInfo       `json:"contact_info"`
}

// --- Scores ---

// DimensionalScores are independent 0–100 scores plus their weighted combination.
type DimensionalScores struct {
	SkillsMatch          int `json:"skills_match"`
	ExperienceMatch      int `json:"experience_match"`
	EducationMatch       int `json:"education_match"`
	IndustryFit          int `json:"industry_fit"`
	KeywordDensity       int `json:"keyword_density"`
	FormatCompatibility  int `json:"format_compatibility"`
	ContentRelevance     int `json:"content_relevance"`
	OverallCompatibility int `json:"overall_compatibility"`
}

// Placement is the résumé section where a matched keyword was first found.
type Placement string

const (
	PlacementProfile      Placement = "profile"
	PlacementSkills       Placement = "skills"
	PlacementExperience   Placement = "experience"
	PlacementAchievements Placement = "achievements"
	PlacementEducation    Placement = "education"
	PlacementVarious      Placement = "various"
)

// MatchedKeyword is a job keyword the résumé already covers.
type MatchedKeyword struct {
	Keyword   string    `json:"keyword"`
	Relevance int       `json:"relevance"`
	Frequency int       `json:"frequency"`
	Placement Placement `json:"placement"`
}

// MissingKeyword is a job keyword absent from the résumé.
type MissingKeyword struct {
	Keyword            string `json:"keyword"`
	Importance         int    `json:"importance"`
	SuggestedPlacement string `json:"suggested_placement"`
}

// SectionResult is a per-section score with one line of feedback.
type SectionResult struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// SectionResults groups the per-section sub-results.
type SectionResults struct {
	Profile      SectionResult `json:"profile"`
	Skills       SectionResult `json:"skills"`
	Experience   SectionResult `json:"experience"`
	Education    SectionResult `json:"education"`
	Achievements SectionResult `json:"achievements"`
}

// AnalysisResult is the terminal output of Analyze.
type AnalysisResult struct {
	DocumentID           string            `json:"document_id,omitempty"`
	Scores               DimensionalScores `json:"scores"`
	MatchedKeywords      []MatchedKeyword  `json:"matched_keywords"`
	MissingKeywords      []MissingKeyword  `json:"missing_keywords"`
	Recommendations      []string          `json:"recommendations"`
	SkillGap             string            `json:"skill_gap"`
	DetailedAnalysis     string            `json:"detailed_analysis"`
	ImprovementPotential int               `json:"improvement_potential"`
	Sections             SectionResults    `json:"section_analysis"`
	JobKeywords          []string          `json:"job_keywords"`
	ResumeKeywords       []string          `json:"resume_keywords"`
}

// --- Structured document ---

// DocEntry is one list entry in a structured section (a role, a degree).
type DocEntry struct {
	Heading    string   `json:"heading"`
	Subheading string   `json:"subheading,omitempty"`
	Dates      string   `json:"dates,omitempty"`
	Details    []string `json:"details,omitempty"`
}

// DocSection is one rendered section of the optimized CV.
type DocSection struct {
	Kind    string     `json:"kind"`
	Title   string     `json:"title"`
	Text    string     `json:"text,omitempty"`
	Items   []string   `json:"items,omitempty"`
	Entries []DocEntry `json:"entries,omitempty"`
}

// StructuredCV is the typed form of the optimized résumé, ready for rendering or export.
type StructuredCV struct {
	Contact  ContactInfo  `json:"contact_info"`
	Sections []DocSection `json:"sections"`
}

// SynthesisResult is the output of Synthesize.
type SynthesisResult struct {
	OptimizedText string       `json:"optimized_text"`
	Document      StructuredCV `json:"document"`
}

// Narrative is the output of Recommend.
type Narrative struct {
	Recommendations      []string `json:"recommendations"`
	SkillGap             string   `json:"skill_gap"`
	DetailedAnalysis     string   `json:"detailed_analysis"`
	ImprovementPotential int      `json:"improvement_potential"`
}

// OptimizeResult bundles the optimized résumé with the analysis it was built from.
type OptimizeResult struct {
	OptimizedText string          `json:"optimized_text"`
	Document      StructuredCV    `json:"document"`
	Analysis      *AnalysisResult `json:"analysis"`
}
