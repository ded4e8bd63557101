package jobserver

import "github.com/anatolykoptev/go_cvmatch/internal/engine/cvopt"

// --- Extraction tools ---

type CVKeywordsInput struct {
	Text             string `json:"text,omitempty" jsonschema:"Résumé or job description text"`
	Path             string `json:"path,omitempty" jsonschema:"Path to a .pdf, .docx, .html, .txt or .md file (used when text is empty)"`
	IsJobDescription bool   `json:"is_job_description,omitempty" jsonschema:"Treat the text as a job description: also mine requirement phrases such as the object of experience with or knowledge of"`
	TopN             int    `json:"top_n,omitempty" jsonschema:"Number of keywords to return (default 15)"`
}

// CVKeywordsOutput is the structured output for cv_keywords.
type CVKeywordsOutput struct {
	Keywords []cvopt.Keyword `json:"keywords"`
	Count    int             `json:"count"`
}

type CVSectionsInput struct {
	Resume     string `json:"resume,omitempty" jsonschema:"Résumé plain text"`
	ResumePath string `json:"resume_path,omitempty" jsonschema:"Path to the résumé file (.pdf, .docx, .html, .txt, .md)"`
}

// CVSectionsOutput is the structured output for cv_sections.
type CVSectionsOutput struct {
	Sections cvopt.Sections `json:"sections"`
	Summary  string         `json:"summary"`
}

// CVPairInput names a résumé and a job description, inline or by file path.
type CVPairInput struct {
	Resume             string `json:"resume,omitempty" jsonschema:"Résumé plain text"`
	ResumePath         string `json:"resume_path,omitempty" jsonschema:"Path to the résumé file (.pdf, .docx, .html, .txt, .md)"`
	JobDescription     string `json:"job_description,omitempty" jsonschema:"Job description text or pasted HTML"`
	JobDescriptionPath string `json:"job_description_path,omitempty" jsonschema:"Path to the job description file"`
}

// CVScoreOutput is the structured output for cv_score.
type CVScoreOutput struct {
	Scores         cvopt.DimensionalScores `json:"scores"`
	JobKeywords    []string                `json:"job_keywords"`
	ResumeKeywords []string                `json:"resume_keywords"`
}

// --- Analysis tools ---

type CVAnalyzeInput struct {
	Resume             string `json:"resume,omitempty" jsonschema:"Résumé plain text"`
	ResumePath         string `json:"resume_path,omitempty" jsonschema:"Path to the résumé file (.pdf, .docx, .html, .txt, .md)"`
	JobDescription     string `json:"job_description,omitempty" jsonschema:"Job description text or pasted HTML"`
	JobDescriptionPath string `json:"job_description_path,omitempty" jsonschema:"Path to the job description file"`
	DocumentID         string `json:"document_id,omitempty" jsonschema:"Stable ID for caching and history (default: derived from the texts)"`
	JobTitle           string `json:"job_title,omitempty" jsonschema:"Job title shown in history (default: guessed from the job description)"`
}

// CVAnalyzeOutput is the structured output for cv_analyze and cv_analysis_get.
type CVAnalyzeOutput struct {
	DocumentID string               `json:"document_id"`
	JobTitle   string               `json:"job_title,omitempty"`
	Source     string               `json:"source"` // "computed", "cache" or "history"
	Analysis   cvopt.AnalysisResult `json:"analysis"`
	Summary    string               `json:"summary"`
}

// CVOptimizeOutput is the structured output for cv_optimize.
type CVOptimizeOutput struct {
	DocumentID    string               `json:"document_id"`
	OptimizedText string               `json:"optimized_text"`
	Document      cvopt.StructuredCV   `json:"document"`
	Analysis      cvopt.AnalysisResult `json:"analysis"`
	Summary       string               `json:"summary"`
}

type CVAnalysisGetInput struct {
	DocumentID string `json:"document_id" jsonschema:"Document ID returned by cv_analyze"`
}

// --- History ---

type CVHistoryListInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max records to return (default 50, max 100)"`
}

// HistoryItem is one history row without the stored analysis.
type HistoryItem struct {
	ID          int64  `json:"id"`
	DocumentID  string `json:"document_id"`
	JobTitle    string `json:"job_title,omitempty"`
	Overall     int    `json:"overall_compatibility"`
	SkillsMatch int    `json:"skills_match"`
	AnalyzedAt  string `json:"analyzed_at"`
}

// CVHistoryListOutput is the structured output for cv_history_list.
type CVHistoryListOutput struct {
	Records []HistoryItem `json:"records"`
	Count   int           `json:"count"`
}
