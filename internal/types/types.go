package types

// AnalyzeInput represents the input for a resume/job match analysis.
// Exactly one of JobText or JobURL should be set; when JobURL is set the
// pipeline fetches and condenses the page text before matching.
type AnalyzeInput struct {
	ResumeText string `json:"resumeText"`
	JobText    string `json:"jobText,omitempty"`
	JobURL     string `json:"jobUrl,omitempty"`
	Strategy   string `json:"strategy,omitempty"` // "lexical" or "semantic"; empty uses the configured default
}

// MatchResult holds the core comparison outcome between a resume and a job
// description. Matched is the intersection of the two skill sets, Missing is
// job minus resume, and Score is a 0-100 value rounded to two decimals.
type MatchResult struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
	Score   float64  `json:"score"`
}

// MatchReport is the full analysis output returned by the pipeline.
type MatchReport struct {
	MatchResult
	Strategy     string   `json:"strategy"`
	ResumeSkills []string `json:"resumeSkills"`
	JobSkills    []string `json:"jobSkills"`
	Companies    []string `json:"suggestedCompanies,omitempty"`
	Warning      string   `json:"warning,omitempty"`
}

// RewriteResumeInput represents the input sent to the AI provider when
// rewriting a resume toward a job description.
type RewriteResumeInput struct {
	ResumeText    string   `json:"resumeText"`
	JobText       string   `json:"jobText"`
	MissingSkills []string `json:"missingSkills"`
}

// RewriteResumeOutput is the structured response from a generative rewrite.
type RewriteResumeOutput struct {
	RewrittenResume string `json:"rewrittenResume"`
	Notes           string `json:"notes"`
}

// RewriteReport combines the match analysis with the rewritten resume.
type RewriteReport struct {
	Match           MatchReport `json:"match"`
	RewrittenResume string      `json:"rewrittenResume"`
	Notes           string      `json:"notes,omitempty"`
	Variant         string      `json:"variant"` // "generative" or "static"
}

// RevisedResume is the document handed to the PDF renderer.
type RevisedResume struct {
	Title       string
	Original    string
	AddedSkills []string
}
