package ai

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	RewriteResume string
}

// UserPrompts contains user-level prompts with placeholders for dynamic content
type UserPrompts struct {
	RewriteResume string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	RewriteResume: `You are an expert resume writer and ATS (Applicant Tracking System) analyst with a strict commitment to honesty and accuracy. Your core principles are:

- NEVER invent, exaggerate, or misattribute any skills or experiences
- Every piece of information must be directly traceable to the source material
- Maintain professional integrity while optimizing for relevance
- Weave missing keywords in only where the underlying experience plausibly supports them

Your expertise includes:
- Resume optimization and tailoring
- ATS keyword coverage analysis
- HR best practices and industry standards`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	RewriteResume: `Please rewrite the provided resume to improve its coverage of the job description while staying truthful to the original content.

**Tasks:**

1. **Rewrite Resume**:
   Produce a revised resume that highlights the skills and experience *explicitly present in the original resume* that are most relevant to the job description.
   Improve wording, structure, and keyword placement without inventing anything.

2. **Address Missing Skills**:
   The following skills appear in the job description but were not detected in the resume: %s
   For each, incorporate it ONLY if the original resume contains supporting experience; otherwise list it in the notes as a genuine gap the candidate should close.

3. **Notes**:
   Summarize what you changed and which missing skills could not be honestly incorporated.

**Original Resume:**
-----
%s
-----

**Job Description:**
-----
%s
-----`,
}

// PromptConfig holds configuration for customizable prompts
type PromptConfig struct {
	SystemPrompts SystemPrompts `json:"systemPrompts"`
	UserPrompts   UserPrompts   `json:"userPrompts"`
}

// GetDefaultPromptConfig returns the default prompt configuration
func GetDefaultPromptConfig() PromptConfig {
	return PromptConfig{
		SystemPrompts: DefaultSystemPrompts,
		UserPrompts:   DefaultUserPrompts,
	}
}
