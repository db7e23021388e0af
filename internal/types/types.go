package types

// ResumeProfile holds the structured information extracted from a resume.
type ResumeProfile struct {
	Name       string   `json:"name,omitempty"`
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Skills     []string `json:"skills"`
	Education  []string `json:"education"`
	Experience []string `json:"experience"`
	RawText    string   `json:"rawText,omitempty"`
	WordCount  int      `json:"wordCount"`
	SkillCount int      `json:"skillCount"`
}

// JobPosting describes an open position candidates are matched against.
type JobPosting struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location,omitempty"`
	Salary       string `json:"salary,omitempty"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}

// Text returns the job text used for scoring, description and requirements
// joined with a single space.
func (j JobPosting) Text() string {
	return j.Description + " " + j.Requirements
}

// MatchResult is the scored comparison of one resume against one job.
// Score fields are percentages rounded to one decimal place.
type MatchResult struct {
	JobID              string   `json:"jobId"`
	JobTitle           string   `json:"jobTitle"`
	Company            string   `json:"company"`
	Location           string   `json:"location"`
	Salary             string   `json:"salary"`
	SimilarityScore    float64  `json:"similarityScore"`
	SemanticSimilarity float64  `json:"semanticSimilarity"`
	KeywordOverlap     float64  `json:"keywordOverlap"`
	Feedback           []string `json:"feedback"`
	MatchedSkills      []string `json:"matchedSkills"`
	MatchLevel         string   `json:"matchLevel"`
}

// AnalysisResult bundles an analyzed resume with its job matches, sorted by
// descending similarity score.
type AnalysisResult struct {
	Resume  ResumeProfile `json:"resume"`
	Matches []MatchResult `json:"matches"`
}

// MatchInput is the input for matching pre-extracted resume text.
type MatchInput struct {
	ResumeText string   `json:"resumeText"`
	JobIDs     []string `json:"jobIds,omitempty"`
}

// JobList wraps a set of postings for output formatting.
type JobList struct {
	Jobs []JobPosting `json:"jobs"`
}
