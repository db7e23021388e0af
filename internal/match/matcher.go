package match

import (
	"context"

	"resumatch/internal/embedding"
	"resumatch/internal/errors"
	"resumatch/internal/types"
)

// notSpecified fills optional job fields in match results.
const notSpecified = "Not specified"

// Matcher scores resumes against job postings. A nil embedder puts the
// matcher in keyword-only mode where semantic similarity is always 0.
type Matcher struct {
	embedder embedding.Embedder
	logger   *errors.Logger
}

// NewMatcher creates a matcher. embedder may be nil.
func NewMatcher(embedder embedding.Embedder, logger *errors.Logger) *Matcher {
	return &Matcher{
		embedder: embedder,
		logger:   logger,
	}
}

// KeywordOnly reports whether the matcher runs without an embedding provider.
func (m *Matcher) KeywordOnly() bool {
	return m.embedder == nil
}

// SemanticSimilarity embeds both texts and returns their cosine similarity.
// Any failure degrades to 0 so keyword matching still produces a score.
func (m *Matcher) SemanticSimilarity(ctx context.Context, resumeText, jobText string) float64 {
	if m.embedder == nil {
		return 0.0
	}

	resumeClean := PreprocessText(resumeText)
	jobClean := PreprocessText(jobText)
	if resumeClean == "" || jobClean == "" {
		return 0.0
	}

	vectors, err := m.embedder.EmbedTexts(ctx, []string{resumeClean, jobClean})
	if err != nil {
		m.logger.Warn("semantic similarity degraded to keyword matching", "error", err.Error())
		return 0.0
	}
	if len(vectors) < 2 {
		m.logger.Warn("embedding provider returned too few vectors", "count", len(vectors))
		return 0.0
	}

	return CosineSimilarity(vectors[0], vectors[1])
}

// MatchResumeToJob scores one resume against one job posting.
func (m *Matcher) MatchResumeToJob(ctx context.Context, resume types.ResumeProfile, job types.JobPosting) types.MatchResult {
	jobText := job.Text()

	semantic := m.SemanticSimilarity(ctx, resume.RawText, jobText)

	resumeKeywords := ExtractKeywords(resume.RawText)
	jobKeywords := ExtractKeywords(jobText)
	overlap := KeywordOverlap(resumeKeywords, jobKeywords)

	overall := semantic*semanticWeight + overlap*keywordWeight

	result := types.MatchResult{
		JobID:              job.ID,
		JobTitle:           job.Title,
		Company:            job.Company,
		Location:           orNotSpecified(job.Location),
		Salary:             orNotSpecified(job.Salary),
		SimilarityScore:    toPercent(overall),
		SemanticSimilarity: toPercent(semantic),
		KeywordOverlap:     toPercent(overlap),
		Feedback:           generateFeedback(resume, resumeKeywords, jobKeywords, overall),
		MatchedSkills:      matchedSkills(resumeKeywords, jobKeywords),
		MatchLevel:         MatchLevel(overall),
	}

	m.logger.Info("job match calculated",
		"job_title", result.JobTitle,
		"similarity_score", result.SimilarityScore,
		"match_level", result.MatchLevel,
	)

	return result
}

// matchedSkills returns keywords shared by resume and job, in resume
// extraction order, capped at maxMatchedSkills.
func matchedSkills(resumeKeywords, jobKeywords []string) []string {
	jobSet := toSet(jobKeywords)

	var matched []string
	for _, kw := range resumeKeywords {
		if _, ok := jobSet[kw]; !ok {
			continue
		}
		matched = append(matched, kw)
		if len(matched) == maxMatchedSkills {
			break
		}
	}
	return matched
}

func orNotSpecified(v string) string {
	if v == "" {
		return notSpecified
	}
	return v
}
