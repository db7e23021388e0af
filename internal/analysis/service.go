package analysis

import (
	"context"
	"io"
	"sort"

	"resumatch/internal/errors"
	"resumatch/internal/extract"
	"resumatch/internal/ingest"
	"resumatch/internal/jobs"
	"resumatch/internal/match"
	"resumatch/internal/observability"
	"resumatch/internal/types"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Service runs the full resume analysis pipeline: text extraction, entity
// extraction, then matching against the job catalog.
type Service struct {
	extractor *ingest.Extractor
	matcher   *match.Matcher
	store     jobs.Store
	logger    *errors.Logger
	obs       *observability.ObservabilityManager
}

// NewService creates an analysis service. obs may be nil when the caller
// runs without observability.
func NewService(extractor *ingest.Extractor, matcher *match.Matcher, store jobs.Store, logger *errors.Logger, obs *observability.ObservabilityManager) *Service {
	return &Service{
		extractor: extractor,
		matcher:   matcher,
		store:     store,
		logger:    logger,
		obs:       obs,
	}
}

// AnalyzeFile extracts text from a resume file and analyzes it. jobIDs
// restricts matching to specific postings; empty means the whole catalog.
func (s *Service) AnalyzeFile(ctx context.Context, path string, jobIDs []string) (*types.AnalysisResult, error) {
	text, err := s.extractor.ExtractFile(ctx, path)
	if err != nil {
		s.recordAnalysis(ctx, false)
		return nil, err
	}
	return s.analyze(ctx, text, jobIDs)
}

// AnalyzeReader extracts text from an in-memory resume and analyzes it.
func (s *Service) AnalyzeReader(ctx context.Context, r io.Reader, filename string, jobIDs []string) (*types.AnalysisResult, error) {
	text, err := s.extractor.ExtractReader(ctx, r, filename)
	if err != nil {
		s.recordAnalysis(ctx, false)
		return nil, err
	}
	return s.analyze(ctx, text, jobIDs)
}

// AnalyzeText analyzes already-extracted resume text.
func (s *Service) AnalyzeText(ctx context.Context, text string, jobIDs []string) (*types.AnalysisResult, error) {
	return s.analyze(ctx, text, jobIDs)
}

func (s *Service) analyze(ctx context.Context, text string, jobIDs []string) (*types.AnalysisResult, error) {
	ctx, span := s.tracer().Start(ctx, "analysis.analyze")
	defer span.End()

	resume := extract.Analyze(text)
	span.SetAttributes(
		attribute.Int("resume.word_count", resume.WordCount),
		attribute.Int("resume.skill_count", resume.SkillCount),
	)

	s.logger.Info("Resume parsed",
		"word_count", resume.WordCount,
		"skill_count", resume.SkillCount,
		"has_email", resume.Email != "",
		"has_phone", resume.Phone != "")

	matches, err := s.MatchResume(ctx, resume, jobIDs)
	if err != nil {
		s.recordAnalysis(ctx, false)
		return nil, err
	}

	s.recordAnalysis(ctx, true)
	return &types.AnalysisResult{
		Resume:  resume,
		Matches: matches,
	}, nil
}

// MatchResume scores a parsed resume against the requested postings and
// returns results sorted by overall score, best first. Unknown job ids are
// dropped with a warning rather than failing the whole analysis.
func (s *Service) MatchResume(ctx context.Context, resume types.ResumeProfile, jobIDs []string) ([]types.MatchResult, error) {
	ctx, span := s.tracer().Start(ctx, "analysis.match_jobs")
	defer span.End()

	postings := s.resolveJobs(jobIDs)
	if len(postings) == 0 {
		return nil, errors.NewValidationError(errors.ErrCodeJobNotFound,
			"No job postings found to match against", nil)
	}

	results := make([]types.MatchResult, 0, len(postings))
	for _, job := range postings {
		result := s.matcher.MatchResumeToJob(ctx, resume, job)
		results = append(results, result)
		s.recordMatch(ctx, result)
	}

	// Stable so equal scores keep catalog order
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SimilarityScore > results[j].SimilarityScore
	})

	span.SetAttributes(attribute.Int("match.job_count", len(results)))
	return results, nil
}

// resolveJobs returns the postings for the requested ids, or the whole
// catalog when none are given.
func (s *Service) resolveJobs(jobIDs []string) []types.JobPosting {
	if len(jobIDs) == 0 {
		return s.store.List()
	}

	postings := make([]types.JobPosting, 0, len(jobIDs))
	for _, id := range jobIDs {
		job, ok := s.store.Get(id)
		if !ok {
			s.logger.Warn("Skipping unknown job id", "job_id", id)
			continue
		}
		postings = append(postings, job)
	}
	return postings
}

func (s *Service) tracer() oteltrace.Tracer {
	if s.obs == nil {
		return noop.NewTracerProvider().Tracer("resumatch.analysis")
	}
	return s.obs.Tracer("resumatch.analysis")
}

func (s *Service) recordAnalysis(ctx context.Context, success bool) {
	if s.obs == nil {
		return
	}
	s.obs.GetMetrics().RecordBusinessMetric(ctx, "resume_analyzed", success, s.obs)
}

func (s *Service) recordMatch(ctx context.Context, result types.MatchResult) {
	if s.obs == nil {
		return
	}
	metrics := s.obs.GetMetrics()
	metrics.RecordBusinessMetric(ctx, "job_matched", true, s.obs,
		attribute.String("match_level", result.MatchLevel))
	metrics.RecordMatchScore(ctx, result.SimilarityScore, s.obs,
		attribute.String("job_id", result.JobID))
}
