package analysis

import (
	"context"
	goerrors "errors"
	"strings"
	"testing"

	"resumatch/internal/errors"
	"resumatch/internal/jobs"
	"resumatch/internal/match"
	"resumatch/internal/types"
)

const sampleResume = `John Smith
john.smith@example.com
(555) 123-4567

Experienced software engineer with 5 years of experience building web
applications in Python, JavaScript and React. Comfortable with SQL,
PostgreSQL, Docker and AWS. Bachelor of Science in Computer Science.
` // short on purpose, length feedback is covered in the match package

func newTestService(t *testing.T, store jobs.Store) *Service {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	matcher := match.NewMatcher(nil, logger)
	// extractor unused by AnalyzeText, observability off
	return NewService(nil, matcher, store, logger, nil)
}

func newSeededStore(t *testing.T) *jobs.MemoryStore {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return jobs.NewMemoryStore(logger)
}

func TestAnalyzeTextAllJobs(t *testing.T) {
	svc := newTestService(t, newSeededStore(t))

	result, err := svc.AnalyzeText(context.Background(), sampleResume, nil)
	if err != nil {
		t.Fatalf("AnalyzeText() error: %v", err)
	}

	if result.Resume.Email != "john.smith@example.com" {
		t.Errorf("Resume.Email = %q", result.Resume.Email)
	}
	if result.Resume.Name != "John Smith" {
		t.Errorf("Resume.Name = %q", result.Resume.Name)
	}
	if len(result.Matches) != 6 {
		t.Fatalf("got %d matches, want 6", len(result.Matches))
	}

	// sorted best first
	for i := 1; i < len(result.Matches); i++ {
		if result.Matches[i].SimilarityScore > result.Matches[i-1].SimilarityScore {
			t.Errorf("matches not sorted at %d: %v > %v",
				i, result.Matches[i].SimilarityScore, result.Matches[i-1].SimilarityScore)
		}
	}

	for _, m := range result.Matches {
		if m.MatchLevel == "" {
			t.Errorf("job %s has empty match level", m.JobID)
		}
		if len(m.Feedback) == 0 {
			t.Errorf("job %s has no feedback", m.JobID)
		}
	}
}

func TestAnalyzeTextSelectedJobs(t *testing.T) {
	svc := newTestService(t, newSeededStore(t))

	// unknown ids are skipped, not fatal
	result, err := svc.AnalyzeText(context.Background(), sampleResume, []string{"2", "99"})
	if err != nil {
		t.Fatalf("AnalyzeText() error: %v", err)
	}

	if len(result.Matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(result.Matches))
	}
	if result.Matches[0].JobID != "2" {
		t.Errorf("match JobID = %q, want 2", result.Matches[0].JobID)
	}
}

func TestAnalyzeTextNoJobsAvailable(t *testing.T) {
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	empty := jobs.NewMemoryStoreWith(nil, logger)
	svc := newTestService(t, empty)

	_, err = svc.AnalyzeText(context.Background(), sampleResume, nil)
	if err == nil {
		t.Fatal("AnalyzeText() with empty catalog should fail")
	}

	var appErr *errors.AppError
	if !goerrors.As(err, &appErr) || appErr.Code != errors.ErrCodeJobNotFound {
		t.Errorf("error = %v, want AppError with code %s", err, errors.ErrCodeJobNotFound)
	}
}

func TestAnalyzeTextOnlyUnknownJobs(t *testing.T) {
	svc := newTestService(t, newSeededStore(t))

	_, err := svc.AnalyzeText(context.Background(), sampleResume, []string{"98", "99"})
	if err == nil {
		t.Fatal("AnalyzeText() with only unknown ids should fail")
	}
}

func TestAnalyzeTextDeterministic(t *testing.T) {
	svc := newTestService(t, newSeededStore(t))

	first, err := svc.AnalyzeText(context.Background(), sampleResume, nil)
	if err != nil {
		t.Fatalf("first AnalyzeText() error: %v", err)
	}
	second, err := svc.AnalyzeText(context.Background(), sampleResume, nil)
	if err != nil {
		t.Fatalf("second AnalyzeText() error: %v", err)
	}

	for i := range first.Matches {
		if first.Matches[i].JobID != second.Matches[i].JobID ||
			first.Matches[i].SimilarityScore != second.Matches[i].SimilarityScore {
			t.Errorf("run order differs at %d: %s/%v vs %s/%v", i,
				first.Matches[i].JobID, first.Matches[i].SimilarityScore,
				second.Matches[i].JobID, second.Matches[i].SimilarityScore)
		}
	}
}

func TestMatchResumeKeywordOnlyScores(t *testing.T) {
	svc := newTestService(t, newSeededStore(t))

	resume := types.ResumeProfile{
		RawText: strings.ToLower(sampleResume),
	}
	matches, err := svc.MatchResume(context.Background(), resume, []string{"1"})
	if err != nil {
		t.Fatalf("MatchResume() error: %v", err)
	}

	m := matches[0]
	if m.SemanticSimilarity != 0 {
		t.Errorf("SemanticSimilarity = %v, want 0 without embedder", m.SemanticSimilarity)
	}
	if m.KeywordOverlap <= 0 {
		t.Errorf("KeywordOverlap = %v, want > 0 for overlapping resume", m.KeywordOverlap)
	}
	// keyword-only overall is 0.3 * overlap
	want := 0.0
	if m.SimilarityScore <= want {
		t.Errorf("SimilarityScore = %v, want > 0", m.SimilarityScore)
	}
}
