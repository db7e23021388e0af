package match

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"resumatch/internal/embedding"
	"resumatch/internal/errors"
	"resumatch/internal/types"
)

func newTestLogger(t *testing.T) *errors.Logger {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return logger
}

// fakeEmbedder returns canned vectors for SemanticSimilarity tests.
type fakeEmbedder struct {
	vectors [][]float64
	err     error
}

func (f *fakeEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors, nil
}

func (f *fakeEmbedder) GetModelInfo(ctx context.Context) *embedding.ModelInfo {
	return &embedding.ModelInfo{Name: "fake", Available: true}
}

func (f *fakeEmbedder) Close() error { return nil }

func TestKeywordOverlap(t *testing.T) {
	tests := []struct {
		name     string
		resume   []string
		job      []string
		expected float64
	}{
		{
			name:     "empty resume",
			resume:   nil,
			job:      []string{"python"},
			expected: 0.0,
		},
		{
			name:     "empty job",
			resume:   []string{"python"},
			job:      nil,
			expected: 0.0,
		},
		{
			name:     "identical",
			resume:   []string{"python", "docker"},
			job:      []string{"python", "docker"},
			expected: 1.0,
		},
		{
			name:     "disjoint",
			resume:   []string{"python"},
			job:      []string{"java"},
			expected: 0.0,
		},
		{
			name:     "partial overlap",
			resume:   []string{"python", "docker"},
			job:      []string{"python", "kubernetes"},
			expected: 1.0 / 3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeywordOverlap(tt.resume, tt.job)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("KeywordOverlap() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        []float64
		b        []float64
		expected float64
	}{
		{
			name:     "identical",
			a:        []float64{1, 2, 3},
			b:        []float64{1, 2, 3},
			expected: 1.0,
		},
		{
			name:     "orthogonal",
			a:        []float64{1, 0},
			b:        []float64{0, 1},
			expected: 0.0,
		},
		{
			name:     "opposite",
			a:        []float64{1, 0},
			b:        []float64{-1, 0},
			expected: -1.0,
		},
		{
			name:     "length mismatch",
			a:        []float64{1, 2},
			b:        []float64{1, 2, 3},
			expected: 0.0,
		},
		{
			name:     "zero vector",
			a:        []float64{0, 0},
			b:        []float64{1, 2},
			expected: 0.0,
		},
		{
			name:     "empty",
			a:        nil,
			b:        nil,
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMatchLevel(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{0.85, "Excellent"},
		{0.7, "Excellent"},
		{0.6999, "Good"},
		{0.5, "Good"},
		{0.4999, "Moderate"},
		{0.3, "Moderate"},
		{0.2999, "Low"},
		{0.0, "Low"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.4f", tt.score), func(t *testing.T) {
			if got := MatchLevel(tt.score); got != tt.expected {
				t.Errorf("MatchLevel(%v) = %q, want %q", tt.score, got, tt.expected)
			}
		})
	}
}

func TestToPercent(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0.0, 0.0},
		{1.0, 100.0},
		{0.7, 70.0},
		{0.12345, 12.3},
		{0.1235, 12.4},
		{0.005, 0.5},
	}

	for _, tt := range tests {
		if got := toPercent(tt.input); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("toPercent(%v) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestGenerateFeedbackOrdering(t *testing.T) {
	resume := types.ResumeProfile{
		// no email, no phone
		WordCount: 50,
	}
	resumeKeywords := []string{"python"}
	jobKeywords := []string{"python", "docker", "kubernetes", "terraform", "aws", "linux", "jenkins"}

	feedback := generateFeedback(resume, resumeKeywords, jobKeywords, 0.1)

	if len(feedback) != 5 {
		t.Fatalf("feedback has %d entries, want 5: %v", len(feedback), feedback)
	}
	if feedback[0] != feedbackLowBand {
		t.Errorf("feedback[0] = %q, want low band message", feedback[0])
	}
	// top five missing keywords in job order
	want := feedbackMissingPrefix + "docker, kubernetes, terraform, aws, linux"
	if feedback[1] != want {
		t.Errorf("feedback[1] = %q, want %q", feedback[1], want)
	}
	if feedback[2] != feedbackNoEmail {
		t.Errorf("feedback[2] = %q, want email note", feedback[2])
	}
	if feedback[3] != feedbackNoPhone {
		t.Errorf("feedback[3] = %q, want phone note", feedback[3])
	}
	if feedback[4] != feedbackTooShort {
		t.Errorf("feedback[4] = %q, want length note", feedback[4])
	}
}

func TestGenerateFeedbackBands(t *testing.T) {
	resume := types.ResumeProfile{
		Email:     "a@b.com",
		Phone:     "555-123-4567",
		WordCount: 400,
	}

	tests := []struct {
		overall  float64
		expected string
	}{
		{0.1, feedbackLowBand},
		{0.35, feedbackModerateBand},
		{0.55, feedbackGoodBand},
		{0.9, feedbackExcellentBand},
	}

	for _, tt := range tests {
		feedback := generateFeedback(resume, nil, nil, tt.overall)
		if len(feedback) == 0 || feedback[0] != tt.expected {
			t.Errorf("generateFeedback(overall=%v)[0] = %v, want %q", tt.overall, feedback, tt.expected)
		}
	}
}

func TestGenerateFeedbackLongResume(t *testing.T) {
	resume := types.ResumeProfile{
		Email:     "a@b.com",
		Phone:     "555-123-4567",
		WordCount: 1200,
	}

	feedback := generateFeedback(resume, nil, nil, 0.8)
	if feedback[len(feedback)-1] != feedbackTooLong {
		t.Errorf("last feedback = %q, want too-long note", feedback[len(feedback)-1])
	}
}

func TestMissingKeywordsSkillsExcluded(t *testing.T) {
	resume := types.ResumeProfile{
		Skills: []string{"Docker"},
	}
	missing := missingKeywords(resume, []string{"python"}, []string{"python", "docker", "kubernetes"})

	if !reflect.DeepEqual(missing, []string{"kubernetes"}) {
		t.Errorf("missingKeywords() = %v, want [kubernetes]", missing)
	}
}

func TestMatchedSkills(t *testing.T) {
	resume := []string{"python", "docker", "kubernetes"}
	job := []string{"kubernetes", "python", "terraform"}

	matched := matchedSkills(resume, job)
	if !reflect.DeepEqual(matched, []string{"python", "kubernetes"}) {
		t.Errorf("matchedSkills() = %v, want resume-ordered intersection", matched)
	}
}

func TestMatchedSkillsCap(t *testing.T) {
	var resume []string
	for i := 0; i < 15; i++ {
		resume = append(resume, fmt.Sprintf("skill%d", i))
	}
	matched := matchedSkills(resume, resume)
	if len(matched) != maxMatchedSkills {
		t.Errorf("matchedSkills() returned %d entries, want %d", len(matched), maxMatchedSkills)
	}
}

func TestMatcherKeywordOnly(t *testing.T) {
	m := NewMatcher(nil, newTestLogger(t))
	if !m.KeywordOnly() {
		t.Error("KeywordOnly() = false for nil embedder")
	}

	resume := types.ResumeProfile{
		RawText:   "python developer docker kubernetes experience",
		Email:     "dev@example.com",
		Phone:     "555-123-4567",
		WordCount: 400,
	}
	job := types.JobPosting{
		ID:           "1",
		Title:        "Platform Engineer",
		Company:      "Acme",
		Description:  "python docker kubernetes",
		Requirements: "experience required",
	}

	result := m.MatchResumeToJob(context.Background(), resume, job)

	if result.SemanticSimilarity != 0 {
		t.Errorf("SemanticSimilarity = %v, want 0 in keyword-only mode", result.SemanticSimilarity)
	}
	if result.KeywordOverlap <= 0 {
		t.Errorf("KeywordOverlap = %v, want > 0", result.KeywordOverlap)
	}
	if result.Location != "Not specified" || result.Salary != "Not specified" {
		t.Errorf("empty job fields not defaulted: %q / %q", result.Location, result.Salary)
	}
	if result.MatchLevel == "" {
		t.Error("MatchLevel is empty")
	}
}

func TestMatcherSemanticFusion(t *testing.T) {
	// identical vectors give cosine 1.0
	emb := &fakeEmbedder{vectors: [][]float64{{1, 2, 3}, {1, 2, 3}}}
	m := NewMatcher(emb, newTestLogger(t))

	resume := types.ResumeProfile{
		RawText:   "python docker",
		Email:     "dev@example.com",
		Phone:     "555-123-4567",
		WordCount: 400,
	}
	job := types.JobPosting{
		ID:          "1",
		Title:       "Engineer",
		Company:     "Acme",
		Description: "python docker",
	}

	result := m.MatchResumeToJob(context.Background(), resume, job)

	if result.SemanticSimilarity != 100.0 {
		t.Errorf("SemanticSimilarity = %v, want 100", result.SemanticSimilarity)
	}
	if result.KeywordOverlap != 100.0 {
		t.Errorf("KeywordOverlap = %v, want 100", result.KeywordOverlap)
	}
	// 0.7*1.0 + 0.3*1.0
	if result.SimilarityScore != 100.0 {
		t.Errorf("SimilarityScore = %v, want 100", result.SimilarityScore)
	}
	if result.MatchLevel != "Excellent" {
		t.Errorf("MatchLevel = %q, want Excellent", result.MatchLevel)
	}
}

func TestMatcherEmbeddingFailureDegrades(t *testing.T) {
	emb := &fakeEmbedder{err: fmt.Errorf("provider down")}
	m := NewMatcher(emb, newTestLogger(t))

	got := m.SemanticSimilarity(context.Background(), "python developer", "python engineer")
	if got != 0.0 {
		t.Errorf("SemanticSimilarity = %v, want 0 on embedder failure", got)
	}
}

func TestMatcherTooFewVectorsDegrades(t *testing.T) {
	emb := &fakeEmbedder{vectors: [][]float64{{1, 2, 3}}}
	m := NewMatcher(emb, newTestLogger(t))

	got := m.SemanticSimilarity(context.Background(), "python developer", "python engineer")
	if got != 0.0 {
		t.Errorf("SemanticSimilarity = %v, want 0 on short embedding batch", got)
	}
}

func TestMatcherDeterministic(t *testing.T) {
	m := NewMatcher(nil, newTestLogger(t))

	resume := types.ResumeProfile{
		RawText: strings.Repeat("python docker kubernetes aws terraform ", 20),
		Email:   "dev@example.com",
	}
	job := types.JobPosting{
		ID:           "1",
		Title:        "Engineer",
		Company:      "Acme",
		Description:  "python docker aws",
		Requirements: "kubernetes terraform jenkins",
	}

	first := m.MatchResumeToJob(context.Background(), resume, job)
	second := m.MatchResumeToJob(context.Background(), resume, job)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated matching not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func BenchmarkMatchResumeToJob(b *testing.B) {
	logger, err := errors.New("error")
	if err != nil {
		b.Fatalf("failed to create logger: %v", err)
	}
	m := NewMatcher(nil, logger)

	resume := types.ResumeProfile{
		RawText:   strings.Repeat("python docker kubernetes aws terraform go ", 50),
		Email:     "dev@example.com",
		Phone:     "555-123-4567",
		WordCount: 300,
	}
	job := types.JobPosting{
		ID:           "1",
		Title:        "Engineer",
		Company:      "Acme",
		Description:  "python docker aws linux",
		Requirements: "kubernetes terraform jenkins git",
	}

	for b.Loop() {
		m.MatchResumeToJob(context.Background(), resume, job)
	}
}
