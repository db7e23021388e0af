package match

import "math"

// Fusion weights and presentation limits for match results.
const (
	semanticWeight = 0.7
	keywordWeight  = 0.3

	maxMatchedSkills   = 10
	maxMissingKeywords = 5

	shortResumeWords = 200
	longResumeWords  = 800
)

// KeywordOverlap computes the Jaccard similarity of two keyword lists.
// Returns 0 when either list is empty.
func KeywordOverlap(resumeKeywords, jobKeywords []string) float64 {
	if len(resumeKeywords) == 0 || len(jobKeywords) == 0 {
		return 0.0
	}

	resumeSet := toSet(resumeKeywords)
	jobSet := toSet(jobKeywords)

	intersection := 0
	for kw := range jobSet {
		if _, ok := resumeSet[kw]; ok {
			intersection++
		}
	}
	union := len(resumeSet) + len(jobSet) - intersection
	if union == 0 {
		return 0.0
	}

	return float64(intersection) / float64(union)
}

// CosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths or zero vectors yield 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// MatchLevel buckets an overall similarity fraction.
func MatchLevel(score float64) string {
	switch {
	case score >= 0.7:
		return "Excellent"
	case score >= 0.5:
		return "Good"
	case score >= 0.3:
		return "Moderate"
	default:
		return "Low"
	}
}

// toPercent converts a fraction to a percentage rounded to one decimal.
func toPercent(v float64) float64 {
	return math.Round(v*1000) / 10
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
