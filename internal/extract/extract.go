package extract

import (
	"regexp"
	"strings"

	"resumatch/internal/types"
)

var (
	emailRE = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRE = regexp.MustCompile(`(\+?1?[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`)
	nameRE  = regexp.MustCompile(`^[A-Za-z\s.]+$`)

	degreeREs = []*regexp.Regexp{
		regexp.MustCompile(`(?i)bachelor['s]?\s+(?:of\s+)?(?:science|arts|engineering|business)`),
		regexp.MustCompile(`(?i)master['s]?\s+(?:of\s+)?(?:science|arts|engineering|business)`),
		regexp.MustCompile(`(?i)phd|ph\.d|doctorate`),
		regexp.MustCompile(`(?i)associate['s]?\s+degree`),
		regexp.MustCompile(`(?i)b\.?s\.?|b\.?a\.?|m\.?s\.?|m\.?a\.?|m\.?b\.?a\.?`),
	}

	experienceREs = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*(?:\+)?\s*years?\s+(?:of\s+)?experience`),
		regexp.MustCompile(`(?i)experience[:\s]*(\d+)\s*(?:\+)?\s*years?`),
		regexp.MustCompile(`(?i)(\d+)\s*(?:\+)?\s*yrs?\s+(?:of\s+)?(?:experience|exp)`),
	}
)

// maxNameLines bounds how far down the document a candidate name is searched.
const maxNameLines = 5

// Analyze extracts structured resume information from raw text.
func Analyze(text string) types.ResumeProfile {
	skills := Skills(text)

	return types.ResumeProfile{
		Name:       Name(text),
		Email:      Email(text),
		Phone:      Phone(text),
		Skills:     skills,
		Education:  Education(text),
		Experience: Experience(text),
		RawText:    text,
		WordCount:  len(strings.Fields(text)),
		SkillCount: len(skills),
	}
}

// Email returns the first email address found, or an empty string.
func Email(text string) string {
	return emailRE.FindString(text)
}

// Phone returns the first phone number found with its capture groups joined,
// or an empty string. For plain US-style numbers this yields the bare digits.
func Phone(text string) string {
	m := phoneRE.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.Join(m[1:], "")
}

// Name scans the first few non-empty lines for something that looks like a
// person's name: at most four words, longer than two characters, letters,
// spaces and dots only.
func Name(text string) string {
	seen := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		seen++
		if seen > maxNameLines {
			break
		}
		if len(line) > 2 && len(strings.Fields(line)) <= 4 && nameRE.MatchString(line) {
			return line
		}
	}
	return ""
}

// Skills returns every taxonomy term that occurs in the text, matched as a
// case-insensitive substring, in taxonomy order without duplicates.
func Skills(text string) []string {
	lower := strings.ToLower(text)

	var found []string
	seen := make(map[string]struct{})
	for _, cat := range skillTaxonomy {
		for _, skill := range cat.Skills {
			if _, dup := seen[skill]; dup {
				continue
			}
			if strings.Contains(lower, skill) {
				found = append(found, skill)
				seen[skill] = struct{}{}
			}
		}
	}
	return found
}

// Education returns trimmed degree mentions in first-occurrence order.
func Education(text string) []string {
	var degrees []string
	seen := make(map[string]struct{})
	for _, re := range degreeREs {
		for _, m := range re.FindAllString(text, -1) {
			m = strings.TrimSpace(m)
			if _, dup := seen[m]; dup {
				continue
			}
			degrees = append(degrees, m)
			seen[m] = struct{}{}
		}
	}
	return degrees
}

// Experience returns a "<N> years of experience" entry for every year count
// mentioned in the text. Duplicates are preserved.
func Experience(text string) []string {
	var entries []string
	for _, re := range experienceREs {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			entries = append(entries, m[1]+" years of experience")
		}
	}
	return entries
}
