package match

import (
	"regexp"
	"strings"
)

var (
	whitespaceRE = regexp.MustCompile(`\s+`)
	nonAlnumRE   = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
)

// stopWords are dropped during keyword extraction.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"being": {}, "have": {}, "has": {}, "had": {}, "do": {}, "does": {},
	"did": {}, "will": {}, "would": {}, "could": {}, "should": {}, "may": {},
	"might": {}, "must": {}, "can": {}, "this": {}, "that": {}, "these": {},
	"those": {}, "i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {},
	"they": {}, "me": {}, "him": {}, "her": {}, "us": {}, "them": {},
	"my": {}, "your": {}, "his": {}, "its": {}, "our": {}, "their": {},
}

// PreprocessText normalizes text before embedding: lowercase, collapse
// whitespace runs, then blank out everything that is not a letter, digit or
// space.
func PreprocessText(text string) string {
	if text == "" {
		return ""
	}

	text = whitespaceRE.ReplaceAllString(strings.TrimSpace(strings.ToLower(text)), " ")
	text = nonAlnumRE.ReplaceAllString(text, " ")

	return text
}

// ExtractKeywords lowercases and splits the text on whitespace, drops stop
// words and tokens shorter than three characters, and returns the remaining
// tokens deduplicated in first-occurrence order.
func ExtractKeywords(text string) []string {
	if text == "" {
		return nil
	}

	var keywords []string
	seen := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if len(word) <= 2 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		keywords = append(keywords, word)
		seen[word] = struct{}{}
	}

	return keywords
}
