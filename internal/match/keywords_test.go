package match

import (
	"reflect"
	"testing"
)

func TestPreprocessText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "lowercases and collapses whitespace",
			input:    "  Senior   Go\tDeveloper ",
			expected: "senior go developer",
		},
		{
			// specials become spaces after the collapse pass, so runs of
			// punctuation leave multiple spaces behind
			name:     "punctuation blanked",
			input:    "Hello,   World!",
			expected: "hello  world ",
		},
		{
			name:     "digits kept",
			input:    "5 years C++",
			expected: "5 years c  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PreprocessText(tt.input); got != tt.expected {
				t.Errorf("PreprocessText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
		{
			name:     "drops stop words and short tokens",
			input:    "The Python developer is at an AI startup",
			expected: []string{"python", "developer", "startup"},
		},
		{
			name:     "dedupes keeping first occurrence order",
			input:    "python tools python cloud tools",
			expected: []string{"python", "tools", "cloud"},
		},
		{
			// split happens on the raw text, punctuation stays attached
			name:     "punctuation kept in tokens",
			input:    "Python, SQL.",
			expected: []string{"python,", "sql."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractKeywords(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ExtractKeywords(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func BenchmarkExtractKeywords(b *testing.B) {
	text := "Experienced software engineer with Python, JavaScript and Go. " +
		"Built distributed systems on AWS with Docker and Kubernetes. " +
		"Led a team of five engineers delivering data pipelines."

	for b.Loop() {
		ExtractKeywords(text)
	}
}
