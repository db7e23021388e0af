package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumatch/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AnalysisResult", &AnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalysisResult", &AnalysisMarkdownFormatter{})
	registry.RegisterFormatter("text", "ResumeProfile", &ProfileTextFormatter{})
	registry.RegisterFormatter("markdown", "ResumeProfile", &ProfileMarkdownFormatter{})
	registry.RegisterFormatter("text", "JobList", &JobListTextFormatter{})
	registry.RegisterFormatter("markdown", "JobList", &JobListMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.AnalysisResult, *types.AnalysisResult:
		return "AnalysisResult"
	case types.ResumeProfile:
		return "ResumeProfile"
	case types.JobList:
		return "JobList"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

func asAnalysisResult(data any) (types.AnalysisResult, error) {
	switch v := data.(type) {
	case types.AnalysisResult:
		return v, nil
	case *types.AnalysisResult:
		return *v, nil
	default:
		return types.AnalysisResult{}, fmt.Errorf("expected AnalysisResult, got %T", data)
	}
}

// AnalysisTextFormatter handles text formatting for analysis results
type AnalysisTextFormatter struct{}

func (atf *AnalysisTextFormatter) Format(data any) (string, error) {
	result, err := asAnalysisResult(data)
	if err != nil {
		return "", err
	}

	var output strings.Builder

	output.WriteString("=== RESUME PROFILE ===\n\n")
	writeProfileText(&output, result.Resume)
	output.WriteString("\n")

	output.WriteString("=== JOB MATCHES ===\n\n")
	for i, m := range result.Matches {
		output.WriteString(fmt.Sprintf("%d. %s at %s\n", i+1, m.JobTitle, m.Company))
		output.WriteString(fmt.Sprintf("   Location: %s | Salary: %s\n", m.Location, m.Salary))
		output.WriteString(fmt.Sprintf("   Overall: %.1f%% (%s) | Semantic: %.1f%% | Keywords: %.1f%%\n",
			m.SimilarityScore, m.MatchLevel, m.SemanticSimilarity, m.KeywordOverlap))
		if len(m.MatchedSkills) > 0 {
			output.WriteString("   Matched skills: ")
			output.WriteString(strings.Join(m.MatchedSkills, ", "))
			output.WriteString("\n")
		}
		if len(m.Feedback) > 0 {
			output.WriteString("   Feedback:\n")
			for _, fb := range m.Feedback {
				output.WriteString(fmt.Sprintf("   - %s\n", fb))
			}
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (atf *AnalysisTextFormatter) SupportedType() string {
	return "AnalysisResult"
}

// AnalysisMarkdownFormatter handles markdown formatting for analysis results
type AnalysisMarkdownFormatter struct{}

func (amf *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, err := asAnalysisResult(data)
	if err != nil {
		return "", err
	}

	var output strings.Builder

	output.WriteString("# Resume Analysis\n\n")
	output.WriteString("## Profile\n\n")
	writeProfileMarkdown(&output, result.Resume)
	output.WriteString("\n")

	output.WriteString("## Job Matches\n\n")
	for i, m := range result.Matches {
		output.WriteString(fmt.Sprintf("### %d. %s at %s\n\n", i+1, m.JobTitle, m.Company))
		output.WriteString(fmt.Sprintf("**Location:** %s | **Salary:** %s\n\n", m.Location, m.Salary))
		output.WriteString(fmt.Sprintf("**Overall:** %.1f%% (%s) | **Semantic:** %.1f%% | **Keywords:** %.1f%%\n\n",
			m.SimilarityScore, m.MatchLevel, m.SemanticSimilarity, m.KeywordOverlap))
		if len(m.MatchedSkills) > 0 {
			output.WriteString("**Matched skills:** ")
			output.WriteString(strings.Join(m.MatchedSkills, ", "))
			output.WriteString("\n\n")
		}
		if len(m.Feedback) > 0 {
			output.WriteString("**Feedback:**\n\n")
			for _, fb := range m.Feedback {
				output.WriteString(fmt.Sprintf("- %s\n", fb))
			}
			output.WriteString("\n")
		}
	}

	return output.String(), nil
}

func (amf *AnalysisMarkdownFormatter) SupportedType() string {
	return "AnalysisResult"
}

// ProfileTextFormatter handles text formatting for extracted resume profiles
type ProfileTextFormatter struct{}

func (ptf *ProfileTextFormatter) Format(data any) (string, error) {
	profile, ok := data.(types.ResumeProfile)
	if !ok {
		return "", fmt.Errorf("expected ResumeProfile, got %T", data)
	}

	var output strings.Builder
	output.WriteString("=== RESUME PROFILE ===\n\n")
	writeProfileText(&output, profile)

	return output.String(), nil
}

func (ptf *ProfileTextFormatter) SupportedType() string {
	return "ResumeProfile"
}

// ProfileMarkdownFormatter handles markdown formatting for extracted resume profiles
type ProfileMarkdownFormatter struct{}

func (pmf *ProfileMarkdownFormatter) Format(data any) (string, error) {
	profile, ok := data.(types.ResumeProfile)
	if !ok {
		return "", fmt.Errorf("expected ResumeProfile, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Resume Profile\n\n")
	writeProfileMarkdown(&output, profile)

	return output.String(), nil
}

func (pmf *ProfileMarkdownFormatter) SupportedType() string {
	return "ResumeProfile"
}

func writeProfileText(output *strings.Builder, profile types.ResumeProfile) {
	output.WriteString(fmt.Sprintf("Name: %s\n", orUnknown(profile.Name)))
	output.WriteString(fmt.Sprintf("Email: %s\n", orUnknown(profile.Email)))
	output.WriteString(fmt.Sprintf("Phone: %s\n", orUnknown(profile.Phone)))
	output.WriteString(fmt.Sprintf("Word count: %d\n", profile.WordCount))

	if len(profile.Skills) > 0 {
		output.WriteString("Skills: ")
		output.WriteString(strings.Join(profile.Skills, ", "))
		output.WriteString("\n")
	}
	if len(profile.Education) > 0 {
		output.WriteString("Education:\n")
		for _, edu := range profile.Education {
			output.WriteString(fmt.Sprintf("- %s\n", edu))
		}
	}
	if len(profile.Experience) > 0 {
		output.WriteString("Experience:\n")
		for _, exp := range profile.Experience {
			output.WriteString(fmt.Sprintf("- %s\n", exp))
		}
	}
}

func writeProfileMarkdown(output *strings.Builder, profile types.ResumeProfile) {
	output.WriteString(fmt.Sprintf("**Name:** %s\n\n", orUnknown(profile.Name)))
	output.WriteString(fmt.Sprintf("**Email:** %s\n\n", orUnknown(profile.Email)))
	output.WriteString(fmt.Sprintf("**Phone:** %s\n\n", orUnknown(profile.Phone)))
	output.WriteString(fmt.Sprintf("**Word count:** %d\n\n", profile.WordCount))

	if len(profile.Skills) > 0 {
		output.WriteString("**Skills:** ")
		output.WriteString(strings.Join(profile.Skills, ", "))
		output.WriteString("\n\n")
	}
	if len(profile.Education) > 0 {
		output.WriteString("**Education:**\n\n")
		for _, edu := range profile.Education {
			output.WriteString(fmt.Sprintf("- %s\n", edu))
		}
		output.WriteString("\n")
	}
	if len(profile.Experience) > 0 {
		output.WriteString("**Experience:**\n\n")
		for _, exp := range profile.Experience {
			output.WriteString(fmt.Sprintf("- %s\n", exp))
		}
		output.WriteString("\n")
	}
}

func orUnknown(v string) string {
	if v == "" {
		return "Not found"
	}
	return v
}

// JobListTextFormatter handles text formatting for job catalogs
type JobListTextFormatter struct{}

func (jlf *JobListTextFormatter) Format(data any) (string, error) {
	list, ok := data.(types.JobList)
	if !ok {
		return "", fmt.Errorf("expected JobList, got %T", data)
	}

	var output strings.Builder
	output.WriteString(fmt.Sprintf("=== JOB POSTINGS (%d) ===\n\n", len(list.Jobs)))
	for _, job := range list.Jobs {
		output.WriteString(fmt.Sprintf("[%s] %s at %s\n", job.ID, job.Title, job.Company))
		if job.Location != "" {
			output.WriteString(fmt.Sprintf("    Location: %s\n", job.Location))
		}
		if job.Salary != "" {
			output.WriteString(fmt.Sprintf("    Salary: %s\n", job.Salary))
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (jlf *JobListTextFormatter) SupportedType() string {
	return "JobList"
}

// JobListMarkdownFormatter handles markdown formatting for job catalogs
type JobListMarkdownFormatter struct{}

func (jlmf *JobListMarkdownFormatter) Format(data any) (string, error) {
	list, ok := data.(types.JobList)
	if !ok {
		return "", fmt.Errorf("expected JobList, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Job Postings\n\n")
	for _, job := range list.Jobs {
		output.WriteString(fmt.Sprintf("## %s. %s at %s\n\n", job.ID, job.Title, job.Company))
		if job.Location != "" {
			output.WriteString(fmt.Sprintf("**Location:** %s\n\n", job.Location))
		}
		if job.Salary != "" {
			output.WriteString(fmt.Sprintf("**Salary:** %s\n\n", job.Salary))
		}
		if job.Description != "" {
			output.WriteString(job.Description)
			output.WriteString("\n\n")
		}
	}

	return output.String(), nil
}

func (jlmf *JobListMarkdownFormatter) SupportedType() string {
	return "JobList"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
