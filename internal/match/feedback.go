package match

import (
	"strings"

	"resumatch/internal/types"
)

// Score band messages, worst to best.
const (
	feedbackLowBand       = "Your resume has low compatibility with this job. Consider highlighting more relevant skills and experience."
	feedbackModerateBand  = "Your resume shows moderate compatibility. Consider emphasizing relevant experience more prominently."
	feedbackGoodBand      = "Your resume shows good compatibility with this job. Minor improvements could increase your match score."
	feedbackExcellentBand = "Excellent match! Your resume aligns well with the job requirements."

	feedbackMissingPrefix = "Consider highlighting these relevant skills/keywords: "
	feedbackNoEmail       = "Make sure your email address is clearly visible on your resume."
	feedbackNoPhone       = "Consider adding your phone number for easy contact."
	feedbackTooShort      = "Your resume might be too short. Consider adding more details about your experience and achievements."
	feedbackTooLong       = "Your resume might be too long. Consider being more concise and focusing on the most relevant information."
)

// generateFeedback builds the ordered improvement feedback for a match:
// score band, missing keywords, contact gaps, then length.
func generateFeedback(resume types.ResumeProfile, resumeKeywords, jobKeywords []string, overall float64) []string {
	feedback := make([]string, 0, 4)

	switch {
	case overall < 0.3:
		feedback = append(feedback, feedbackLowBand)
	case overall < 0.5:
		feedback = append(feedback, feedbackModerateBand)
	case overall < 0.7:
		feedback = append(feedback, feedbackGoodBand)
	default:
		feedback = append(feedback, feedbackExcellentBand)
	}

	if missing := missingKeywords(resume, resumeKeywords, jobKeywords); len(missing) > 0 {
		if len(missing) > maxMissingKeywords {
			missing = missing[:maxMissingKeywords]
		}
		feedback = append(feedback, feedbackMissingPrefix+strings.Join(missing, ", "))
	}

	if resume.Email == "" {
		feedback = append(feedback, feedbackNoEmail)
	}
	if resume.Phone == "" {
		feedback = append(feedback, feedbackNoPhone)
	}

	if resume.WordCount < shortResumeWords {
		feedback = append(feedback, feedbackTooShort)
	} else if resume.WordCount > longResumeWords {
		feedback = append(feedback, feedbackTooLong)
	}

	return feedback
}

// missingKeywords returns job keywords absent from both the resume keywords
// and the lowercased resume skills, in job-keyword order.
func missingKeywords(resume types.ResumeProfile, resumeKeywords, jobKeywords []string) []string {
	resumeSet := toSet(resumeKeywords)
	skillSet := make(map[string]struct{}, len(resume.Skills))
	for _, s := range resume.Skills {
		skillSet[strings.ToLower(s)] = struct{}{}
	}

	var missing []string
	for _, kw := range jobKeywords {
		if _, ok := resumeSet[kw]; ok {
			continue
		}
		if _, ok := skillSet[kw]; ok {
			continue
		}
		missing = append(missing, kw)
	}
	return missing
}
