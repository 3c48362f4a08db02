package matching

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	maxKeywordSuggestions = 3
	maxPassiveSuggestions = 2
	maxQualitySuggestions = 2
	keywordContextRadius  = 100
	passiveRatioLimit     = 0.3
)

var (
	reQuantified = regexp.MustCompile(`\d+(\.\d+)?\s*(%|percent|x\b|k\b|m\b)|[$€£]\s*\d`)

	experienceHeadings = []string{"experience", "work experience", "employment"}
)

// ContentSuggestions produces ordered advice for the resume against the job.
func (c *Catalogue) ContentSuggestions(resumeText, jobText string, keywordsToAdd []string) []string {
	var out []string

	if !c.hasAchievementLanguage(resumeText) {
		out = append(out, "Your resume lacks achievement-oriented language. Add quantifiable results and outcomes for your experiences.")
	}

	lowerJob := strings.ToLower(jobText)
	for i, keyword := range keywordsToAdd {
		if i == maxKeywordSuggestions {
			break
		}
		snippet, ok := keywordContext(jobText, lowerJob, keyword)
		if !ok {
			continue
		}
		out = append(out, fmt.Sprintf("Add details about your experience with '%s'. The job description specifically mentions this skill in the context of: '%s'", keyword, snippet))
	}

	voice := AnalyzeVoice(resumeText)
	if voice.PassiveRatio > passiveRatioLimit {
		out = append(out, "Use more active voice and stronger action verbs to describe your experience.")
		for i, ex := range voice.Examples {
			if i == maxPassiveSuggestions {
				break
			}
			out = append(out, fmt.Sprintf("Replace passive phrase '%s' with active alternative like '%s'", ex.Original, ex.Suggestion))
		}
	}

	if section := ExtractSection(resumeText, experienceHeadings); section != "" && !c.hasImpactVerbs(section) {
		out = append(out, "Enhance your experience descriptions with more impactful action verbs like 'achieved', 'improved', 'increased', 'launched' or 'led'.")
	}

	missing := c.missingQualities(resumeText, jobText)
	for i, quality := range missing {
		if i == maxQualitySuggestions {
			break
		}
		out = append(out, fmt.Sprintf("Demonstrate the '%s' quality mentioned in the job description with specific examples from your experience.", quality))
	}

	if len(out) == 0 {
		out = append(out,
			"Tailor your resume to highlight more accomplishments and specific results relevant to the job description.",
			"Use numbers and metrics to quantify your achievements and responsibilities.",
		)
	}
	return out
}

func (c *Catalogue) hasAchievementLanguage(text string) bool {
	if reQuantified.MatchString(strings.ToLower(text)) {
		return true
	}
	return containsAnyWord(text, c.achievementWords)
}

func (c *Catalogue) hasImpactVerbs(section string) bool {
	return containsAnyWord(section, c.impactVerbs)
}

// missingQualities lists soft skills the job names that the resume does not,
// in job order.
func (c *Catalogue) missingQualities(resumeText, jobText string) []string {
	have := make(map[string]struct{})
	for _, s := range c.SoftSkills(resumeText) {
		have[s] = struct{}{}
	}
	var out []string
	for _, s := range c.SoftSkills(jobText) {
		if _, ok := have[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}

// keywordContext returns up to keywordContextRadius bytes either side of the
// first mention of keyword in text.
func keywordContext(text, lower, keyword string) (string, bool) {
	idx := strings.Index(lower, strings.ToLower(keyword))
	if idx < 0 {
		return "", false
	}
	src := text
	if len(lower) != len(text) {
		src = lower
	}
	start := max(0, idx-keywordContextRadius)
	end := min(len(src), idx+keywordContextRadius)
	return strings.TrimSpace(strings.ToValidUTF8(src[start:end], "")), true
}

// ExtractSection returns the body under the first heading found, up to the
// next blank line or capitalised line.
func ExtractSection(text string, headings []string) string {
	for _, heading := range headings {
		for _, variant := range []string{heading, strings.ToUpper(heading), titleCase(heading)} {
			re := regexp.MustCompile(`(?s)\b` + regexp.QuoteMeta(variant) + `\s*:?\s*\n(.*?)(?:\n\s*\n|\n\s*[A-Z]|\z)`)
			if m := re.FindStringSubmatch(text); m != nil {
				if body := strings.TrimSpace(m[1]); body != "" {
					return body
				}
			}
		}
	}
	return ""
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func containsAnyWord(text string, words map[string]struct{}) bool {
	for _, w := range reWord.FindAllString(strings.ToLower(text), -1) {
		if _, ok := words[w]; ok {
			return true
		}
	}
	return false
}
