// Package matching compares a resume with a job description: skill
// extraction, fuzzy term similarity, scoring, writing suggestions and a
// lexicon sentiment.
package matching

import "job-assistant/resume/contract"

// Analyzer turns two extracted texts into an analysis result.
type Analyzer struct {
	cat *Catalogue
}

func NewAnalyzer(cat *Catalogue) *Analyzer {
	if cat == nil {
		cat = DefaultCatalogue()
	}
	return &Analyzer{cat: cat}
}

// Analyze compares resumeText against jobText.
func (a *Analyzer) Analyze(resumeText, jobText string) contract.AnalysisResult {
	c := a.cat
	jobTech := c.TechnicalSkills(jobText)
	resumeTech := c.TechnicalSkills(resumeText)
	jobSoft := c.SoftSkills(jobText)
	resumeSoft := c.SoftSkills(resumeText)

	missingTech := c.Missing(jobTech, resumeTech)
	missingSoft := c.Missing(jobSoft, resumeSoft)

	toAdd := append(append([]string{}, missingTech...), missingSoft...)
	toRemove := c.Missing(resumeTech, jobTech)

	return contract.AnalysisResult{
		KeywordsToAdd:      toAdd,
		KeywordsToRemove:   toRemove,
		ContentSuggestions: c.ContentSuggestions(resumeText, jobText, toAdd),
		MatchScore:         c.MatchScore(resumeText, jobText, resumeTech, jobTech, resumeSoft, jobSoft),
		TechnicalSkillsMatch: &contract.SkillMatch{
			InJob:    jobTech,
			InResume: resumeTech,
			Missing:  missingTech,
		},
		SoftSkillsMatch: &contract.SkillMatch{
			InJob:    jobSoft,
			InResume: resumeSoft,
			Missing:  missingSoft,
		},
		SentimentAnalysis: contract.SentimentAnalysis{Sentiment: c.Sentiment(resumeText)},
	}.Normalize()
}

// Sentiment exposes the lexicon classifier on its own.
func (a *Analyzer) Sentiment(text string) contract.Sentiment {
	return a.cat.Sentiment(text)
}

// ErrorResult is returned in place of an analysis when a document could not
// be read; messages become the content suggestions.
func ErrorResult(messages ...string) contract.AnalysisResult {
	return contract.AnalysisResult{
		ContentSuggestions:   append([]string{}, messages...),
		TechnicalSkillsMatch: &contract.SkillMatch{},
		SoftSkillsMatch:      &contract.SkillMatch{},
		SentimentAnalysis:    contract.SentimentAnalysis{Sentiment: contract.SentimentNeutral},
	}.Normalize()
}
