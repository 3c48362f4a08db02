package matching

import (
	"regexp"
	"strings"
)

var passivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:am|is|are|was|were|be|being|been)\s+(\w+ed)\b`),
	regexp.MustCompile(`(?i)\b(?:has|have|had)\s+been\s+(\w+ed)\b`),
	regexp.MustCompile(`(?i)\b(?:will|shall|should|would|could|might|must)\s+be\s+(\w+ed)\b`),
}

var reSentenceEnd = regexp.MustCompile(`[.!?]\s+`)

// PassiveExample pairs a passive sentence with an active rewrite.
type PassiveExample struct {
	Original   string
	Suggestion string
}

// VoiceReport summarises passive constructions in a text.
type VoiceReport struct {
	PassiveRatio float64
	Examples     []PassiveExample
}

const maxPassiveExamples = 3

// AnalyzeVoice measures the share of sentences (three words or longer) that
// use a passive construction.
func AnalyzeVoice(text string) VoiceReport {
	var report VoiceReport
	counted, passive := 0, 0
	for _, sentence := range splitSentences(text) {
		if len(strings.Fields(sentence)) < 3 {
			continue
		}
		counted++
		for _, re := range passivePatterns {
			loc := re.FindStringSubmatchIndex(sentence)
			if loc == nil {
				continue
			}
			passive++
			if len(report.Examples) < maxPassiveExamples {
				verb := sentence[loc[2]:loc[3]]
				report.Examples = append(report.Examples, PassiveExample{
					Original:   sentence,
					Suggestion: sentence[:loc[0]] + verb + sentence[loc[1]:],
				})
			}
			break
		}
	}
	if counted > 0 {
		report.PassiveRatio = float64(passive) / float64(counted)
	}
	return report
}

// splitSentences splits after terminal punctuation, keeping the punctuation.
func splitSentences(text string) []string {
	var out []string
	last := 0
	for _, loc := range reSentenceEnd.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[last : loc[0]+1]); s != "" {
			out = append(out, s)
		}
		last = loc[1]
	}
	if s := strings.TrimSpace(text[last:]); s != "" {
		out = append(out, s)
	}
	return out
}
