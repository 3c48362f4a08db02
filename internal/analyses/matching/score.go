package matching

import (
	"regexp"
	"strings"
)

var reWord = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Score weights, in points out of 100.
const (
	technicalWeight = 50
	softWeight      = 20
	overlapWeight   = 30
)

// MatchScore combines technical coverage, soft skill coverage and word overlap
// into a 0..100 score. A category the job does not mention scores full marks.
func (c *Catalogue) MatchScore(resumeText, jobText string, resumeTech, jobTech, resumeSoft, jobSoft []string) int {
	total := 0.0
	total += coverage(c, jobTech, resumeTech) * technicalWeight
	total += coverage(c, jobSoft, resumeSoft) * softWeight
	total += float64(percent(jaccard(resumeText, jobText))) / 100 * overlapWeight
	return clamp(int(total), 0, 100)
}

// coverage is the truncated percentage of want found in have, as a 0..1 fraction.
func coverage(c *Catalogue, want, have []string) float64 {
	if len(want) == 0 {
		return 1
	}
	matched := 0
	for _, w := range want {
		if c.HasSimilarTerm(w, have) {
			matched++
		}
	}
	return float64(percent(float64(matched)/float64(len(want)))) / 100
}

// jaccard is the word-set overlap of the two texts.
func jaccard(a, b string) float64 {
	wa, wb := wordSet(a), wordSet(b)
	union := len(wa)
	inter := 0
	for w := range wb {
		if _, ok := wa[w]; ok {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func wordSet(text string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range reWord.FindAllString(strings.ToLower(text), -1) {
		out[w] = struct{}{}
	}
	return out
}

func percent(fraction float64) int {
	return clamp(int(fraction*100), 0, 100)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
