package matching

import (
	"strings"

	"job-assistant/resume/contract"
)

// sentimentMargin is how far the positive share must lean either way before
// a text stops being neutral.
const sentimentMargin = 0.25

// Sentiment classifies text by counting lexicon hits.
func (c *Catalogue) Sentiment(text string) contract.Sentiment {
	pos, neg := 0, 0
	for _, w := range reWord.FindAllString(strings.ToLower(text), -1) {
		if _, ok := c.positive[w]; ok {
			pos++
		}
		if _, ok := c.negative[w]; ok {
			neg++
		}
	}
	if pos+neg == 0 {
		return contract.SentimentNeutral
	}
	balance := float64(pos-neg) / float64(pos+neg)
	switch {
	case balance > sentimentMargin:
		return contract.SentimentPositive
	case balance < -sentimentMargin:
		return contract.SentimentNegative
	default:
		return contract.SentimentNeutral
	}
}
