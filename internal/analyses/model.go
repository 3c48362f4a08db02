package analyses

import "job-assistant/resume/contract"

// Upload is one file received by the analyze endpoint, held in memory only.
type Upload struct {
	Name string
	Data []byte
}

// Outcome is what a single analysis produced.
type Outcome struct {
	Result contract.AnalysisResult
	// Cached is set when the result came from the cache.
	Cached bool
	// Degraded is set when a document could not be read and Result carries
	// the extraction messages instead of an analysis.
	Degraded bool
}

const defaultSentimentText = "This is a test text with a neutral sentiment."

type sentimentRequest struct {
	Text *string `json:"text"`
}

type sentimentResponse struct {
	Sentiment contract.Sentiment `json:"sentiment"`
}
