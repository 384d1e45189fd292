// Package models defines the data records exchanged with the analysis
// service and cached on the client.
package models

// Classification outcomes as reported by the service.
const (
	ResultReal = "Real"
	ResultFake = "Fake"
)

// AnalysisSummary is one row of the analysis history list. Text is the
// server-truncated preview; the full text is fetched separately on demand.
// The server defines the ordering, the client never re-sorts.
type AnalysisSummary struct {
	ID         int64   `json:"id"`
	Text       string  `json:"text"`
	Result     string  `json:"result"`
	Confidence float64 `json:"confidence"`
	Timestamp  string  `json:"timestamp"`
}

// AnalysisFull is the complete record for a single analysis: the untruncated
// text plus its classification.
type AnalysisFull struct {
	ID         int64   `json:"id"`
	Text       string  `json:"text"`
	Result     string  `json:"result"`
	Confidence float64 `json:"confidence"`
	Timestamp  string  `json:"timestamp,omitempty"`
}
