package model

// YearlyEngagement aggregates the records published in one calendar year.
type YearlyEngagement struct {
	Year                  int     `json:"year"`
	TotalViews            uint64  `json:"total_views"`
	AverageEngagementRate float64 `json:"avg_engagement_rate"`
}

// EngagementReport is the derived engagement view of one channel.
type EngagementReport struct {
	OverallRate float64
	ByYear      []YearlyEngagement
}

// SentimentScore is a discrete polarity score in {1, 3, 4, 5}.
type SentimentScore int

// ChunkFailure describes one videos.list batch that could not be fetched.
type ChunkFailure struct {
	Index    int      `json:"index"`
	VideoIDs []string `json:"videoIds"`
	Kind     string   `json:"kind"`
	Message  string   `json:"message"`
}

// BatchResult is the outcome of a chunked statistics fetch. Records are in
// fetch order: chunk order, then upstream order within a chunk.
type BatchResult struct {
	Records      []VideoRecord
	FailedChunks []ChunkFailure
}
