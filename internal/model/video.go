package model

import "time"

// VideoRecord holds the statistics of one uploaded video as returned by a
// videos.list batch. VideoID is the identity key.
type VideoRecord struct {
	VideoID      string
	Title        string
	PublishedAt  time.Time
	Views        uint64
	Likes        uint64
	Comments     uint64
	ChannelID    string
	ThumbnailURL string
}

// Interactions is likes plus comments.
func (v VideoRecord) Interactions() uint64 {
	return v.Likes + v.Comments
}

// TopVideo is the wire shape of a ranked VideoRecord.
type TopVideo struct {
	VideoID       string `json:"videoId"`
	Title         string `json:"Title"`
	PublishedDate string `json:"PublishedDate"`
	Views         uint64 `json:"Views"`
	Likes         uint64 `json:"Likes"`
	Comments      uint64 `json:"Comments"`
	ChannelID     string `json:"channelId"`
	Thumbnail     string `json:"thumbnails"`
}

// NewTopVideo converts a record to its response form. The publish date is
// reported as a calendar date.
func NewTopVideo(v VideoRecord) TopVideo {
	return TopVideo{
		VideoID:       v.VideoID,
		Title:         v.Title,
		PublishedDate: v.PublishedAt.UTC().Format(time.DateOnly),
		Views:         v.Views,
		Likes:         v.Likes,
		Comments:      v.Comments,
		ChannelID:     v.ChannelID,
		Thumbnail:     v.ThumbnailURL,
	}
}

// VideoDetail is a single video looked up for text analysis.
type VideoDetail struct {
	VideoID      string
	Title        string
	Description  string
	Tags         []string
	ChannelID    string
	ThumbnailURL string
}

// VideoAnalysisResponse is the API response for GET /video/:video_id.
type VideoAnalysisResponse struct {
	Title       string         `json:"Title"`
	Description string         `json:"Description"`
	Tags        []string       `json:"Tags"`
	Sentiment   SentimentScore `json:"Sentiment"`
	Suggestions any            `json:"Suggestions"`
	Thumbnails  string         `json:"Thumbnails"`
	ChannelID   string         `json:"channelId"`
}
