package model

// LookupMode selects which channels.list parameter resolves a channel.
type LookupMode string

const (
	LookupByHandle   LookupMode = "handle"
	LookupByUsername LookupMode = "username"
	LookupByID       LookupMode = "id"
)

// ChannelSummary is the normalized view of a single channels.list item.
// SubscriberCount and VideoCount are used as divisors downstream.
type ChannelSummary struct {
	ChannelID         string `json:"channelId"`
	Name              string `json:"name"`
	SubscriberCount   uint64 `json:"subscriberCount"`
	HiddenSubscribers bool   `json:"hiddenSubscribers,omitempty"`
	ViewCount         uint64 `json:"viewCount"`
	VideoCount        uint64 `json:"videoCount"`
	UploadsPlaylistID string `json:"uploadsPlaylistId"`
	AvatarURL         string `json:"avatarUrl"`
}

// ChannelAnalysisResponse is the API response for GET /channel/lookup.
// Key names match what the web client already consumes.
type ChannelAnalysisResponse struct {
	ChannelName    string             `json:"ChannelName"`
	Subscribers    uint64             `json:"Subscribers"`
	ViewCount      uint64             `json:"ViewCount"`
	VideoCount     uint64             `json:"VideoCount"`
	Pfp            string             `json:"pfp"`
	EngagementRate float64            `json:"EngagementRate"`
	TopVideos      []TopVideo         `json:"TopVideos"`
	GraphData      []YearlyEngagement `json:"GraphData"`
	FailedChunks   []ChunkFailure     `json:"FailedChunks,omitempty"`
}
