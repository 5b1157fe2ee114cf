package service

import (
	"context"

	yt "google.golang.org/api/youtube/v3"

	"github.com/sukantabhun/socioyt-go/internal/model"
)

// Upstream is the subset of the YouTube Data API the pipeline calls.
// *youtube.Client satisfies it.
type Upstream interface {
	ListChannels(ctx context.Context, mode model.LookupMode, value string) ([]*yt.Channel, error)
	ListPlaylistItems(ctx context.Context, playlistID, pageToken string, pageSize int64) (*yt.PlaylistItemListResponse, error)
	ListVideos(ctx context.Context, ids []string) ([]*yt.Video, error)
}

// bestThumbnail picks the high resolution URL, falling back to medium and
// then default.
func bestThumbnail(details *yt.ThumbnailDetails) string {
	if details == nil {
		return ""
	}
	for _, th := range []*yt.Thumbnail{details.High, details.Medium, details.Default} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}
