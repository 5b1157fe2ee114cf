package service

import (
	"context"
	"fmt"
	"time"

	yt "google.golang.org/api/youtube/v3"

	"github.com/sukantabhun/socioyt-go/internal/model"
)

type fakeUpstream struct {
	listChannels      func(ctx context.Context, mode model.LookupMode, value string) ([]*yt.Channel, error)
	listPlaylistItems func(ctx context.Context, playlistID, pageToken string, pageSize int64) (*yt.PlaylistItemListResponse, error)
	listVideos        func(ctx context.Context, ids []string) ([]*yt.Video, error)
}

func (f *fakeUpstream) ListChannels(ctx context.Context, mode model.LookupMode, value string) ([]*yt.Channel, error) {
	return f.listChannels(ctx, mode, value)
}

func (f *fakeUpstream) ListPlaylistItems(ctx context.Context, playlistID, pageToken string, pageSize int64) (*yt.PlaylistItemListResponse, error) {
	return f.listPlaylistItems(ctx, playlistID, pageToken, pageSize)
}

func (f *fakeUpstream) ListVideos(ctx context.Context, ids []string) ([]*yt.Video, error) {
	return f.listVideos(ctx, ids)
}

type fakeModel struct {
	predict func(ctx context.Context, text string) ([]float64, error)
}

func (f *fakeModel) Predict(ctx context.Context, text string) ([]float64, error) {
	return f.predict(ctx, text)
}

type fakeSuggester struct {
	suggest func(ctx context.Context, title, description string, tags []string) any
}

func (f *fakeSuggester) Suggest(ctx context.Context, title, description string, tags []string) any {
	return f.suggest(ctx, title, description, tags)
}

func makeIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("vid%03d", i)
	}
	return ids
}

// pagedPlaylist serves ids in pages of pageSize with tokens "p1", "p2", ...
func pagedPlaylist(ids []string, calls *[]string) func(context.Context, string, string, int64) (*yt.PlaylistItemListResponse, error) {
	return func(_ context.Context, _ string, pageToken string, pageSize int64) (*yt.PlaylistItemListResponse, error) {
		if calls != nil {
			*calls = append(*calls, pageToken)
		}
		page := 0
		if pageToken != "" {
			_, _ = fmt.Sscanf(pageToken, "p%d", &page)
		}
		start := page * int(pageSize)
		end := min(start+int(pageSize), len(ids))

		resp := &yt.PlaylistItemListResponse{}
		for _, id := range ids[start:end] {
			resp.Items = append(resp.Items, &yt.PlaylistItem{
				ContentDetails: &yt.PlaylistItemContentDetails{VideoId: id},
			})
		}
		if end < len(ids) {
			resp.NextPageToken = fmt.Sprintf("p%d", page+1)
		}
		return resp, nil
	}
}

// videoWithStats builds a videos.list item; views are derived from the id
// position so ordering tests can reason about them.
func videoWithStats(id string, published time.Time, views, likes, comments uint64) *yt.Video {
	return &yt.Video{
		Id: id,
		Snippet: &yt.VideoSnippet{
			Title:       "title " + id,
			ChannelId:   "UCchannel",
			PublishedAt: published.Format(time.RFC3339),
			Thumbnails: &yt.ThumbnailDetails{
				High: &yt.Thumbnail{Url: "https://i.ytimg.com/vi/" + id + "/hqdefault.jpg"},
			},
		},
		Statistics: &yt.VideoStatistics{
			ViewCount:    views,
			LikeCount:    likes,
			CommentCount: comments,
		},
	}
}

func record(id string, year int, views, likes, comments uint64) model.VideoRecord {
	return model.VideoRecord{
		VideoID:     id,
		PublishedAt: time.Date(year, time.June, 1, 12, 0, 0, 0, time.UTC),
		Views:       views,
		Likes:       likes,
		Comments:    comments,
	}
}
