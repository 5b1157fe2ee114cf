package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yt "google.golang.org/api/youtube/v3"

	"github.com/sukantabhun/socioyt-go/internal/apperr"
	"github.com/sukantabhun/socioyt-go/internal/model"
)

func newChannelService(up Upstream, topN int) *ChannelService {
	log := zerolog.Nop()
	return NewChannelService(
		NewChannelResolver(up, log),
		NewPlaylistPaginator(up, log),
		NewBatchStatsFetcher(up, 4, log),
		topN,
		log,
	)
}

func channelUpstream(subscribers, videoCount uint64, ids []string) *fakeUpstream {
	return &fakeUpstream{
		listChannels: func(context.Context, model.LookupMode, string) ([]*yt.Channel, error) {
			return []*yt.Channel{{
				Id:      "UCchannel",
				Snippet: &yt.ChannelSnippet{Title: "Channel"},
				Statistics: &yt.ChannelStatistics{
					SubscriberCount:       subscribers,
					HiddenSubscriberCount: subscribers == 0,
					ViewCount:             123456,
					VideoCount:            videoCount,
				},
				ContentDetails: &yt.ChannelContentDetails{
					RelatedPlaylists: &yt.ChannelContentDetailsRelatedPlaylists{Uploads: "UUchannel"},
				},
			}}, nil
		},
		listPlaylistItems: pagedPlaylist(ids, nil),
		listVideos: func(_ context.Context, batch []string) ([]*yt.Video, error) {
			out := make([]*yt.Video, 0, len(batch))
			for _, id := range batch {
				var idx int
				for i, v := range ids {
					if v == id {
						idx = i
					}
				}
				year := 2020 + idx%3
				out = append(out, videoWithStats(id, time.Date(year, 5, 1, 0, 0, 0, 0, time.UTC), uint64(100+idx), 10, 5))
			}
			return out, nil
		},
	}
}

func TestChannelAnalyze_Pipeline(t *testing.T) {
	ids := makeIDs(120)
	svc := newChannelService(channelUpstream(1000, 120, ids), 10)

	got, err := svc.Analyze(context.Background(), "@channel")
	require.NoError(t, err)

	assert.Equal(t, "Channel", got.ChannelName)
	assert.Equal(t, uint64(1000), got.Subscribers)
	assert.Equal(t, uint64(120), got.VideoCount)
	// 120 videos * 15 interactions / 120 / 1000 * 100
	assert.InDelta(t, 1.5, got.EngagementRate, 1e-9)

	require.Len(t, got.TopVideos, 10)
	assert.Equal(t, "vid119", got.TopVideos[0].VideoID)
	assert.Equal(t, uint64(219), got.TopVideos[0].Views)
	assert.Equal(t, "UCchannel", got.TopVideos[0].ChannelID)

	require.Len(t, got.GraphData, 3)
	var total uint64
	for _, y := range got.GraphData {
		total += y.TotalViews
	}
	// Σ (100 + i) for i in [0,120)
	assert.Equal(t, uint64(120*100+119*120/2), total)
	assert.Empty(t, got.FailedChunks)
}

func TestChannelAnalyze_HiddenSubscribersFallsBackToZero(t *testing.T) {
	ids := makeIDs(5)
	svc := newChannelService(channelUpstream(0, 5, ids), 10)

	got, err := svc.Analyze(context.Background(), "UCchannel")
	require.NoError(t, err)
	assert.Zero(t, got.EngagementRate)
	assert.Len(t, got.TopVideos, 5)
}

func TestChannelAnalyze_NotFound(t *testing.T) {
	up := &fakeUpstream{
		listChannels: func(context.Context, model.LookupMode, string) ([]*yt.Channel, error) {
			return nil, nil
		},
	}
	_, err := newChannelService(up, 10).Analyze(context.Background(), "nobody")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
