package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yt "google.golang.org/api/youtube/v3"

	"github.com/sukantabhun/socioyt-go/internal/apperr"
)

func TestListVideoIDs_WalksEveryPage(t *testing.T) {
	ids := makeIDs(120)
	var tokens []string
	up := &fakeUpstream{listPlaylistItems: pagedPlaylist(ids, &tokens)}

	got, err := NewPlaylistPaginator(up, zerolog.Nop()).ListVideoIDs(context.Background(), "UU123")
	require.NoError(t, err)

	assert.Equal(t, []string{"", "p1", "p2"}, tokens)
	assert.Equal(t, ids, got)
}

func TestListVideoIDs_ExactPageBoundary(t *testing.T) {
	ids := makeIDs(100)
	var tokens []string
	up := &fakeUpstream{listPlaylistItems: pagedPlaylist(ids, &tokens)}

	got, err := NewPlaylistPaginator(up, zerolog.Nop()).ListVideoIDs(context.Background(), "UU123")
	require.NoError(t, err)
	assert.Len(t, tokens, 2)
	assert.Len(t, got, 100)
}

func TestListVideoIDs_EmptyPlaylist(t *testing.T) {
	up := &fakeUpstream{
		listPlaylistItems: func(context.Context, string, string, int64) (*yt.PlaylistItemListResponse, error) {
			return &yt.PlaylistItemListResponse{}, nil
		},
	}
	got, err := NewPlaylistPaginator(up, zerolog.Nop()).ListVideoIDs(context.Background(), "UU123")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestListVideoIDs_NoUploadsPlaylist(t *testing.T) {
	up := &fakeUpstream{
		listPlaylistItems: func(context.Context, string, string, int64) (*yt.PlaylistItemListResponse, error) {
			t.Fatal("no page should be requested")
			return nil, nil
		},
	}
	got, err := NewPlaylistPaginator(up, zerolog.Nop()).ListVideoIDs(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListVideoIDs_PageFailureAborts(t *testing.T) {
	ids := makeIDs(120)
	serve := pagedPlaylist(ids, nil)
	up := &fakeUpstream{
		listPlaylistItems: func(ctx context.Context, playlistID, pageToken string, pageSize int64) (*yt.PlaylistItemListResponse, error) {
			if pageToken == "p1" {
				return nil, apperr.Upstream("playlistItems.list: status 500", nil)
			}
			return serve(ctx, playlistID, pageToken, pageSize)
		},
	}

	got, err := NewPlaylistPaginator(up, zerolog.Nop()).ListVideoIDs(context.Background(), "UU123")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
}

func TestListVideoIDs_MissingPlaylistIsUpstreamError(t *testing.T) {
	up := &fakeUpstream{
		listPlaylistItems: func(context.Context, string, string, int64) (*yt.PlaylistItemListResponse, error) {
			return nil, apperr.NotFound("playlistItems.list: resource not found")
		},
	}
	_, err := NewPlaylistPaginator(up, zerolog.Nop()).ListVideoIDs(context.Background(), "UU404")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
}

func TestListVideoIDs_RepeatedTokenAborts(t *testing.T) {
	calls := 0
	up := &fakeUpstream{
		listPlaylistItems: func(context.Context, string, string, int64) (*yt.PlaylistItemListResponse, error) {
			calls++
			return &yt.PlaylistItemListResponse{
				Items:         []*yt.PlaylistItem{{ContentDetails: &yt.PlaylistItemContentDetails{VideoId: "loop"}}},
				NextPageToken: "same",
			}, nil
		},
	}

	_, err := NewPlaylistPaginator(up, zerolog.Nop()).ListVideoIDs(context.Background(), "UU123")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
	assert.Equal(t, 2, calls)
}
