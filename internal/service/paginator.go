package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sukantabhun/socioyt-go/internal/apperr"
	"github.com/sukantabhun/socioyt-go/internal/metrics"
)

// PlaylistPageSize is the largest page playlistItems.list serves.
const PlaylistPageSize = 50

// PlaylistPaginator walks every page of a playlist.
type PlaylistPaginator struct {
	upstream Upstream
	logger   zerolog.Logger
}

func NewPlaylistPaginator(upstream Upstream, logger zerolog.Logger) *PlaylistPaginator {
	return &PlaylistPaginator{upstream: upstream, logger: logger}
}

// ListVideoIDs returns every video id in the playlist in upstream order.
// Pages are fetched one at a time; any failed page aborts the walk.
func (p *PlaylistPaginator) ListVideoIDs(ctx context.Context, playlistID string) ([]string, error) {
	if playlistID == "" {
		return []string{}, nil
	}

	ids := []string{}
	seen := make(map[string]struct{})
	pageToken := ""
	pages := 0

	for {
		resp, err := p.upstream.ListPlaylistItems(ctx, playlistID, pageToken, PlaylistPageSize)
		if err != nil {
			if apperr.Is(err, apperr.KindUpstream) || ctx.Err() != nil {
				return nil, err
			}
			return nil, apperr.Upstream("playlist page failed", err).WithContext("page", pages)
		}
		pages++
		metrics.PagesFetched.Inc()

		for _, item := range resp.Items {
			if item == nil || item.ContentDetails == nil || item.ContentDetails.VideoId == "" {
				continue
			}
			ids = append(ids, item.ContentDetails.VideoId)
		}

		if resp.NextPageToken == "" {
			break
		}
		if _, dup := seen[resp.NextPageToken]; dup {
			return nil, apperr.Upstream("playlist pagination repeated a page token", nil).
				WithContext("page", pages)
		}
		seen[resp.NextPageToken] = struct{}{}
		pageToken = resp.NextPageToken
	}

	p.logger.Debug().Int("pages", pages).Int("videos", len(ids)).Msg("playlist walked")
	return ids, nil
}
