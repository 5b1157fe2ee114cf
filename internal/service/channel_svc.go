package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sukantabhun/socioyt-go/internal/apperr"
	"github.com/sukantabhun/socioyt-go/internal/model"
)

// ChannelService runs the channel analysis pipeline:
// resolve, list uploads, fetch statistics, then derive engagement and ranking.
type ChannelService struct {
	resolver  *ChannelResolver
	paginator *PlaylistPaginator
	fetcher   *BatchStatsFetcher
	topN      int
	logger    zerolog.Logger
}

func NewChannelService(resolver *ChannelResolver, paginator *PlaylistPaginator, fetcher *BatchStatsFetcher, topN int, logger zerolog.Logger) *ChannelService {
	return &ChannelService{
		resolver:  resolver,
		paginator: paginator,
		fetcher:   fetcher,
		topN:      topN,
		logger:    logger,
	}
}

// Analyze builds the analysis response for a channel identifier.
func (s *ChannelService) Analyze(ctx context.Context, identifier string) (*model.ChannelAnalysisResponse, error) {
	summary, err := s.resolver.Resolve(ctx, identifier)
	if err != nil {
		return nil, err
	}

	ids, err := s.paginator.ListVideoIDs(ctx, summary.UploadsPlaylistID)
	if err != nil {
		return nil, err
	}

	batch, err := s.fetcher.FetchDetails(ctx, ids)
	if err != nil {
		return nil, err
	}

	report, err := Analyze(batch.Records, summary.SubscriberCount, summary.VideoCount)
	if err != nil {
		if !apperr.Is(err, apperr.KindValidation) {
			return nil, err
		}
		// Hidden subscriber counts and empty channels land here.
		s.logger.Warn().
			Err(err).
			Str("channel_id", summary.ChannelID).
			Bool("hidden_subscribers", summary.HiddenSubscribers).
			Msg("engagement rate undefined, reporting 0")
	}

	top := TopN(batch.Records, s.topN)
	topVideos := make([]model.TopVideo, 0, len(top))
	for _, r := range top {
		topVideos = append(topVideos, model.NewTopVideo(r))
	}

	s.logger.Info().
		Str("channel_id", summary.ChannelID).
		Int("videos", len(ids)).
		Int("records", len(batch.Records)).
		Int("failed_chunks", len(batch.FailedChunks)).
		Msg("channel analyzed")

	return &model.ChannelAnalysisResponse{
		ChannelName:    summary.Name,
		Subscribers:    summary.SubscriberCount,
		ViewCount:      summary.ViewCount,
		VideoCount:     summary.VideoCount,
		Pfp:            summary.AvatarURL,
		EngagementRate: report.OverallRate,
		TopVideos:      topVideos,
		GraphData:      report.ByYear,
		FailedChunks:   batch.FailedChunks,
	}, nil
}
