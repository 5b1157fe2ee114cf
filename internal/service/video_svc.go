package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	yt "google.golang.org/api/youtube/v3"

	"github.com/sukantabhun/socioyt-go/internal/apperr"
	"github.com/sukantabhun/socioyt-go/internal/model"
)

// Suggester produces content suggestions for a video. It never fails: errors
// are reported inside the returned payload.
type Suggester interface {
	Suggest(ctx context.Context, title, description string, tags []string) any
}

// VideoService analyzes a single video's text.
type VideoService struct {
	upstream   Upstream
	classifier *SentimentClassifier
	suggester  Suggester
	logger     zerolog.Logger
}

func NewVideoService(upstream Upstream, classifier *SentimentClassifier, suggester Suggester, logger zerolog.Logger) *VideoService {
	return &VideoService{
		upstream:   upstream,
		classifier: classifier,
		suggester:  suggester,
		logger:     logger,
	}
}

// Analyze looks up a video, scores its text and asks for suggestions.
// Classification and suggestion run concurrently.
func (s *VideoService) Analyze(ctx context.Context, videoID string) (*model.VideoAnalysisResponse, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, apperr.Validation("video_id is required")
	}

	videos, err := s.upstream.ListVideos(ctx, []string{videoID})
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 || videos[0] == nil {
		return nil, apperr.NotFound("video not found").WithContext("video_id", videoID)
	}
	detail := detailFromVideo(videos[0])

	var (
		score       model.SentimentScore
		suggestions any
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		score, err = s.classifier.Classify(gctx, CombinedText(detail))
		return err
	})
	g.Go(func() error {
		suggestions = s.suggester.Suggest(gctx, detail.Title, detail.Description, detail.Tags)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.VideoAnalysisResponse{
		Title:       detail.Title,
		Description: detail.Description,
		Tags:        detail.Tags,
		Sentiment:   score,
		Suggestions: suggestions,
		Thumbnails:  detail.ThumbnailURL,
		ChannelID:   detail.ChannelID,
	}, nil
}

// CombinedText is the classifier input: title, description and tags joined
// by single spaces.
func CombinedText(d model.VideoDetail) string {
	return d.Title + " " + d.Description + " " + strings.Join(d.Tags, " ")
}

func detailFromVideo(v *yt.Video) model.VideoDetail {
	d := model.VideoDetail{VideoID: v.Id, Tags: []string{}}
	if v.Snippet != nil {
		d.Title = v.Snippet.Title
		d.Description = v.Snippet.Description
		d.ChannelID = v.Snippet.ChannelId
		d.ThumbnailURL = bestThumbnail(v.Snippet.Thumbnails)
		if len(v.Snippet.Tags) > 0 {
			d.Tags = v.Snippet.Tags
		}
	}
	return d
}
