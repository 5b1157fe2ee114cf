package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	yt "google.golang.org/api/youtube/v3"

	"github.com/sukantabhun/socioyt-go/internal/apperr"
	"github.com/sukantabhun/socioyt-go/internal/model"
)

const channelIDPrefix = "UC"

// ChannelResolver turns a user-supplied channel identifier into a summary.
type ChannelResolver struct {
	upstream Upstream
	logger   zerolog.Logger
}

func NewChannelResolver(upstream Upstream, logger zerolog.Logger) *ChannelResolver {
	return &ChannelResolver{upstream: upstream, logger: logger}
}

// DetectLookupMode decides how identifier is looked up and returns the value
// to send upstream. A leading "@" is a handle, anything not starting with
// "UC" is a legacy username, the rest are channel ids.
func DetectLookupMode(identifier string) (model.LookupMode, string) {
	switch {
	case strings.HasPrefix(identifier, "@"):
		return model.LookupByHandle, identifier[1:]
	case !strings.HasPrefix(identifier, channelIDPrefix):
		return model.LookupByUsername, identifier
	default:
		return model.LookupByID, identifier
	}
}

// Resolve looks up a single channel.
func (r *ChannelResolver) Resolve(ctx context.Context, identifier string) (*model.ChannelSummary, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, apperr.Validation("channel identifier is required")
	}

	mode, value := DetectLookupMode(identifier)
	if value == "" {
		return nil, apperr.Validation("channel handle is empty")
	}

	items, err := r.upstream.ListChannels(ctx, mode, value)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 || items[0] == nil {
		return nil, apperr.NotFound("channel not found").
			WithContext("lookup_mode", string(mode))
	}

	summary := summaryFromChannel(items[0])
	r.logger.Debug().
		Str("lookup_mode", string(mode)).
		Str("channel_id", summary.ChannelID).
		Msg("channel resolved")
	return summary, nil
}

func summaryFromChannel(ch *yt.Channel) *model.ChannelSummary {
	s := &model.ChannelSummary{ChannelID: ch.Id}
	if ch.Snippet != nil {
		s.Name = ch.Snippet.Title
		s.AvatarURL = bestThumbnail(ch.Snippet.Thumbnails)
	}
	if ch.Statistics != nil {
		s.SubscriberCount = ch.Statistics.SubscriberCount
		s.HiddenSubscribers = ch.Statistics.HiddenSubscriberCount
		s.ViewCount = ch.Statistics.ViewCount
		s.VideoCount = ch.Statistics.VideoCount
	}
	if ch.ContentDetails != nil && ch.ContentDetails.RelatedPlaylists != nil {
		s.UploadsPlaylistID = ch.ContentDetails.RelatedPlaylists.Uploads
	}
	return s
}
