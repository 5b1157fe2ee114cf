package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yt "google.golang.org/api/youtube/v3"

	"github.com/sukantabhun/socioyt-go/internal/apperr"
	"github.com/sukantabhun/socioyt-go/internal/model"
)

func newVideoService(up Upstream, m SentimentModel, s Suggester) *VideoService {
	return NewVideoService(up, NewSentimentClassifier(m, zerolog.Nop()), s, zerolog.Nop())
}

func TestVideoAnalyze(t *testing.T) {
	up := &fakeUpstream{
		listVideos: func(_ context.Context, ids []string) ([]*yt.Video, error) {
			require.Equal(t, []string{"abc123"}, ids)
			v := videoWithStats("abc123", time.Now(), 10, 1, 1)
			v.Snippet.Title = "Title"
			v.Snippet.Description = "Desc"
			v.Snippet.Tags = []string{"go", "api"}
			return []*yt.Video{v}, nil
		},
	}

	var classified string
	m := &fakeModel{predict: func(_ context.Context, text string) ([]float64, error) {
		classified = text
		return oneHot(3), nil
	}}
	s := &fakeSuggester{suggest: func(_ context.Context, title, _ string, tags []string) any {
		return map[string]any{"title": title, "tags": len(tags)}
	}}

	got, err := newVideoService(up, m, s).Analyze(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "Title Desc go api", classified)
	assert.Equal(t, model.SentimentScore(4), got.Sentiment)
	assert.Equal(t, []string{"go", "api"}, got.Tags)
	assert.Equal(t, map[string]any{"title": "Title", "tags": 2}, got.Suggestions)
	assert.Equal(t, "UCchannel", got.ChannelID)
	assert.Contains(t, got.Thumbnails, "abc123")
}

func TestVideoAnalyze_NoTags(t *testing.T) {
	up := &fakeUpstream{
		listVideos: func(context.Context, []string) ([]*yt.Video, error) {
			return []*yt.Video{{Id: "x", Snippet: &yt.VideoSnippet{Title: "T", Description: "D"}}}, nil
		},
	}
	var classified string
	m := &fakeModel{predict: func(_ context.Context, text string) ([]float64, error) {
		classified = text
		return oneHot(0), nil
	}}
	s := &fakeSuggester{suggest: func(context.Context, string, string, []string) any { return "raw" }}

	got, err := newVideoService(up, m, s).Analyze(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "T D ", classified)
	assert.NotNil(t, got.Tags)
	assert.Empty(t, got.Tags)
	assert.Equal(t, "raw", got.Suggestions)
}

func TestVideoAnalyze_Errors(t *testing.T) {
	okModel := &fakeModel{predict: func(context.Context, string) ([]float64, error) { return oneHot(2), nil }}
	okSuggester := &fakeSuggester{suggest: func(context.Context, string, string, []string) any { return nil }}
	oneVideo := func(context.Context, []string) ([]*yt.Video, error) {
		return []*yt.Video{{Id: "x", Snippet: &yt.VideoSnippet{Title: "T"}}}, nil
	}

	tests := []struct {
		name     string
		id       string
		list     func(context.Context, []string) ([]*yt.Video, error)
		model    SentimentModel
		wantKind apperr.Kind
	}{
		{"blank id", " ", oneVideo, okModel, apperr.KindValidation},
		{"missing video", "gone", func(context.Context, []string) ([]*yt.Video, error) { return nil, nil }, okModel, apperr.KindNotFound},
		{"upstream failure", "x", func(context.Context, []string) ([]*yt.Video, error) {
			return nil, apperr.Upstream("videos.list: status 503", nil)
		}, okModel, apperr.KindUpstream},
		{"classifier failure", "x", oneVideo, &fakeModel{predict: func(context.Context, string) ([]float64, error) {
			return nil, errors.New("model loading")
		}}, apperr.KindClassification},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := &fakeUpstream{listVideos: tt.list}
			_, err := newVideoService(up, tt.model, okSuggester).Analyze(context.Background(), tt.id)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
		})
	}
}

func TestCombinedText(t *testing.T) {
	got := CombinedText(model.VideoDetail{Title: "a", Description: "b", Tags: []string{"c", "d"}})
	assert.Equal(t, "a b c d", got)
}
