package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/sukantabhun/socioyt-go/internal/apperr"
	"github.com/sukantabhun/socioyt-go/internal/metrics"
	"github.com/sukantabhun/socioyt-go/internal/model"
)

// MaxSentimentTokens is the input budget of the sentiment model.
const MaxSentimentTokens = 512

// MaxSentimentRunes caps text that splits into few words but many wordpieces,
// such as CJK without spaces or long URLs. The model server truncates to the
// exact wordpiece budget; this keeps the request small either way.
const MaxSentimentRunes = 2000

// sentimentClasses is the width of the model's output distribution.
const sentimentClasses = 5

// scoreByClass maps the model's class index (0 = one star) to the reported
// score. Classes 0 and 1 both report 1, so a score of 2 never occurs.
var scoreByClass = [sentimentClasses]model.SentimentScore{1, 1, 3, 4, 5}

// SentimentModel returns a probability (or logit) per class for text.
type SentimentModel interface {
	Predict(ctx context.Context, text string) ([]float64, error)
}

// SentimentClassifier scores free text on the discrete sentiment scale.
type SentimentClassifier struct {
	model  SentimentModel
	logger zerolog.Logger
}

func NewSentimentClassifier(m SentimentModel, logger zerolog.Logger) *SentimentClassifier {
	return &SentimentClassifier{model: m, logger: logger}
}

// Classify scores text. Empty text is classified like any other input.
func (c *SentimentClassifier) Classify(ctx context.Context, text string) (model.SentimentScore, error) {
	text = TruncateRunes(TruncateTokens(text, MaxSentimentTokens), MaxSentimentRunes)

	start := time.Now()
	dist, err := c.model.Predict(ctx, text)
	metrics.ClassificationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		if apperr.Is(err, apperr.KindClassification) {
			return 0, err
		}
		return 0, apperr.Classification("sentiment model invocation failed", err)
	}

	class, err := argmax(dist)
	if err != nil {
		return 0, apperr.Classification("sentiment model returned a malformed distribution", err)
	}

	score, err := ScoreForClass(class)
	if err != nil {
		return 0, apperr.Classification("sentiment class out of range", err)
	}
	c.logger.Debug().Int("class", class).Int("score", int(score)).Msg("text classified")
	return score, nil
}

// ScoreForClass remaps a model class index onto the reported scale.
func ScoreForClass(class int) (model.SentimentScore, error) {
	if class < 0 || class >= sentimentClasses {
		return 0, fmt.Errorf("class %d outside [0,%d)", class, sentimentClasses)
	}
	return scoreByClass[class], nil
}

// TruncateTokens keeps the first limit whitespace-separated tokens of text.
// Text within budget is returned unchanged.
func TruncateTokens(text string, limit int) string {
	fields := strings.Fields(text)
	if len(fields) <= limit {
		return text
	}
	return strings.Join(fields[:limit], " ")
}

// TruncateRunes keeps at most limit runes of text.
func TruncateRunes(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	n := 0
	for i := range text {
		if n == limit {
			return text[:i]
		}
		n++
	}
	return text
}

func argmax(dist []float64) (int, error) {
	if len(dist) != sentimentClasses {
		return 0, fmt.Errorf("expected %d classes, got %d", sentimentClasses, len(dist))
	}
	best := 0
	for i, v := range dist {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("class %d has non-finite value", i)
		}
		if v > dist[best] {
			best = i
		}
	}
	return best, nil
}
