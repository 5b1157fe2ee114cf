// Package suggest asks a hosted language model for title, description and
// hashtag suggestions for a video.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
	"github.com/rs/zerolog"

	"github.com/sukantabhun/socioyt-go/internal/metrics"
)

const promptTemplate = `You are an expert in YouTube content optimization. Based on the following video information:

- Title: %s
- Description: %s
- Tags: %s

Please provide the following, formatted entirely in markdown:

1. **Predicted Engagement Rate**: Based on the title, description, and tags, predict the engagement rate.
- Estimate the percentage of expected viewer interaction.

2. **Better, More Engaging Title**: Suggest a more engaging and optimized title for better user interaction.

3. **Improved Description**: Improve and optimize the current description.
- Include details about the movie, song, and relevant social media call-to-action. Add placeholders for any links, with the format [Add your own link here].

4. **Hashtags**: Suggest at least 3 relevant hashtags to increase the engagement.

Return only these four points, formatted entirely in markdown. Ensure there are no extra backticks or markdown inside the text and replace all URLs with [Add your own link here].`

const temperature = 0.7

// Generator produces suggestions. The zero value reports that suggestions
// are not configured.
type Generator struct {
	complete func(ctx context.Context, prompt string) (string, error)
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewGenerator builds a Generator on an OpenAI-compatible chat endpoint.
// Each completion is bounded by timeout. An empty apiKey yields a Generator
// that always reports an error payload.
func NewGenerator(apiBase, apiKey, model string, timeout time.Duration, logger zerolog.Logger) *Generator {
	if apiKey == "" {
		return &Generator{logger: logger}
	}
	client := llm.NewClient(apiBase, apiKey, model,
		llm.WithTemperature(temperature),
		llm.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	return &Generator{
		complete: func(ctx context.Context, prompt string) (string, error) {
			return client.Complete(ctx, "", prompt, llm.WithChatTemperature(temperature))
		},
		timeout: timeout,
		logger:  logger,
	}
}

// Suggest returns the model's suggestions. A JSON object answer is decoded,
// any other answer is passed through as text, and a failure becomes
// {"error": "<message>"}.
func (g *Generator) Suggest(ctx context.Context, title, description string, tags []string) any {
	if g.complete == nil {
		return errorPayload("suggestions are not configured")
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	raw, err := g.complete(ctx, BuildPrompt(title, description, tags))
	if err != nil {
		metrics.SuggestionFailures.Inc()
		g.logger.Warn().Err(err).Msg("suggestion generation failed")
		return errorPayload(err.Error())
	}
	return Parse(raw)
}

// BuildPrompt fills the suggestion prompt for one video.
func BuildPrompt(title, description string, tags []string) string {
	return fmt.Sprintf(promptTemplate, title, description, strings.Join(tags, ", "))
}

// Parse decodes a JSON object answer, otherwise returns the trimmed text.
func Parse(raw string) any {
	text := strings.TrimSpace(raw)
	var obj map[string]any
	if err := json.Unmarshal([]byte(stripFences(text)), &obj); err == nil {
		return obj
	}
	return text
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func errorPayload(msg string) map[string]string {
	return map[string]string{"error": msg}
}
