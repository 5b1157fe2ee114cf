// Package inference calls a hosted text-classification model over the
// Hugging Face Inference API.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	classCount   = 5
	maxErrorBody = 4 << 10
)

// Client returns the per-class scores of a 5-class star-rating model.
type Client struct {
	httpClient *http.Client
	url        string
	token      string
}

func NewClient(url, token string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		token:      token,
	}
}

type request struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Options    map[string]any `json:"options,omitempty"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Predict returns one score per class, index 0 being the one-star class.
func (c *Client) Predict(ctx context.Context, text string) ([]float64, error) {
	body, err := json.Marshal(request{
		Inputs:     text,
		Parameters: map[string]any{"top_k": classCount, "truncation": true},
		Options:    map[string]any{"wait_for_model": true},
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call model: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read model response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil && eb.Error != "" {
			return nil, fmt.Errorf("model returned status %d: %s", resp.StatusCode, eb.Error)
		}
		return nil, fmt.Errorf("model returned status %d: %s", resp.StatusCode, truncate(string(raw), maxErrorBody))
	}

	scores, err := decodeScores(raw)
	if err != nil {
		return nil, err
	}
	return distribution(scores)
}

// decodeScores accepts both the batched [[...]] and the flat [...] shapes.
func decodeScores(raw []byte) ([]labelScore, error) {
	var nested [][]labelScore
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) != 1 {
			return nil, fmt.Errorf("expected one result, got %d", len(nested))
		}
		return nested[0], nil
	}

	var flat []labelScore
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("decode model response: %w", err)
	}
	return flat, nil
}

func distribution(scores []labelScore) ([]float64, error) {
	if len(scores) != classCount {
		return nil, fmt.Errorf("expected %d labels, got %d", classCount, len(scores))
	}
	dist := make([]float64, classCount)
	seen := make([]bool, classCount)
	for _, s := range scores {
		idx, err := classIndex(s.Label)
		if err != nil {
			return nil, err
		}
		if seen[idx] {
			return nil, fmt.Errorf("label %q repeated", s.Label)
		}
		seen[idx] = true
		dist[idx] = s.Score
	}
	return dist, nil
}

// classIndex maps "1 star" .. "5 stars" (or LABEL_0 .. LABEL_4) to 0..4.
func classIndex(label string) (int, error) {
	if rest, ok := strings.CutPrefix(label, "LABEL_"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 || n >= classCount {
			return 0, fmt.Errorf("unknown label %q", label)
		}
		return n, nil
	}

	stars, _, ok := strings.Cut(label, " ")
	if !ok {
		return 0, fmt.Errorf("unknown label %q", label)
	}
	n, err := strconv.Atoi(stars)
	if err != nil || n < 1 || n > classCount {
		return 0, fmt.Errorf("unknown label %q", label)
	}
	return n - 1, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
