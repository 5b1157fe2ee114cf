package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, status int, body string, check func(*http.Request)) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "hf_test", 2*time.Second)
}

func TestPredict_NestedResponse(t *testing.T) {
	body := `[[{"label":"5 stars","score":0.6},{"label":"4 stars","score":0.2},{"label":"3 stars","score":0.1},{"label":"1 star","score":0.06},{"label":"2 stars","score":0.04}]]`
	c := newServer(t, http.StatusOK, body, func(r *http.Request) {
		assert.Equal(t, "Bearer hf_test", r.Header.Get("Authorization"))
		var req request
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "some text", req.Inputs)
		assert.Equal(t, true, req.Parameters["truncation"])
		assert.Equal(t, float64(classCount), req.Parameters["top_k"])
	})

	dist, err := c.Predict(context.Background(), "some text")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.06, 0.04, 0.1, 0.2, 0.6}, dist)
}

func TestPredict_FlatResponse(t *testing.T) {
	body := `[{"label":"LABEL_0","score":0.7},{"label":"LABEL_1","score":0.1},{"label":"LABEL_2","score":0.1},{"label":"LABEL_3","score":0.05},{"label":"LABEL_4","score":0.05}]`
	c := newServer(t, http.StatusOK, body, nil)

	dist, err := c.Predict(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 0.7, dist[0])
}

func TestPredict_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"model loading", http.StatusServiceUnavailable, `{"error":"Model is currently loading","estimated_time":20}`, "currently loading"},
		{"plain error", http.StatusInternalServerError, `oops`, "status 500"},
		{"not json", http.StatusOK, `<html>`, "decode"},
		{"too few labels", http.StatusOK, `[[{"label":"1 star","score":1}]]`, "expected 5 labels"},
		{"unknown label", http.StatusOK, `[{"label":"POSITIVE","score":0.2},{"label":"2 stars","score":0.2},{"label":"3 stars","score":0.2},{"label":"4 stars","score":0.2},{"label":"5 stars","score":0.2}]`, "unknown label"},
		{"repeated label", http.StatusOK, `[{"label":"1 star","score":0.2},{"label":"1 star","score":0.2},{"label":"3 stars","score":0.2},{"label":"4 stars","score":0.2},{"label":"5 stars","score":0.2}]`, "repeated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newServer(t, tt.status, tt.body, nil)
			_, err := c.Predict(context.Background(), "x")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestClassIndex(t *testing.T) {
	tests := []struct {
		label string
		want  int
		ok    bool
	}{
		{"1 star", 0, true},
		{"5 stars", 4, true},
		{"LABEL_3", 3, true},
		{"6 stars", 0, false},
		{"LABEL_9", 0, false},
		{"stars", 0, false},
	}
	for _, tt := range tests {
		got, err := classIndex(tt.label)
		if tt.ok {
			assert.NoError(t, err, tt.label)
			assert.Equal(t, tt.want, got, tt.label)
		} else {
			assert.Error(t, err, tt.label)
		}
	}
}
