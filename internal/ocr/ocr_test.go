// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/outline-engine/pkg/types"
)

func testGateway(t *testing.T, handler http.HandlerFunc, counter *RequestCounter) *Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := types.OCRConfig{
		Endpoint: srv.URL,
		APIKey:   "test-key",
	}
	cfg.Timeout = 5 * time.Second
	return NewGateway(cfg, counter)
}

func visionOK(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"responses": []map[string]any{
				{"fullTextAnnotation": map[string]any{"text": text}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}
}

func TestExtractSuccess(t *testing.T) {
	var gotKey string
	g := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Goog-Api-Key")
		var req visionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Requests, 1)
		require.NotEmpty(t, req.Requests[0].Image.Content)
		visionOK("The quick brown fox")(w, r)
	}, nil)

	text, err := g.Extract(context.Background(), []byte("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, "The quick brown fox", text)
	assert.Equal(t, "test-key", gotKey)
}

func TestExtractEmptyAnnotationIsNoText(t *testing.T) {
	g := testGateway(t, visionOK(""), nil)

	_, err := g.Extract(context.Background(), []byte("img"))
	assert.ErrorIs(t, err, ErrNoText)
}

func TestExtractRemoteError(t *testing.T) {
	g := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"responses": []map[string]any{
				{"error": map[string]any{"code": 7, "message": "permission denied"}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}, nil)

	_, err := g.Extract(context.Background(), []byte("img"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestExtractHTTPFailure(t *testing.T) {
	g := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}, nil)

	_, err := g.Extract(context.Background(), []byte("img"))
	require.Error(t, err)
}

func TestExtractSingleFlight(t *testing.T) {
	g := testGateway(t, visionOK("text"), nil)

	// Simulate an in-flight request: the busy flag is held.
	require.True(t, g.busy.CompareAndSwap(false, true))
	_, err := g.Extract(context.Background(), []byte("img"))
	assert.ErrorIs(t, err, ErrBusy)
	g.busy.Store(false)

	// Once released, extraction proceeds.
	text, err := g.Extract(context.Background(), []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "text", text)
}

func TestExtractLimitBehavesLikeFailure(t *testing.T) {
	clock := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	counter := NewRequestCounter(1, 0, func() time.Time { return clock })
	g := testGateway(t, visionOK("text"), counter)

	_, err := g.Extract(context.Background(), []byte("img"))
	require.NoError(t, err)

	_, err = g.Extract(context.Background(), []byte("img"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLimitExceeded)
}

func TestRequestCounterWindows(t *testing.T) {
	now := time.Date(2026, 4, 30, 23, 0, 0, 0, time.UTC)
	counter := NewRequestCounter(2, 3, func() time.Time { return now })

	assert.True(t, counter.Allow())
	assert.True(t, counter.Allow())
	assert.False(t, counter.Allow(), "daily cap of 2 reached")

	// The day rolls over; the month does not.
	now = now.Add(2 * time.Hour) // 2026-05-01, also a new month here
	assert.True(t, counter.Allow())

	// Within the same day, the daily cap applies again.
	assert.True(t, counter.Allow())
	assert.False(t, counter.Allow())
}

func TestRequestCounterMonthlyCap(t *testing.T) {
	now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	counter := NewRequestCounter(0, 2, func() time.Time { return now })

	assert.True(t, counter.Allow())
	now = now.AddDate(0, 0, 1)
	assert.True(t, counter.Allow())
	now = now.AddDate(0, 0, 1)
	assert.False(t, counter.Allow(), "monthly cap of 2 reached")

	now = now.AddDate(0, 1, 0)
	assert.True(t, counter.Allow(), "new month resets the counter")
}

func TestRequestCounterResetsWithProcess(t *testing.T) {
	// Counters are in-memory only: a fresh counter starts from zero.
	now := func() time.Time { return time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC) }
	first := NewRequestCounter(1, 0, now)
	require.True(t, first.Allow())
	require.False(t, first.Allow())

	second := NewRequestCounter(1, 0, now)
	assert.True(t, second.Allow())
}

func TestRemaining(t *testing.T) {
	now := func() time.Time { return time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC) }
	counter := NewRequestCounter(2, 0, now)
	counter.Allow()

	daily, monthly := counter.Remaining()
	assert.Equal(t, 1, daily)
	assert.Equal(t, -1, monthly)
}
