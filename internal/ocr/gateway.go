// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocr delegates image-to-text extraction to a cloud vision API.
// The gateway is an opaque extract(imageBytes) -> text function to the rest
// of the system: any failure (network, remote error, or the request
// accounting cap) surfaces as "no text extracted" and never touches store
// state. At most one extraction request is in flight per session.
package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/pdiddy/outline-engine/internal/httputil"
	"github.com/pdiddy/outline-engine/pkg/types"
)

// ErrBusy reports that an extraction request is already in flight. The
// single-flight rule is cooperative: callers disable the triggering action
// while busy instead of queueing.
var ErrBusy = errors.New("an extraction request is already in flight")

// ErrNoText reports that extraction produced no text. Callers treat this
// the same as any other failure: discard the captured image and notify the
// user.
var ErrNoText = errors.New("no text extracted")

const defaultTimeout = 60 * time.Second

// Gateway is the cloud vision API client.
type Gateway struct {
	endpoint   string
	apiKey     string
	userAgent  string
	maxRetries int
	client     *http.Client
	counter    *RequestCounter
	busy       atomic.Bool
}

// NewGateway builds a gateway from cfg. The counter may be nil to disable
// request accounting.
func NewGateway(cfg types.OCRConfig, counter *RequestCounter) *Gateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Gateway{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
		client:     &http.Client{Timeout: timeout},
		counter:    counter,
	}
}

// visionRequest is the wire format of the vision API's annotate call.
type visionRequest struct {
	Requests []visionAnnotate `json:"requests"`
}

type visionAnnotate struct {
	Image    visionImage     `json:"image"`
	Features []visionFeature `json:"features"`
}

type visionImage struct {
	Content string `json:"content"`
}

type visionFeature struct {
	Type string `json:"type"`
}

type visionResponse struct {
	Responses []struct {
		FullTextAnnotation *struct {
			Text string `json:"text"`
		} `json:"fullTextAnnotation"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

// Extract sends image to the vision API and returns the recognized text.
// A second call while one is pending fails with ErrBusy. Exceeding the
// request accounting caps fails like any other extraction failure. There
// is no cancellation beyond ctx and no retry of the action itself.
func (g *Gateway) Extract(ctx context.Context, image []byte) (string, error) {
	if !g.busy.CompareAndSwap(false, true) {
		return "", ErrBusy
	}
	defer g.busy.Store(false)

	if g.counter != nil && !g.counter.Allow() {
		// The rate-limit signal is indistinguishable from a generic
		// extraction failure by contract.
		return "", fmt.Errorf("extraction failed: %w", ErrLimitExceeded)
	}

	req := visionRequest{Requests: []visionAnnotate{{
		Image:    visionImage{Content: base64.StdEncoding.EncodeToString(image)},
		Features: []visionFeature{{Type: "TEXT_DETECTION"}},
	}}}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshaling vision request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating vision request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		httpReq.Header.Set("X-Goog-Api-Key", g.apiKey)
	}
	if g.userAgent != "" {
		httpReq.Header.Set("User-Agent", g.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, g.client, httpReq, g.maxRetries)
	if err != nil {
		return "", fmt.Errorf("vision api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("reading vision response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vision api status %d", resp.StatusCode)
	}

	var apiResp visionResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("decoding vision response: %w", err)
	}
	if len(apiResp.Responses) == 0 {
		return "", ErrNoText
	}
	r := apiResp.Responses[0]
	if r.Error != nil {
		return "", fmt.Errorf("vision api error %d: %s", r.Error.Code, r.Error.Message)
	}
	if r.FullTextAnnotation == nil || r.FullTextAnnotation.Text == "" {
		return "", ErrNoText
	}
	return r.FullTextAnnotation.Text, nil
}
