// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package ranking

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/collegedeck/collegedeck/internal/config"
)

// maxErrorBodySize limits the response body read for error reporting.
// Prevents unbounded memory allocation on large error responses.
const maxErrorBodySize = 64 * 1024 // 64KB

// rankRequest is the provider request body.
type rankRequest struct {
	UserID string `json:"user_id"`
	Limit  int    `json:"limit"`
}

// rankResponse is the provider response envelope. Entries that fail to
// decode or fall outside valid ranges are dropped during normalization.
type rankResponse struct {
	Results []scoredEntry `json:"results"`
}

// scoredEntry is one provider result. Pointers let normalization tell a
// missing field apart from a zero value.
type scoredEntry struct {
	UnitID *int64   `json:"unitid"`
	Score  *float64 `json:"score"`
}

// Client is the HTTP client for the ranking provider. It applies a per-call
// timeout and an optional outbound rate limit; it never retries.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	topK    int
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a ranking provider client from config.
func NewClient(cfg *config.RankingConfig) *Client {
	var limiter *rate.Limiter
	if cfg.MaxRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.MaxRPS), 1)
	}

	return &Client{
		baseURL: cfg.URL,
		apiKey:  cfg.APIKey,
		timeout: cfg.Timeout,
		topK:    cfg.TopK,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: limiter,
	}
}

// TopK asks the provider for the user's best candidates and returns
// normalized ids, best first. Transport failures, non-200 responses, and
// undecodable bodies return an error; per-entry problems only shrink the
// result.
func (c *Client) TopK(ctx context.Context, userID string) ([]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait aborted: %w", err)
		}
	}

	body, err := json.Marshal(rankRequest{UserID: userID, Limit: c.topK})
	if err != nil {
		return nil, fmt.Errorf("failed to encode rank request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create rank request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rank request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Explicitly ignore error - response already consumed
	}()

	if resp.StatusCode != http.StatusOK {
		errBody := readBodyForError(resp.Body)
		return nil, fmt.Errorf("rank request returned HTTP %d: %s", resp.StatusCode, errBody)
	}

	var decoded rankResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode rank response: %w", err)
	}

	ids := normalize(decoded.Results)
	if len(ids) == 0 && len(decoded.Results) > 0 {
		// The provider answered, but nothing survived normalization. That is
		// a misbehaving provider, not an empty ranking.
		return nil, fmt.Errorf("all %d rank entries dropped during normalization", len(decoded.Results))
	}

	return ids, nil
}

// readBodyForError reads the response body for error reporting (max 64KB).
func readBodyForError(r io.Reader) []byte {
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("... (truncated)")...)
	}
	return body
}
