package chatapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nyssa-notify/internal/metrics"
)

// Request is the body the hosted chat service accepts.
type Request struct {
	Input    string `json:"input"`
	UserID   string `json:"userId"`
	ThreadID string `json:"threadId"`
	Image    string `json:"image"`
}

// Reply is the chat service answer. Success false means the service handled
// the call but produced no usable response.
type Reply struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	ThreadID string `json:"threadId"`
}

// Client posts prompts to the hosted chat service.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Chat sends req and decodes the reply. Transport failures, non-2xx statuses
// and undecodable bodies are returned as errors.
func (c *Client) Chat(ctx context.Context, req Request) (*Reply, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode chat request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("chat request failed with status code %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var reply Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("decode chat reply: %w", err)
	}
	return &reply, nil
}
