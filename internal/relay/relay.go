// Package relay delivers bot messages to the community chat channel.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Relay sends a text message to a channel
type Relay interface {
	Send(ctx context.Context, text string) error
}

// WebhookRelay posts messages to a chat webhook (Discord-compatible payload)
type WebhookRelay struct {
	url        string
	httpClient *http.Client
}

// NewWebhookRelay creates a relay that posts to url
func NewWebhookRelay(url string) *WebhookRelay {
	return &WebhookRelay{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type webhookPayload struct {
	Content string `json:"content"`
}

// Send posts {"content": text}. Any non-2xx response is an error.
func (r *WebhookRelay) Send(ctx context.Context, text string) error {
	body, err := json.Marshal(webhookPayload{Content: text})
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting to webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(msg))
	}
	return nil
}

// WriterRelay writes each message to w followed by a blank line
type WriterRelay struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterRelay creates a relay that writes to w
func NewWriterRelay(w io.Writer) *WriterRelay {
	return &WriterRelay{w: w}
}

// Send writes text to the underlying writer
func (r *WriterRelay) Send(_ context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := fmt.Fprintf(r.w, "%s\n\n", text)
	return err
}

// New returns a WebhookRelay when webhookURL is set, otherwise a WriterRelay on w
func New(webhookURL string, w io.Writer) Relay {
	if webhookURL != "" {
		return NewWebhookRelay(webhookURL)
	}
	return NewWriterRelay(w)
}
