package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// WebhookClient POSTs completed submission records to a configured endpoint.
// A client with no URL is valid and drops every send, so callers never need
// to branch on configuration.
type WebhookClient struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewWebhookClient(url string, timeout time.Duration, logger *slog.Logger) *WebhookClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookClient{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Enabled reports whether a destination is configured.
func (c *WebhookClient) Enabled() bool { return c.url != "" }

// Send delivers one record. Delivery failure is the caller's concern only as
// far as logging; submissions never fail because a webhook did.
func (c *WebhookClient) Send(ctx context.Context, rec Record) error {
	if !c.Enabled() {
		return nil
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook %s: %d %s", c.url, resp.StatusCode, string(body))
	}
	return nil
}

// SendAsync fires Send on its own goroutine and logs the outcome. Used on the
// submission path where the HTTP response must not wait for delivery.
func (c *WebhookClient) SendAsync(rec Record) {
	if !c.Enabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
		defer cancel()
		if err := c.Send(ctx, rec); err != nil {
			c.logger.Warn("webhook delivery failed", "submission_id", rec.ID, "error", err)
			return
		}
		c.logger.Info("webhook delivered", "submission_id", rec.ID)
	}()
}
