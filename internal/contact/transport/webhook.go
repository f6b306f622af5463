package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"folio/internal/contact"
)

// Webhook posts each submission as JSON to a URL.
type Webhook struct {
	URL    string
	Client *http.Client
}

// NewWebhook validates rawURL and returns a Webhook with the given timeout.
func NewWebhook(rawURL string, timeout time.Duration) (*Webhook, error) {
	if rawURL == "" {
		return nil, errors.New("transport: webhook url is required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("transport: invalid webhook url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("transport: webhook url must be http or https, got %q", u.Scheme)
	}
	return &Webhook{
		URL:    rawURL,
		Client: &http.Client{Timeout: timeout},
	}, nil
}

type webhookPayload struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Send posts the submission. Any non-2xx response is a failure.
func (w *Webhook) Send(ctx context.Context, sub contact.Submission) error {
	body, err := json.Marshal(webhookPayload{
		ID:          sub.ID,
		Name:        sub.Fields.Name,
		Email:       sub.Fields.Email,
		Message:     sub.Fields.Message,
		SubmittedAt: sub.SubmittedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", sub.ID)

	client := w.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}
	return nil
}
