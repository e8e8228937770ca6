// Package notify delivers lifecycle events to an external webhook.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"mascotd/internal/keeper"
)

const httpTimeout = 5 * time.Second

// Webhook posts lifecycle events as JSON to a configured URL. A zero
// URL disables delivery entirely.
type Webhook struct {
	http *http.Client
	url  string
}

// NewWebhook creates a webhook notifier. An empty url yields a no-op
// notifier, so callers never need to branch.
func NewWebhook(url string) *Webhook {
	return &Webhook{
		http: &http.Client{Timeout: httpTimeout},
		url:  url,
	}
}

// Notify delivers one event. Delivery failures are logged, never
// surfaced; the engine must not stall on a flaky endpoint.
func (w *Webhook) Notify(e keeper.Event) {
	if w.url == "" {
		return
	}
	if err := w.post(e); err != nil {
		log.Printf("webhook %s for guild %d: %v", e.Kind, e.GuildID, err)
	}
}

func (w *Webhook) post(e keeper.Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	resp, err := w.http.Post(w.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("POST: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}
