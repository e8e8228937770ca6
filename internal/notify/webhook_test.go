package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mascotd/internal/keeper"
)

func TestWebhookDelivers(t *testing.T) {
	var got keeper.Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL)
	wh.Notify(keeper.Event{GuildID: 42, Kind: "died", PetName: "Pixel", LastWords: "farewell"})

	if got.GuildID != 42 || got.Kind != "died" || got.PetName != "Pixel" {
		t.Errorf("event = %+v", got)
	}
}

func TestWebhookDisabledWhenUnset(t *testing.T) {
	wh := NewWebhook("")
	// Must not panic or block.
	wh.Notify(keeper.Event{GuildID: 1, Kind: "hatched"})
}

func TestWebhookSwallowsServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL)
	// Failure is logged, not returned.
	wh.Notify(keeper.Event{GuildID: 1, Kind: "died"})
}
