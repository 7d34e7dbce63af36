package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foxseedlab/jimaku/internal/webhook"
)

func TestSendRunResult_EmptyWebhookURL(t *testing.T) {
	sender := NewHTTPSender("")
	if err := sender.SendRunResult(context.Background(), webhook.RunWebhookPayload{RunID: "run-1"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestSendRunResult_Success(t *testing.T) {
	var got webhook.RunWebhookPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type: %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	sender := NewHTTPSender(server.URL)
	payload := webhook.RunWebhookPayload{
		SchemaVersion: webhook.RunWebhookSchemaVersion,
		RunID:         "run-1",
		Status:        "completed",
		CueCount:      2,
		Subtitles:     "1\n00:00:00,000 --> 00:00:01,200\nhi\n",
	}
	if err := sender.SendRunResult(context.Background(), payload); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got != payload {
		t.Fatalf("unexpected payload received: %+v", got)
	}
}

func TestSendRunResult_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	sender := NewHTTPSender(server.URL)
	if err := sender.SendRunResult(context.Background(), webhook.RunWebhookPayload{RunID: "run-1"}); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
