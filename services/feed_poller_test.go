package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"commentary-service/livefeed"
	"commentary-service/models"
)

func TestFeedPollerDeliversDocuments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/commentary/matches":
			w.Write([]byte(`{"matches":[` +
				`{"match_id":"m1","home_team":"Manchester United","away_team":"Chelsea","completed":false},` +
				`{"match_id":"m2","home_team":"Arsenal","away_team":"Liverpool","completed":true}]}`))
		case "/v1/commentary/document":
			if got := r.URL.Query().Get("match_id"); got != "m1" {
				t.Errorf("Completed matches must not be fetched, got match_id %q", got)
			}
			w.Write([]byte(`{"document":{"match_id":"m1","text":"[MIN=1] Kick-off.","updated_at":1700000000}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := livefeed.NewClientWithConfig(livefeed.Config{
		BaseURL:  server.URL,
		APIToken: "test-token",
	})

	broker := NewInMemoryBroker()
	defer broker.Close()

	ch, err := broker.Consume(TopicDocument)
	if err != nil {
		t.Fatalf("Consume failed: %v", err)
	}

	poller := NewFeedPoller(client, broker, 60)
	if err := poller.pollOnce(); err != nil {
		t.Fatalf("pollOnce failed: %v", err)
	}

	select {
	case msg := <-ch:
		var doc models.CommentaryDocument
		if err := json.Unmarshal(msg.Value, &doc); err != nil {
			t.Fatalf("Failed to decode broker message: %v", err)
		}
		if doc.MatchID != "m1" {
			t.Errorf("Expected match m1, got %s", doc.MatchID)
		}
		if doc.Source != "livefeed" {
			t.Errorf("Expected source 'livefeed', got '%s'", doc.Source)
		}
		if doc.Text != "[MIN=1] Kick-off." {
			t.Errorf("Unexpected document text %q", doc.Text)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected a document on the broker, got none")
	}

	// updated_at 没有前进,第二轮不应重复投递
	if err := poller.pollOnce(); err != nil {
		t.Fatalf("Second pollOnce failed: %v", err)
	}
	select {
	case msg := <-ch:
		t.Errorf("Unchanged document must not be redelivered, got key %s", msg.Key)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFeedPollerDoubleStart(t *testing.T) {
	client := livefeed.NewClientWithConfig(livefeed.Config{BaseURL: "http://127.0.0.1:1"})
	broker := NewInMemoryBroker()
	defer broker.Close()

	poller := NewFeedPoller(client, broker, 3600)
	if err := poller.Start(); err != nil {
		t.Fatalf("First Start failed: %v", err)
	}
	defer poller.Stop()

	if err := poller.Start(); err == nil {
		t.Error("Second Start must return an error")
	}
}
