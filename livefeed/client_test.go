package livefeed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test_token")

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.apiToken != "test_token" {
		t.Errorf("Expected token to be 'test_token', got '%s'", client.apiToken)
	}

	if client.baseURL != DefaultBaseURL {
		t.Errorf("Expected baseURL to be '%s', got '%s'", DefaultBaseURL, client.baseURL)
	}
}

func TestNewClientWithConfig(t *testing.T) {
	config := Config{
		BaseURL:  "https://custom.api.com",
		APIToken: "custom_token",
		Timeout:  60 * time.Second,
	}

	client := NewClientWithConfig(config)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.apiToken != "custom_token" {
		t.Errorf("Expected token to be 'custom_token', got '%s'", client.apiToken)
	}

	if client.baseURL != "https://custom.api.com" {
		t.Errorf("Expected baseURL to be 'https://custom.api.com', got '%s'", client.baseURL)
	}

	if client.httpClient.Timeout != 60*time.Second {
		t.Errorf("Expected timeout to be 60s, got %v", client.httpClient.Timeout)
	}
}

func TestAPIError(t *testing.T) {
	err := &APIError{
		Code:    404,
		Message: "Not found",
		Status:  "error",
	}

	expected := "API error 404: Not found"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}
}

func TestGetDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test_token" {
			t.Errorf("Expected bearer auth header, got '%s'", got)
		}
		if r.URL.Path != "/v1/commentary/document" {
			t.Errorf("Unexpected path '%s'", r.URL.Path)
		}
		if got := r.URL.Query().Get("match_id"); got != "m1" {
			t.Errorf("Expected match_id 'm1', got '%s'", got)
		}
		json.NewEncoder(w).Encode(documentResponse{
			Document: &FeedDocument{MatchID: "m1", Text: "45' Goal!", UpdatedAt: 1700000000},
		})
	}))
	defer server.Close()

	client := NewClientWithConfig(Config{BaseURL: server.URL, APIToken: "test_token"})

	doc, err := client.GetDocument("m1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if doc.MatchID != "m1" {
		t.Errorf("Expected match_id 'm1', got '%s'", doc.MatchID)
	}
	if doc.Text != "45' Goal!" {
		t.Errorf("Unexpected document text '%s'", doc.Text)
	}
}

func TestGetDocumentAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(APIError{Code: 404, Message: "match not found", Status: "error"})
	}))
	defer server.Close()

	client := NewClientWithConfig(Config{BaseURL: server.URL, APIToken: "test_token"})

	_, err := client.GetDocument("missing")
	if err == nil {
		t.Fatal("Expected error for missing match")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("Expected *APIError, got %T", err)
	}
	if apiErr.Code != 404 {
		t.Errorf("Expected code 404, got %d", apiErr.Code)
	}
}

func TestListMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/commentary/matches" {
			t.Errorf("Unexpected path '%s'", r.URL.Path)
		}
		json.NewEncoder(w).Encode(matchListResponse{
			Matches: []FeedMatch{
				{MatchID: "m1", HomeTeam: "Arsenal", AwayTeam: "Chelsea"},
				{MatchID: "m2", HomeTeam: "Liverpool", AwayTeam: "Everton", Completed: true},
			},
		})
	}))
	defer server.Close()

	client := NewClientWithConfig(Config{BaseURL: server.URL, APIToken: "test_token"})

	matches, err := client.ListMatches()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].HomeTeam != "Arsenal" {
		t.Errorf("Expected home team 'Arsenal', got '%s'", matches[0].HomeTeam)
	}
}
