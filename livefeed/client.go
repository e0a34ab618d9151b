package livefeed

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the default commentary provider API base URL
	DefaultBaseURL = "https://api.livefeed.example.com"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second
)

// Client represents a commentary provider API client
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// Config holds the configuration for the API client
type Config struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

// NewClient creates a new commentary provider client
func NewClient(apiToken string) *Client {
	return NewClientWithConfig(Config{
		BaseURL:  DefaultBaseURL,
		APIToken: apiToken,
		Timeout:  DefaultTimeout,
	})
}

// NewClientWithConfig creates a new client with custom configuration
func NewClientWithConfig(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		baseURL:  config.BaseURL,
		apiToken: config.APIToken,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// APIError represents an error returned by the provider API
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Code, e.Message)
}

// doRequest performs an HTTP request
func (c *Client) doRequest(method, endpoint string, params url.Values) ([]byte, error) {
	u, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	if params != nil {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequest(method, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr APIError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
			return nil, &apiErr
		}
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// get performs a GET request and decodes the JSON response into out
func (c *Client) get(endpoint string, params url.Values, out interface{}) error {
	body, err := c.doRequest(http.MethodGet, endpoint, params)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// ListMatches returns the matches that currently have commentary available
func (c *Client) ListMatches() ([]FeedMatch, error) {
	var resp matchListResponse
	if err := c.get("/v1/commentary/matches", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

// GetDocument fetches the full commentary document for a match
func (c *Client) GetDocument(matchID string) (*FeedDocument, error) {
	params := url.Values{}
	params.Set("match_id", matchID)

	var resp documentResponse
	if err := c.get("/v1/commentary/document", params, &resp); err != nil {
		return nil, err
	}
	if resp.Document == nil {
		return nil, fmt.Errorf("no commentary document for match %s", matchID)
	}
	return resp.Document, nil
}
