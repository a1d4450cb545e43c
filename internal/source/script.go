package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ScriptClient reads reservations from a spreadsheet web app that answers
// GET with a JSON array of records.
type ScriptClient struct {
	url        string
	userAgent  string
	httpClient *http.Client
}

// NewScriptClient constructs a client for url. A zero timeout means none.
func NewScriptClient(url string, timeout time.Duration, userAgent string) *ScriptClient {
	return &ScriptClient{
		url:        url,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *ScriptClient) Name() string { return "script" }

// Fetch issues a single GET and returns the raw items of the response array.
func (c *ScriptClient) Fetch(ctx context.Context) ([]json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	c.addHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: http %d", ErrSourceUnavailable, resp.StatusCode)
	}

	var items []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSource, err)
	}
	if items == nil {
		return nil, fmt.Errorf("%w: expected an array, got null", ErrMalformedSource)
	}
	return items, nil
}

func (c *ScriptClient) addHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}
