package videos

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultYouTubeEndpoint = "https://www.googleapis.com/youtube/v3/videos"

// HTTPDoer is the subset of *http.Client used by the YouTube provider.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// YouTubeProvider fetches video metadata from the YouTube Data API v3.
// Each lookup is a single best-effort attempt bounded by Timeout; the
// provider never retries.
type YouTubeProvider struct {
	APIKey   string
	Endpoint string
	Client   HTTPDoer
	Timeout  time.Duration
}

// NewYouTubeProvider constructs a Provider backed by the public Data API.
func NewYouTubeProvider(apiKey string, timeout time.Duration) *YouTubeProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &YouTubeProvider{
		APIKey:   apiKey,
		Endpoint: defaultYouTubeEndpoint,
		Client:   &http.Client{},
		Timeout:  timeout,
	}
}

// Lookup requests snippet and content details for a single video id and
// parses the ISO-8601 duration into whole seconds.
func (p *YouTubeProvider) Lookup(ctx context.Context, videoID string) (Details, error) {
	if p == nil || strings.TrimSpace(p.APIKey) == "" {
		return Details{}, ErrProviderUnavailable
	}

	client := p.Client
	if client == nil {
		client = &http.Client{}
	}

	reqCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	query := url.Values{}
	query.Set("part", "snippet,contentDetails")
	query.Set("id", videoID)
	query.Set("key", p.APIKey)

	endpoint := p.Endpoint
	if endpoint == "" {
		endpoint = defaultYouTubeEndpoint
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return Details{}, fmt.Errorf("build youtube request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return Details{}, fmt.Errorf("youtube fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Details{}, fmt.Errorf("youtube fetch: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Items []struct {
			Snippet struct {
				Title       string `json:"title"`
				Description string `json:"description"`
			} `json:"snippet"`
			ContentDetails struct {
				Duration string `json:"duration"`
			} `json:"contentDetails"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Details{}, fmt.Errorf("parse youtube response: %w", err)
	}

	if len(payload.Items) == 0 {
		return Details{}, ErrNoResult
	}

	item := payload.Items[0]
	seconds, err := ParseISODuration(item.ContentDetails.Duration)
	if err != nil {
		return Details{}, fmt.Errorf("parse youtube duration: %w", err)
	}

	return Details{
		Title:           item.Snippet.Title,
		Description:     item.Snippet.Description,
		DurationSeconds: seconds,
	}, nil
}
