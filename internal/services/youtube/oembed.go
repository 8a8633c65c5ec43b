package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/artyom/oembed"
)

const DefaultOEmbedEndpoint = "https://www.youtube.com/oembed"

// OEmbedProvider reads title and thumbnail from YouTube's public oEmbed
// endpoint. The endpoint has no duration, so DurationSeconds is always 0.
type OEmbedProvider struct {
	endpoint   string
	httpClient *http.Client
	userAgent  string
}

// NewOEmbedProvider creates a provider; an empty endpoint uses YouTube's.
func NewOEmbedProvider(httpClient *http.Client, endpoint, userAgent string) *OEmbedProvider {
	if endpoint == "" {
		endpoint = DefaultOEmbedEndpoint
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OEmbedProvider{
		endpoint:   endpoint,
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

func (p *OEmbedProvider) Name() string {
	return "oembed"
}

func (p *OEmbedProvider) FetchMetadata(ctx context.Context, videoID string) (*VideoMetadata, error) {
	query := url.Values{}
	query.Set("url", WatchURL(videoID))
	query.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build oembed request: %w", err)
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oembed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oembed returned status %d", resp.StatusCode)
	}

	meta, err := oembed.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse oembed response: %w", err)
	}
	if meta.Title == "" {
		return nil, errors.New("oembed response has no title")
	}

	return &VideoMetadata{
		ID:           videoID,
		Title:        meta.Title,
		ThumbnailURL: meta.Thumbnail,
		Source:       p.Name(),
	}, nil
}
