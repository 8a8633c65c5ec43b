package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/kkdai/youtube/v2"
)

// InnertubeProvider resolves metadata through YouTube's player API using
// kkdai/youtube. Unlike oEmbed it reports the duration.
type InnertubeProvider struct {
	client *youtube.Client
}

// NewInnertubeProvider creates a provider that shares httpClient (and its proxy).
func NewInnertubeProvider(httpClient *http.Client) *InnertubeProvider {
	return &InnertubeProvider{
		client: &youtube.Client{HTTPClient: httpClient},
	}
}

func (p *InnertubeProvider) Name() string {
	return "innertube"
}

func (p *InnertubeProvider) FetchMetadata(ctx context.Context, videoID string) (*VideoMetadata, error) {
	video, err := p.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get video info: %w", err)
	}
	if video.Title == "" {
		return nil, errors.New("player response has no title")
	}

	return &VideoMetadata{
		ID:              videoID,
		Title:           video.Title,
		DurationSeconds: int(video.Duration.Seconds()),
		ThumbnailURL:    largestThumbnail(video.Thumbnails),
		Source:          p.Name(),
	}, nil
}

func largestThumbnail(thumbnails youtube.Thumbnails) string {
	var best youtube.Thumbnail
	for _, t := range thumbnails {
		if t.Width*t.Height >= best.Width*best.Height {
			best = t
		}
	}
	return best.URL
}
