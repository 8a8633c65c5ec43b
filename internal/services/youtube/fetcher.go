package youtube

import (
	"context"
	"errors"
	"fmt"

	"github.com/denisAlshanov/ytfetch/internal/retry"
	"github.com/denisAlshanov/ytfetch/internal/utils"
)

// MetadataFetcher resolves a URL and asks each provider in turn for
// metadata, repeating the whole chain up to MaxRetries more times.
type MetadataFetcher struct {
	providers []MetadataProvider
	retry     retry.Config
}

func NewMetadataFetcher(providers []MetadataProvider, cfg retry.Config) *MetadataFetcher {
	return &MetadataFetcher{
		providers: providers,
		retry:     cfg,
	}
}

// FetchMetadata uses the configured retry bound.
func (f *MetadataFetcher) FetchMetadata(ctx context.Context, rawURL string) (*VideoMetadata, error) {
	return f.FetchMetadataWithRetries(ctx, rawURL, f.retry.MaxRetries)
}

// FetchMetadataWithRetries makes at most maxRetries+1 attempts. URL
// resolution failures are returned immediately; exhaustion returns a
// *MetadataError.
func (f *MetadataFetcher) FetchMetadataWithRetries(ctx context.Context, rawURL string, maxRetries int) (*VideoMetadata, error) {
	videoID, err := ResolveVideoID(rawURL)
	if err != nil {
		return nil, err
	}

	if maxRetries < 0 {
		maxRetries = 0
	}
	cfg := f.retry
	cfg.MaxRetries = maxRetries

	retryable := func(err error) bool {
		return !errors.Is(err, ErrInvalidURL) && ctx.Err() == nil
	}

	var meta *VideoMetadata
	err = retry.Do(ctx, cfg, retryable, func(ctx context.Context, attempt int) error {
		m, err := f.fetchOnce(ctx, videoID)
		if err != nil {
			utils.LogWarn(ctx, "Metadata attempt failed", utils.Fields{
				"video_id":     videoID,
				"attempt":      attempt,
				"attempts_max": maxRetries + 1,
				"error":        err.Error(),
			})
			return err
		}
		meta = m
		return nil
	})
	if err != nil {
		var exhausted *retry.ExhaustedError
		if errors.As(err, &exhausted) {
			return nil, &MetadataError{VideoID: videoID, Attempts: exhausted.Attempts, Err: exhausted.Err}
		}
		return nil, err
	}

	meta.ID = videoID
	meta.Available = true
	meta.IsShort = IsShortURL(rawURL)
	if meta.ThumbnailURL == "" {
		meta.ThumbnailURL = DefaultThumbnailURL(videoID)
	}
	return meta, nil
}

// fetchOnce walks the provider chain once.
func (f *MetadataFetcher) fetchOnce(ctx context.Context, videoID string) (*VideoMetadata, error) {
	if len(f.providers) == 0 {
		return nil, errors.New("no metadata providers configured")
	}

	var errs []error
	for i, p := range f.providers {
		meta, err := p.FetchMetadata(ctx, videoID)
		if err == nil {
			return meta, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		errs = append(errs, &ProviderError{Provider: p.Name(), Err: err})
		if i+1 < len(f.providers) {
			utils.LogWarn(ctx, "Metadata provider failed, trying fallback", utils.Fields{
				"video_id": videoID,
				"provider": p.Name(),
				"fallback": f.providers[i+1].Name(),
				"error":    err.Error(),
			})
		}
	}
	return nil, fmt.Errorf("all metadata providers failed: %w", errors.Join(errs...))
}
