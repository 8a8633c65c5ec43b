package youtube

import (
	"context"
	"fmt"
)

// MetadataProvider is one source of video metadata. The fetcher walks
// providers in order until one answers.
type MetadataProvider interface {
	// Name identifies the provider in logs and errors.
	Name() string

	// FetchMetadata looks up a single video by its 11-character ID.
	FetchMetadata(ctx context.Context, videoID string) (*VideoMetadata, error)
}

// MediaDownloader fetches and transcodes a video into a local directory.
type MediaDownloader interface {
	// Download writes the media for videoID into opts.OutputDir.
	Download(ctx context.Context, videoID string, opts DownloadOptions) error
}

// VideoMetadata describes a video as returned to clients.
type VideoMetadata struct {
	ID              string
	Title           string
	DurationSeconds int // 0 when the source does not report it
	ThumbnailURL    string
	Available       bool
	IsShort         bool
	Source          string
}

// MediaFormat is the kind of file a client asked for.
type MediaFormat string

const (
	FormatAudio MediaFormat = "audio"
	FormatVideo MediaFormat = "video"
)

// ParseMediaFormat maps request input to a MediaFormat; empty means video.
func ParseMediaFormat(s string) (MediaFormat, error) {
	switch MediaFormat(s) {
	case "", FormatVideo:
		return FormatVideo, nil
	case FormatAudio:
		return FormatAudio, nil
	default:
		return "", fmt.Errorf("unsupported format %q", s)
	}
}

// Extension returns the file extension without the dot.
func (f MediaFormat) Extension() string {
	if f == FormatAudio {
		return "mp3"
	}
	return "mp4"
}

func (f MediaFormat) ContentType() string {
	if f == FormatAudio {
		return "audio/mpeg"
	}
	return "video/mp4"
}

// DownloadOptions drives a single yt-dlp download.
type DownloadOptions struct {
	OutputDir      string
	FormatSelector string
	Format         MediaFormat
	AudioCodec     string
	AudioBitrate   string
}

// WatchURL is the canonical watch page for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// DefaultThumbnailURL is used when a provider does not report a thumbnail.
func DefaultThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID)
}
