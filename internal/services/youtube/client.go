package youtube

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// ClientConfig configures the yt-dlp backed client.
type ClientConfig struct {
	// ExecutablePath overrides go-ytdlp's own lookup of the yt-dlp binary.
	ExecutablePath string
	ProxyURL       string
	UserAgent      string
	// MetadataTimeout and DownloadTimeout are passed as --socket-timeout.
	MetadataTimeout time.Duration
	DownloadTimeout time.Duration
}

// Client drives yt-dlp through go-ytdlp. It is both the primary metadata
// provider and the media downloader.
type Client struct {
	cfg ClientConfig
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.MetadataTimeout <= 0 {
		cfg.MetadataTimeout = 10 * time.Second
	}
	if cfg.DownloadTimeout <= 0 {
		cfg.DownloadTimeout = 30 * time.Second
	}
	return &Client{cfg: cfg}
}

// InstallYtdlp makes sure a yt-dlp binary is available, downloading it into
// go-ytdlp's cache if needed, and returns its path.
func InstallYtdlp(ctx context.Context) (string, error) {
	resolved, err := ytdlp.Install(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to install yt-dlp: %w", err)
	}
	return resolved.Executable, nil
}

func (c *Client) Name() string {
	return "ytdlp"
}

// FetchMetadata runs yt-dlp without downloading and reads its JSON output.
func (c *Client) FetchMetadata(ctx context.Context, videoID string) (*VideoMetadata, error) {
	result, err := c.command(c.cfg.MetadataTimeout).
		SkipDownload().
		PrintJSON().
		Run(ctx, WatchURL(videoID))
	if err != nil {
		return nil, fmt.Errorf("yt-dlp failed: %w", err)
	}

	infos, err := result.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("parse yt-dlp output: %w", err)
	}
	if len(infos) == 0 {
		return nil, errors.New("yt-dlp returned no video info")
	}
	info := infos[0]

	meta := &VideoMetadata{
		ID:     videoID,
		Source: c.Name(),
	}
	if info.Title != nil {
		meta.Title = *info.Title
	}
	if meta.Title == "" {
		return nil, errors.New("yt-dlp returned no title")
	}
	if info.Duration != nil {
		meta.DurationSeconds = int(*info.Duration)
	}
	if info.Thumbnail != nil {
		meta.ThumbnailURL = *info.Thumbnail
	}
	return meta, nil
}

// Download writes the requested media into opts.OutputDir as <id>.<ext>.
// Audio is extracted and transcoded by yt-dlp's ffmpeg post-processor.
func (c *Client) Download(ctx context.Context, videoID string, opts DownloadOptions) error {
	cmd := c.command(c.cfg.DownloadTimeout).
		Format(opts.FormatSelector).
		Output(filepath.Join(opts.OutputDir, "%(id)s.%(ext)s"))

	if opts.Format == FormatAudio {
		cmd = cmd.ExtractAudio().AudioFormat(opts.AudioCodec)
		if opts.AudioBitrate != "" {
			cmd = cmd.AudioQuality(opts.AudioBitrate + "K")
		}
	} else {
		cmd = cmd.MergeOutputFormat("mp4")
	}

	if _, err := cmd.Run(ctx, WatchURL(videoID)); err != nil {
		return fmt.Errorf("yt-dlp download failed: %w", err)
	}
	return nil
}

func (c *Client) command(socketTimeout time.Duration) *ytdlp.Command {
	cmd := ytdlp.New().
		NoPlaylist().
		NoWarnings().
		SocketTimeout(socketTimeout.Seconds())

	if c.cfg.ExecutablePath != "" {
		cmd = cmd.SetExecutable(c.cfg.ExecutablePath)
	}
	if c.cfg.ProxyURL != "" {
		cmd = cmd.Proxy(c.cfg.ProxyURL)
	}
	if c.cfg.UserAgent != "" {
		cmd = cmd.AddHeaders("User-Agent:" + c.cfg.UserAgent)
	}
	return cmd
}
