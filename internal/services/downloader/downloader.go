package downloader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/denisAlshanov/ytfetch/internal/config"
	"github.com/denisAlshanov/ytfetch/internal/services/youtube"
	"github.com/denisAlshanov/ytfetch/internal/utils"
)

// ErrInvalidRequest is returned for an unknown format, quality or bitrate.
var ErrInvalidRequest = errors.New("invalid download request")

var unsafeFileChars = regexp.MustCompile(`[^\p{L}\p{N}_\p{Z}\s.-]`)

// MetadataFetcher is the part of youtube.MetadataFetcher the downloader needs.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, rawURL string) (*youtube.VideoMetadata, error)
}

// Request is a single media download as asked for by a client.
type Request struct {
	URL     string
	Format  string
	Quality string
	Bitrate string
}

// MediaFile is a finished download held in memory.
type MediaFile struct {
	Data        []byte
	Filename    string
	ContentType string
	Size        int64
	Checksum    string
}

type Downloader struct {
	fetcher   MetadataFetcher
	media     youtube.MediaDownloader
	config    *config.DownloadConfig
	semaphore chan struct{}
	delay     func(min, max time.Duration) time.Duration
}

func NewDownloader(fetcher MetadataFetcher, media youtube.MediaDownloader, cfg *config.DownloadConfig) *Downloader {
	concurrent := cfg.MaxConcurrent
	if concurrent < 1 {
		concurrent = 1
	}
	return &Downloader{
		fetcher:   fetcher,
		media:     media,
		config:    cfg,
		semaphore: make(chan struct{}, concurrent),
		delay:     utils.RandomDuration,
	}
}

// Retrieve downloads the media for req.URL and returns it in memory. The
// working directory is removed before Retrieve returns, on every path.
func (d *Downloader) Retrieve(ctx context.Context, req Request) (*MediaFile, error) {
	format, bitrate, err := d.validate(req)
	if err != nil {
		return nil, err
	}

	meta, err := d.fetcher.FetchMetadata(ctx, req.URL)
	if err != nil {
		if errors.Is(err, youtube.ErrInvalidURL) || ctx.Err() != nil {
			return nil, err
		}
		return nil, &youtube.RetrievalError{Stage: "metadata", Err: err}
	}

	filename := SanitizeFileName(meta.Title, meta.ID) + "." + format.Extension()

	if err := sleepContext(ctx, d.delay(d.config.MinDelay, d.config.MaxDelay)); err != nil {
		return nil, err
	}

	select {
	case d.semaphore <- struct{}{}:
		defer func() { <-d.semaphore }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	tempDir, err := os.MkdirTemp(d.config.TempDir, "ytfetch-")
	if err != nil {
		return nil, &youtube.RetrievalError{Stage: "tempdir", Err: err}
	}
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			utils.LogError(ctx, "Failed to remove temp directory", err, utils.Fields{"dir": tempDir})
		}
	}()

	opts := youtube.DownloadOptions{
		OutputDir:      tempDir,
		FormatSelector: youtube.FormatSelector(format, req.Quality),
		Format:         format,
		AudioCodec:     "mp3",
		AudioBitrate:   bitrate,
	}

	utils.LogInfo(ctx, "Starting media download", utils.Fields{
		"video_id": meta.ID,
		"format":   format,
		"selector": opts.FormatSelector,
	})
	start := time.Now()

	if err := d.media.Download(ctx, meta.ID, opts); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &youtube.RetrievalError{Stage: "download", Err: err}
	}

	path, err := locateOutput(tempDir, format)
	if err != nil {
		return nil, &youtube.RetrievalError{Stage: "output", Err: err}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &youtube.RetrievalError{Stage: "output", Err: err}
	}
	if d.config.MaxFileSize > 0 && info.Size() > d.config.MaxFileSize {
		return nil, &youtube.RetrievalError{
			Stage: "output",
			Err:   fmt.Errorf("file size %d exceeds limit %d", info.Size(), d.config.MaxFileSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &youtube.RetrievalError{Stage: "output", Err: err}
	}

	sum := sha256.Sum256(data)
	file := &MediaFile{
		Data:        data,
		Filename:    filename,
		ContentType: format.ContentType(),
		Size:        int64(len(data)),
		Checksum:    hex.EncodeToString(sum[:]),
	}

	utils.LogInfo(ctx, "Media download completed", utils.Fields{
		"video_id":    meta.ID,
		"filename":    file.Filename,
		"size":        file.Size,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return file, nil
}

func (d *Downloader) validate(req Request) (youtube.MediaFormat, string, error) {
	format, err := youtube.ParseMediaFormat(req.Format)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if !youtube.ValidQuality(req.Quality) {
		return "", "", fmt.Errorf("%w: quality %q must look like 720p", ErrInvalidRequest, req.Quality)
	}

	bitrate := req.Bitrate
	if bitrate == "" {
		bitrate = d.config.DefaultBitrate
	}
	if n, err := strconv.Atoi(bitrate); err != nil || n <= 0 {
		return "", "", fmt.Errorf("%w: bitrate %q must be a positive number", ErrInvalidRequest, bitrate)
	}
	return format, bitrate, nil
}

// SanitizeFileName keeps letters, digits, underscore, Unicode whitespace,
// dot and hyphen; surrounding whitespace is kept. A title with nothing but
// whitespace left falls back to the video ID.
func SanitizeFileName(title, videoID string) string {
	name := unsafeFileChars.ReplaceAllString(title, "")
	if strings.TrimSpace(name) == "" {
		return videoID
	}
	return name
}

// locateOutput finds the file yt-dlp left in dir, preferring the expected
// extension and ignoring partial downloads.
func locateOutput(dir string, format youtube.MediaFormat) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	want := "." + format.Extension()
	var fallback string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext == ".part" || ext == ".ytdl" || strings.HasSuffix(name, ".temp"+ext) {
			continue
		}
		if ext == want {
			return filepath.Join(dir, name), nil
		}
		if fallback == "" {
			fallback = filepath.Join(dir, name)
		}
	}
	if fallback == "" {
		return "", errors.New("no output file produced")
	}
	return fallback, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
