package youtube

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL means no video ID could be found; retrying will not help.
	ErrInvalidURL = errors.New("invalid YouTube URL")
	// ErrMetadataUnavailable means every provider failed on every attempt.
	ErrMetadataUnavailable = errors.New("video metadata unavailable")
	// ErrRetrievalFailed means the download or transcode step failed.
	ErrRetrievalFailed = errors.New("media retrieval failed")
)

// URLError carries the user-facing reason a URL was rejected.
type URLError struct {
	URL    string
	Reason string
	Err    error
}

func (e *URLError) Error() string {
	return e.Reason
}

func (e *URLError) Unwrap() error {
	return e.Err
}

func (e *URLError) Is(target error) bool {
	return target == ErrInvalidURL
}

// MetadataError is the terminal failure of a metadata fetch.
type MetadataError struct {
	VideoID  string
	Attempts int
	Err      error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("metadata for %s unavailable after %d attempts: %v", e.VideoID, e.Attempts, e.Err)
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

func (e *MetadataError) Is(target error) bool {
	return target == ErrMetadataUnavailable
}

// ProviderError records which provider failed and why.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// RetrievalError wraps a failure in one stage of a media download.
type RetrievalError struct {
	Stage string
	Err   error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

func (e *RetrievalError) Is(target error) bool {
	return target == ErrRetrievalFailed
}
