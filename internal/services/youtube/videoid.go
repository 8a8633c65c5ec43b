package youtube

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const videoIDLength = 11

// Tried in order; the first capture wins. The capture excludes quotes, query
// and path delimiters and whitespace.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|shorts/|live/)|youtu\.be/)([^"&?/\s]{11})`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([^"&?/\s]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([^"&?/\s]{11})`),
	regexp.MustCompile(`youtu\.be/([^"&?/\s]{11})`),
}

// ResolveVideoID extracts the 11-character video ID from a YouTube URL.
// It fails with a *URLError matching ErrInvalidURL.
func ResolveVideoID(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", &URLError{URL: rawURL, Reason: "URL is required"}
	}

	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(rawURL); len(m) > 1 {
			return m[1], nil
		}
	}

	normalized := rawURL
	if !strings.Contains(normalized, "://") {
		normalized = "https://" + normalized
	}
	u, err := url.Parse(normalized)
	if err != nil {
		return "", &URLError{URL: rawURL, Reason: "Invalid YouTube URL", Err: err}
	}

	if v := u.Query().Get("v"); utf8.RuneCountInString(v) == videoIDLength {
		return v, nil
	}

	if segment := lastPathSegment(u.Path); utf8.RuneCountInString(segment) == videoIDLength {
		return segment, nil
	}

	return "", &URLError{URL: rawURL, Reason: "Could not extract video ID"}
}

func lastPathSegment(p string) string {
	parts := strings.Split(p, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}

// IsShortURL reports whether the URL points at the short-form video path.
func IsShortURL(rawURL string) bool {
	return strings.Contains(rawURL, "/shorts/")
}
