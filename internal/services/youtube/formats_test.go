package youtube

import (
	"net/http"
	"testing"
	"time"
)

func TestFormatSelector(t *testing.T) {
	tests := []struct {
		name    string
		format  MediaFormat
		quality string
		want    string
	}{
		{name: "audio", format: FormatAudio, want: "bestaudio[ext=m4a]/bestaudio"},
		{name: "audio ignores quality", format: FormatAudio, quality: "720p", want: "bestaudio[ext=m4a]/bestaudio"},
		{name: "video 720p", format: FormatVideo, quality: "720p", want: "bestvideo[height<=720]+bestaudio[ext=m4a]/best[ext=mp4]"},
		{name: "video 1080p", format: FormatVideo, quality: "1080p", want: "bestvideo[height<=1080]+bestaudio[ext=m4a]/best[ext=mp4]"},
		{name: "video best", format: FormatVideo, want: "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]"},
		{name: "video unparsable quality", format: FormatVideo, quality: "high", want: "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSelector(tt.format, tt.quality); got != tt.want {
				t.Errorf("FormatSelector(%q, %q) = %q, want %q", tt.format, tt.quality, got, tt.want)
			}
		})
	}
}

func TestValidQuality(t *testing.T) {
	for _, q := range []string{"", "144p", "720p", "2160p"} {
		if !ValidQuality(q) {
			t.Errorf("ValidQuality(%q) = false, want true", q)
		}
	}
	for _, q := range []string{"720", "p", "hd", "720P", "720p60"} {
		if ValidQuality(q) {
			t.Errorf("ValidQuality(%q) = true, want false", q)
		}
	}
}

func TestParseMediaFormat(t *testing.T) {
	tests := []struct {
		input           string
		want            MediaFormat
		wantExt         string
		wantContentType string
	}{
		{input: "", want: FormatVideo, wantExt: "mp4", wantContentType: "video/mp4"},
		{input: "video", want: FormatVideo, wantExt: "mp4", wantContentType: "video/mp4"},
		{input: "audio", want: FormatAudio, wantExt: "mp3", wantContentType: "audio/mpeg"},
	}

	for _, tt := range tests {
		got, err := ParseMediaFormat(tt.input)
		if err != nil {
			t.Fatalf("ParseMediaFormat(%q) error = %v", tt.input, err)
		}
		if got != tt.want || got.Extension() != tt.wantExt || got.ContentType() != tt.wantContentType {
			t.Errorf("ParseMediaFormat(%q) = %q (%s, %s)", tt.input, got, got.Extension(), got.ContentType())
		}
	}

	if _, err := ParseMediaFormat("gif"); err == nil {
		t.Error("ParseMediaFormat(gif) succeeded, want error")
	}
}

func TestNewProviders(t *testing.T) {
	deps := ProviderDeps{
		Ytdlp:      NewClient(ClientConfig{}),
		HTTPClient: &http.Client{Timeout: time.Second},
		UserAgent:  "Mozilla/5.0",
	}

	providers, err := NewProviders([]string{"ytdlp", "innertube", "oembed"}, deps)
	if err != nil {
		t.Fatalf("NewProviders() error = %v", err)
	}
	var names []string
	for _, p := range providers {
		names = append(names, p.Name())
	}
	if len(names) != 3 || names[0] != "ytdlp" || names[1] != "innertube" || names[2] != "oembed" {
		t.Errorf("provider order = %v", names)
	}

	if _, err := NewProviders([]string{"scraper"}, deps); err == nil {
		t.Error("NewProviders(scraper) succeeded, want error")
	}
	if _, err := NewProviders(nil, deps); err == nil {
		t.Error("NewProviders(nil) succeeded, want error")
	}
	if _, err := NewProviders([]string{"ytdlp"}, ProviderDeps{}); err == nil {
		t.Error("NewProviders(ytdlp) without client succeeded, want error")
	}
}

func TestNewProviders_InnertubeUsesPlayerClient(t *testing.T) {
	oembedClient := &http.Client{Timeout: 5 * time.Second}
	playerClient := &http.Client{Timeout: 10 * time.Second}

	providers, err := NewProviders([]string{"innertube", "oembed"}, ProviderDeps{
		HTTPClient:       oembedClient,
		PlayerHTTPClient: playerClient,
	})
	if err != nil {
		t.Fatalf("NewProviders() error = %v", err)
	}

	innertube := providers[0].(*InnertubeProvider)
	if innertube.client.HTTPClient != playerClient {
		t.Errorf("innertube timeout = %s, want the 10s player client", innertube.client.HTTPClient.Timeout)
	}
	oembed := providers[1].(*OEmbedProvider)
	if oembed.httpClient != oembedClient {
		t.Errorf("oembed timeout = %s, want the 5s client", oembed.httpClient.Timeout)
	}

	providers, err = NewProviders([]string{"innertube"}, ProviderDeps{HTTPClient: oembedClient})
	if err != nil {
		t.Fatalf("NewProviders() error = %v", err)
	}
	if providers[0].(*InnertubeProvider).client.HTTPClient != oembedClient {
		t.Error("innertube without a player client did not fall back to HTTPClient")
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(ClientConfig{ProxyURL: "http://proxy.local:3128"})
	if c.cfg.MetadataTimeout != 10*time.Second {
		t.Errorf("MetadataTimeout = %s, want 10s", c.cfg.MetadataTimeout)
	}
	if c.cfg.DownloadTimeout != 30*time.Second {
		t.Errorf("DownloadTimeout = %s, want 30s", c.cfg.DownloadTimeout)
	}
	if c.Name() != "ytdlp" {
		t.Errorf("Name() = %q, want ytdlp", c.Name())
	}
}
