package youtube

import (
	"fmt"
	"net/http"
)

// ProviderDeps are the shared clients the providers are built from.
type ProviderDeps struct {
	Ytdlp      *Client
	HTTPClient *http.Client
	// PlayerHTTPClient is used by innertube; nil falls back to HTTPClient.
	PlayerHTTPClient *http.Client
	OEmbedEndpoint   string
	UserAgent        string
}

// NewProviders builds the metadata provider chain in the given order.
func NewProviders(names []string, deps ProviderDeps) ([]MetadataProvider, error) {
	providers := make([]MetadataProvider, 0, len(names))
	for _, name := range names {
		switch name {
		case "ytdlp":
			if deps.Ytdlp == nil {
				return nil, fmt.Errorf("provider %q needs a yt-dlp client", name)
			}
			providers = append(providers, deps.Ytdlp)
		case "oembed":
			providers = append(providers, NewOEmbedProvider(deps.HTTPClient, deps.OEmbedEndpoint, deps.UserAgent))
		case "innertube":
			client := deps.PlayerHTTPClient
			if client == nil {
				client = deps.HTTPClient
			}
			providers = append(providers, NewInnertubeProvider(client))
		default:
			return nil, fmt.Errorf("unknown metadata provider %q", name)
		}
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("no metadata providers configured")
	}
	return providers, nil
}
