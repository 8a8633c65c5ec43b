package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Provider names accepted in METADATA_PROVIDERS.
const (
	ProviderYtdlp     = "ytdlp"
	ProviderOEmbed    = "oembed"
	ProviderInnertube = "innertube"
)

type Config struct {
	Server   ServerConfig
	App      AppConfig
	Proxy    ProxyConfig
	YouTube  YouTubeConfig
	Metadata MetadataConfig
	Download DownloadConfig
	Static   StaticConfig
}

type ServerConfig struct {
	Port string
	Host string
}

type AppConfig struct {
	Environment string
}

// ProxyConfig is read once at startup and handed to every outbound client.
type ProxyConfig struct {
	URL string
}

type YouTubeConfig struct {
	YtdlpPath   string
	AutoInstall bool
	UserAgent   string
}

type MetadataConfig struct {
	Providers      []string
	MaxRetries     int
	RetryBackoff   time.Duration
	SocketTimeout  time.Duration
	OEmbedTimeout  time.Duration
	OEmbedEndpoint string
}

type DownloadConfig struct {
	SocketTimeout  time.Duration
	MinDelay       time.Duration
	MaxDelay       time.Duration
	DefaultBitrate string
	TempDir        string
	MaxFileSize    int64
	MaxConcurrent  int
}

type StaticConfig struct {
	Root      string
	IndexFile string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	cfg := &Config{}
	var err error

	// Server configuration
	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.Server.Port = getEnv("SERVER_PORT", getEnv("PORT", "5000"))

	cfg.App.Environment = strings.ToLower(getEnv("APP_ENV", getEnv("FLASK_ENV", EnvProduction)))

	// Proxy configuration
	cfg.Proxy.URL = strings.TrimSpace(getEnv("PROXY_URL", ""))
	if cfg.Proxy.URL != "" {
		if err := validateProxyURL(cfg.Proxy.URL); err != nil {
			return nil, fmt.Errorf("invalid PROXY_URL: %w", err)
		}
	}

	// yt-dlp configuration
	cfg.YouTube.YtdlpPath = getEnv("YTDLP_PATH", "")
	cfg.YouTube.AutoInstall = getEnvBool("YTDLP_AUTO_INSTALL", false)
	cfg.YouTube.UserAgent = getEnv("USER_AGENT", DefaultUserAgent)

	// Metadata configuration
	cfg.Metadata.Providers = getEnvStringSlice("METADATA_PROVIDERS", []string{ProviderYtdlp, ProviderOEmbed})
	for i, name := range cfg.Metadata.Providers {
		name = strings.ToLower(strings.TrimSpace(name))
		switch name {
		case ProviderYtdlp, ProviderOEmbed, ProviderInnertube:
		default:
			return nil, fmt.Errorf("invalid METADATA_PROVIDERS: unknown provider %q", name)
		}
		cfg.Metadata.Providers[i] = name
	}
	cfg.Metadata.MaxRetries = getEnvInt("METADATA_MAX_RETRIES", 3)
	if cfg.Metadata.MaxRetries < 0 {
		return nil, fmt.Errorf("invalid METADATA_MAX_RETRIES: must not be negative")
	}
	if cfg.Metadata.RetryBackoff, err = getEnvDuration("METADATA_RETRY_BACKOFF", "0s"); err != nil {
		return nil, err
	}
	if cfg.Metadata.SocketTimeout, err = getEnvDuration("METADATA_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.Metadata.OEmbedTimeout, err = getEnvDuration("OEMBED_TIMEOUT", "5s"); err != nil {
		return nil, err
	}
	cfg.Metadata.OEmbedEndpoint = getEnv("OEMBED_ENDPOINT", "https://www.youtube.com/oembed")

	// Download configuration
	if cfg.Download.SocketTimeout, err = getEnvDuration("DOWNLOAD_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.Download.MinDelay, err = getEnvDuration("DOWNLOAD_DELAY_MIN", "2s"); err != nil {
		return nil, err
	}
	if cfg.Download.MaxDelay, err = getEnvDuration("DOWNLOAD_DELAY_MAX", "5s"); err != nil {
		return nil, err
	}
	if cfg.Download.MinDelay < 0 || cfg.Download.MaxDelay < cfg.Download.MinDelay {
		return nil, fmt.Errorf("invalid download delay range %s-%s", cfg.Download.MinDelay, cfg.Download.MaxDelay)
	}
	cfg.Download.DefaultBitrate = getEnv("DOWNLOAD_DEFAULT_BITRATE", "192")
	cfg.Download.TempDir = getEnv("DOWNLOAD_TEMP_DIR", "")
	cfg.Download.MaxFileSize = getEnvInt64("DOWNLOAD_MAX_FILE_SIZE", 2*1024*1024*1024) // 2GB default
	cfg.Download.MaxConcurrent = getEnvInt("DOWNLOAD_MAX_CONCURRENT", 2)
	if cfg.Download.MaxConcurrent < 1 {
		return nil, fmt.Errorf("invalid DOWNLOAD_MAX_CONCURRENT: must be at least 1")
	}

	// Static hosting
	cfg.Static.Root = getEnv("STATIC_ROOT", ".")
	cfg.Static.IndexFile = getEnv("STATIC_INDEX", "index.html")

	return cfg, nil
}

// IsDevelopment reports whether internal error details may be exposed to clients.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == EnvDevelopment
}

func validateProxyURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("proxy URL %q must include scheme and host", raw)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key, defaultValue string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(strings.TrimSpace(value), ",")
	}
	return defaultValue
}
