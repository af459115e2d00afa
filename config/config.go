package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port      string
	BaseURL   string
	StaticDir string

	Contentful ContentfulConfig
	Catalog    CatalogConfig
	Drive      DriveConfig
	Assistant  AssistantConfig
	Offers     OfferFormConfig
	Images     ImageConfig
	ChromePath string
}

// ContentfulConfig holds the content store credentials. Missing credentials
// produce a disabled client, not an error.
type ContentfulConfig struct {
	SpaceID     string
	AccessToken string
	Environment string
	BaseURL     string
	Timeout     time.Duration
}

// Enabled reports whether both secrets are present
func (c ContentfulConfig) Enabled() bool {
	return c.SpaceID != "" && c.AccessToken != ""
}

type CatalogConfig struct {
	RefreshCron string
}

type DriveConfig struct {
	CredentialsPath  string
	FallbackFolderID string
}

type AssistantConfig struct {
	APIKey string
	Model  string
}

// OfferFormConfig points at the external form that collects price offers.
// Fields maps offer attributes (snakeId, name, contact, amount, message) to
// the form's entry ids.
type OfferFormConfig struct {
	URL    string
	Fields map[string]string
}

type ImageConfig struct {
	CacheDir string
}

// Load reads configuration from the environment. The caller is expected to
// have loaded any .env file beforehand.
func Load() *Config {
	return &Config{
		Port:      strings.TrimPrefix(getEnv("PORT", "8080"), ":"),
		BaseURL:   getEnv("BASE_URL", ""),
		StaticDir: getEnv("STATIC_DIR", "static"),
		Contentful: ContentfulConfig{
			SpaceID:     os.Getenv("CONTENTFUL_SPACE_ID"),
			AccessToken: os.Getenv("CONTENTFUL_ACCESS_TOKEN"),
			Environment: getEnv("CONTENTFUL_ENVIRONMENT", "master"),
			BaseURL:     getEnv("CONTENTFUL_BASE_URL", "https://cdn.contentful.com"),
			Timeout:     time.Duration(getEnvInt("CONTENTFUL_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		Catalog: CatalogConfig{
			RefreshCron: os.Getenv("CATALOG_REFRESH_CRON"),
		},
		Drive: DriveConfig{
			CredentialsPath:  os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
			FallbackFolderID: os.Getenv("FALLBACK_DRIVE_FOLDER_ID"),
		},
		Assistant: AssistantConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Offers: OfferFormConfig{
			URL:    os.Getenv("OFFER_FORM_URL"),
			Fields: parseFieldMap(os.Getenv("OFFER_FORM_FIELDS")),
		},
		Images: ImageConfig{
			CacheDir: getEnv("IMAGE_CACHE_DIR", "cache/images"),
		},
		ChromePath: os.Getenv("CHROME_PATH"),
	}
}

// parseFieldMap reads "snakeId=entry.1,name=entry.2" into a map
func parseFieldMap(raw string) map[string]string {
	fields := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		fields[key] = value
	}
	return fields
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
