package pubfront

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// SiteConfig holds all configuration for a pubfront site.
type SiteConfig struct {
	Name        string `yaml:"name" env:"SITE_NAME" env-default:"Blog"`
	URL         string `yaml:"url" env:"SITE_URL" env-default:"http://localhost:3000"`
	Description string `yaml:"description" env:"SITE_DESCRIPTION"`

	Addr      string `yaml:"addr" env:"ADDR" env-default:":3000"`
	StaticDir string `yaml:"static_dir" env:"STATIC_DIR" env-default:"public"`

	PrismicEndpoint    string        `yaml:"prismic_endpoint" env:"PRISMIC_API_ENDPOINT"` // Required: repository API endpoint
	PrismicAccessToken string        `yaml:"prismic_access_token" env:"PRISMIC_ACCESS_TOKEN"`
	UpstreamTimeout    time.Duration `yaml:"upstream_timeout" env:"UPSTREAM_TIMEOUT" env-default:"10s"`

	SessionSecret     string        `yaml:"session_secret" env:"SESSION_SECRET"` // Required for serving
	CookieSecure      bool          `yaml:"cookie_secure" env:"COOKIE_SECURE"`
	PreviewSessionTTL time.Duration `yaml:"preview_session_ttl" env:"PREVIEW_SESSION_TTL" env-default:"1h"`

	DateLocale string `yaml:"date_locale" env:"DATE_LOCALE" env-default:"pt_BR"`
}

// LoadConfig reads configuration from the YAML file at path, or from
// CONFIG_PATH when path is empty, overlaid with environment variables.
// Without a file only the environment is read.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return SiteConfig{}, fmt.Errorf("pubfront: read config %q: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("pubfront: read env: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.UpstreamTimeout == 0 {
		c.UpstreamTimeout = 10 * time.Second
	}
	if c.PreviewSessionTTL == 0 {
		c.PreviewSessionTTL = time.Hour
	}
	if c.DateLocale == "" {
		c.DateLocale = "pt_BR"
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.Config.StaticDir = dir
	}
}

// WithHTTPClient sets the HTTP client used for every provider call.
func WithHTTPClient(hc *http.Client) Option {
	return func(a *App) {
		a.httpClient = hc
	}
}
