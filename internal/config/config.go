package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	DefaultListenAddr      = ":3000"
	DefaultAPIBaseURL      = "http://localhost:8080/api"
	DefaultAPITimeout      = 10 * time.Second
	DefaultLanguage        = "ru"
	DefaultTimezone        = "UTC"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
	DefaultFanOutLimit     = 4
	DefaultSessionTTL      = 7 * 24 * time.Hour
	minSecretKeyLength     = 32
	insecureSecretKeyValue = "change_me_in_production"
)

type Config struct {
	ListenAddr      string
	APIBaseURL      string
	APITimeout      time.Duration
	SecretKey       string
	DBPath          string
	TemplateDir     string
	StaticDir       string
	LocalesDir      string
	DefaultLanguage string
	Location        *time.Location
	CookieSecure    bool
	LogLevel        string
	LogFormat       string
	FanOutLimit     int
	SessionTTL      time.Duration
}

type tomlConfig struct {
	ListenAddr      string `toml:"listen_addr"`
	SecretKey       string `toml:"secret_key"`
	DBPath          string `toml:"db_path"`
	TemplateDir     string `toml:"template_dir"`
	StaticDir       string `toml:"static_dir"`
	LocalesDir      string `toml:"locales_dir"`
	DefaultLanguage string `toml:"default_language"`
	Timezone        string `toml:"timezone"`
	CookieSecure    *bool  `toml:"cookie_secure"`
	SessionTTL      string `toml:"session_ttl"`

	API struct {
		BaseURL     string `toml:"base_url"`
		Timeout     string `toml:"timeout"`
		FanOutLimit int    `toml:"fanout_limit"`
	} `toml:"api"`

	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"log"`
}

// Env is the environment lookup used by Load; os.Getenv in production.
type Env func(key string) string

// Load reads the optional TOML file at path, then applies WD_* environment
// overrides, then validates. An empty path skips the file.
func Load(path string, getenv Env) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	var tc tomlConfig
	if strings.TrimSpace(path) != "" {
		if _, err := toml.DecodeFile(path, &tc); err != nil {
			return nil, errors.Wrapf(err, "failed to decode toml file with path: %s", path)
		}
	}

	overlayString(&tc.ListenAddr, getenv("WD_LISTEN_ADDR"))
	overlayString(&tc.API.BaseURL, getenv("WD_API_BASE_URL"))
	overlayString(&tc.API.Timeout, getenv("WD_API_TIMEOUT"))
	overlayString(&tc.SecretKey, getenv("WD_SECRET_KEY"))
	overlayString(&tc.DBPath, getenv("WD_DB_PATH"))
	overlayString(&tc.TemplateDir, getenv("WD_TEMPLATE_DIR"))
	overlayString(&tc.StaticDir, getenv("WD_STATIC_DIR"))
	overlayString(&tc.LocalesDir, getenv("WD_LOCALES_DIR"))
	overlayString(&tc.DefaultLanguage, getenv("WD_DEFAULT_LANGUAGE"))
	overlayString(&tc.Timezone, getenv("WD_TZ"))
	overlayString(&tc.Log.Level, getenv("WD_LOG_LEVEL"))
	overlayString(&tc.Log.Format, getenv("WD_LOG_FORMAT"))
	overlayString(&tc.SessionTTL, getenv("WD_SESSION_TTL"))

	if raw := strings.TrimSpace(getenv("WD_COOKIE_SECURE")); raw != "" {
		secure, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse WD_COOKIE_SECURE: %s", raw)
		}
		tc.CookieSecure = &secure
	}
	if raw := strings.TrimSpace(getenv("WD_FANOUT_LIMIT")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse WD_FANOUT_LIMIT: %s", raw)
		}
		tc.API.FanOutLimit = limit
	}

	return tc.resolve()
}

func (tc tomlConfig) resolve() (*Config, error) {
	cfg := &Config{
		ListenAddr:      valueOr(tc.ListenAddr, DefaultListenAddr),
		APIBaseURL:      strings.TrimRight(valueOr(tc.API.BaseURL, DefaultAPIBaseURL), "/"),
		DBPath:          valueOr(tc.DBPath, filepath.Join("data", "wateringdiary.db")),
		TemplateDir:     valueOr(tc.TemplateDir, filepath.Join("internal", "templates")),
		StaticDir:       valueOr(tc.StaticDir, filepath.Join("web", "static")),
		LocalesDir:      valueOr(tc.LocalesDir, filepath.Join("internal", "i18n", "locales")),
		DefaultLanguage: strings.ToLower(valueOr(tc.DefaultLanguage, DefaultLanguage)),
		LogLevel:        strings.ToLower(valueOr(tc.Log.Level, DefaultLogLevel)),
		LogFormat:       strings.ToLower(valueOr(tc.Log.Format, DefaultLogFormat)),
		FanOutLimit:     tc.API.FanOutLimit,
	}

	secretKey, err := ResolveSecretKey(tc.SecretKey)
	if err != nil {
		return nil, err
	}
	cfg.SecretKey = secretKey

	if err := validateBaseURL(cfg.APIBaseURL); err != nil {
		return nil, err
	}

	cfg.APITimeout, err = parseDuration("api.timeout", tc.API.Timeout, DefaultAPITimeout)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL, err = parseDuration("session_ttl", tc.SessionTTL, DefaultSessionTTL)
	if err != nil {
		return nil, err
	}

	if cfg.FanOutLimit == 0 {
		cfg.FanOutLimit = DefaultFanOutLimit
	}
	if cfg.FanOutLimit < 1 {
		return nil, errors.Errorf("api.fanout_limit must be at least 1, got %d", cfg.FanOutLimit)
	}

	timezone := valueOr(tc.Timezone, DefaultTimezone)
	cfg.Location, err = time.LoadLocation(timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load timezone: %s", timezone)
	}

	if tc.CookieSecure != nil {
		cfg.CookieSecure = *tc.CookieSecure
	}

	switch cfg.LogFormat {
	case "json", "console":
	default:
		return nil, errors.Errorf("log.format must be json or console, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

// ResolveSecretKey rejects empty, placeholder and short keys.
func ResolveSecretKey(raw string) (string, error) {
	secretKey := strings.TrimSpace(raw)
	if secretKey == "" {
		return "", errors.New("secret_key is not set (WD_SECRET_KEY)")
	}
	if secretKey == insecureSecretKeyValue {
		return "", errors.New("secret_key uses the insecure placeholder value")
	}
	if len(secretKey) < minSecretKeyLength {
		return "", errors.Errorf("secret_key too short (%d), minimum length: %d", len(secretKey), minSecretKeyLength)
	}
	return secretKey, nil
}

func validateBaseURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return errors.Wrapf(err, "failed to parse api.base_url: %s", raw)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.Errorf("api.base_url must be an absolute http(s) url, got %q", raw)
	}
	if parsed.Host == "" {
		return errors.Errorf("api.base_url has no host: %q", raw)
	}
	return nil
}

func parseDuration(name string, raw string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.Wrapf(err, "failed to parse %s", name)
	}
	if value <= 0 {
		return 0, errors.Errorf("%s must be positive, got %v", name, value)
	}
	return value, nil
}

func overlayString(target *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*target = trimmed
	}
}

func valueOr(value string, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
