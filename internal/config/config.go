package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the locator service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the monitoring server (/healthz, /metrics).
// - APIPort: The port for the public HTTP API.
// - Provider: Geocoding provider selection and tuning.
// - Search: Address resolver and ranking settings.
// - Workers: The number of concurrent coordinate backfill workers.
// - Interval: The duration between coordinate backfill batches.
// - RefreshInterval: The duration between firm directory reloads.
// - Redis: Geocode cache settings; an empty URL disables the cache.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env             string
	Port            int
	APIPort         int
	AllowedOrigins  []string
	Provider        ProviderConfig
	Search          SearchConfig
	Workers         int
	Interval        time.Duration
	RefreshInterval time.Duration
	SessionTTL      time.Duration
	Redis           RedisConfig
	Database        PostgresConfig
}

// ProviderConfig selects the geocoding backend.
type ProviderConfig struct {
	Type      string        // Type is google or nominatim.
	APIKey    string        // APIKey is required for Google.
	BaseURL   string        // BaseURL overrides the Nominatim endpoint.
	UserAgent string        // UserAgent identifies us to Nominatim.
	RateLimit int           // RateLimit is the outbound requests per second budget.
	Timeout   time.Duration // Timeout bounds one provider request.
}

// SearchConfig tunes address resolution.
type SearchConfig struct {
	CountryCode        string
	StateAbbreviations map[string]string
	DefaultLatitude    float64
	DefaultLongitude   float64
	Debounce           time.Duration
	SuggestLimit       int
	RequestTimeout     time.Duration
}

// RedisConfig configures the geocode cache.
type RedisConfig struct {
	URL string
	TTL time.Duration
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
	SSLMode  string // SSLMode is passed through as the sslmode parameter.
}

// DSN returns the postgres connection URL.
func (p PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, p.Port),
		Path:     "/" + p.Name,
		RawQuery: url.Values{"sslmode": []string{p.SSLMode}}.Encode(),
	}
	return u.String()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")
	v.SetDefault("monitoring.port", "8080")
	v.SetDefault("api.port", "8000")
	v.SetDefault("api.allowed_origins", "")
	v.SetDefault("provider.type", "nominatim")
	v.SetDefault("provider.key", "")
	v.SetDefault("provider.base_url", "")
	v.SetDefault("provider.user_agent", "locator/1.0")
	v.SetDefault("provider.rate_limit", "1")
	v.SetDefault("provider.timeout", "10s")
	v.SetDefault("search.country_code", "us")
	v.SetDefault("search.state_abbreviations", "North Carolina=NC,South Carolina=SC")
	v.SetDefault("search.default_lat", "35.2271")
	v.SetDefault("search.default_lon", "-80.8431")
	v.SetDefault("search.debounce", "300ms")
	v.SetDefault("search.suggest_limit", "8")
	v.SetDefault("search.request_timeout", "10s")
	v.SetDefault("geocoder.workers", "1")
	v.SetDefault("geocoder.interval", "10m")
	v.SetDefault("directory.refresh_interval", "1m")
	v.SetDefault("sessions.ttl", "30m")
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.ttl", "24h")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.sslmode", "disable")
}

// MustLoad reads .env, the optional YAML file named by LOCATOR_CONFIG and
// LOCATOR_* environment variables, in increasing priority. It panics on
// values that cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("LOCATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range map[string]string{
		"postgres.host":     "DB_HOST",
		"postgres.port":     "DB_PORT",
		"postgres.user":     "DB_USERNAME",
		"postgres.password": "DB_PASSWORD",
		"postgres.name":     "DB_NAME",
		"postgres.sslmode":  "DB_SSLMODE",
	} {
		_ = v.BindEnv(key, env)
	}

	if path := os.Getenv("LOCATOR_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			panic(fmt.Sprintf("failed to read config file %s: %v", path, err))
		}
	}

	cfg := &Config{
		Env:            v.GetString("env"),
		Port:           mustInt(v, "monitoring.port", "failed to parse port for monitoring server from configuration"),
		APIPort:        mustInt(v, "api.port", "failed to parse port for api server from configuration"),
		AllowedOrigins: splitList(v.GetString("api.allowed_origins")),
		Provider: ProviderConfig{
			Type:      v.GetString("provider.type"),
			APIKey:    v.GetString("provider.key"),
			BaseURL:   v.GetString("provider.base_url"),
			UserAgent: v.GetString("provider.user_agent"),
			RateLimit: mustInt(v, "provider.rate_limit", "failed to parse provider rate limit, must be an integer types"),
			Timeout:   mustDuration(v, "provider.timeout", "failed to parse provider timeout from configuration"),
		},
		Search: SearchConfig{
			CountryCode:        strings.ToLower(v.GetString("search.country_code")),
			StateAbbreviations: mustAbbreviations(v.GetString("search.state_abbreviations")),
			DefaultLatitude:    mustFloat(v, "search.default_lat", "failed to parse default latitude from configuration"),
			DefaultLongitude:   mustFloat(v, "search.default_lon", "failed to parse default longitude from configuration"),
			Debounce:           mustDuration(v, "search.debounce", "failed to parse debounce from configuration"),
			SuggestLimit:       mustInt(v, "search.suggest_limit", "failed to parse suggest limit, must be an integer types"),
			RequestTimeout:     mustDuration(v, "search.request_timeout", "failed to parse request timeout from configuration"),
		},
		Workers:         mustInt(v, "geocoder.workers", "failed to parse workers from configuration, must be an integer types"),
		Interval:        mustDuration(v, "geocoder.interval", "failed to parse interval from configuration"),
		RefreshInterval: mustDuration(v, "directory.refresh_interval", "failed to parse refresh interval from configuration"),
		SessionTTL:      mustDuration(v, "sessions.ttl", "failed to parse session ttl from configuration"),
		Redis: RedisConfig{
			URL: v.GetString("redis.url"),
			TTL: mustDuration(v, "redis.ttl", "failed to parse redis ttl from configuration"),
		},
		Database: PostgresConfig{
			Host:     v.GetString("postgres.host"),
			Port:     v.GetString("postgres.port"),
			User:     v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			Name:     v.GetString("postgres.name"),
			SSLMode:  v.GetString("postgres.sslmode"),
		},
	}

	if cfg.Workers < 1 {
		panic("workers must be at least 1")
	}

	return cfg
}

func mustInt(v *viper.Viper, key, msg string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		panic(msg)
	}
	return n
}

func mustFloat(v *viper.Viper, key, msg string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
	if err != nil {
		panic(msg)
	}
	return f
}

func mustDuration(v *viper.Viper, key, msg string) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		panic(msg)
	}
	return d
}

// mustAbbreviations parses "North Carolina=NC,South Carolina=SC".
func mustAbbreviations(raw string) map[string]string {
	out := make(map[string]string)
	for _, pair := range splitList(raw) {
		name, abbr, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" || strings.TrimSpace(abbr) == "" {
			panic("failed to parse state abbreviations, expected Name=AB pairs")
		}
		out[strings.TrimSpace(name)] = strings.TrimSpace(abbr)
	}
	return out
}

func splitList(raw string) []string {
	var out []string
	for item := range strings.SplitSeq(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
