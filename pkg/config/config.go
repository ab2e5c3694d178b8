package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	Site     SiteConfig
	WP       WordPressConfig
	Settings SettingsConfig
	Sitemap  SitemapConfig
	Filters  FiltersCacheConfig
}

// DatabaseConfig carries both Postgres credentials: the elevated read-write
// connection and the public read-only connection used when the elevated path
// is unavailable. Both see the same schema.
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	PublicUser   string
	PublicPass   string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SiteConfig seeds the hardcoded default settings tier.
type SiteConfig struct {
	Title       string
	Tagline     string
	Description string
	URL         string
	GAID        string
	GTMID       string
}

// WordPressConfig points at the upstream job/article API.
type WordPressConfig struct {
	APIURL        string
	FiltersAPIURL string
	PostsAPIURL   string
	JobsAPIURL    string
	AuthToken     string
	Timeout       time.Duration
}

// SettingsConfig tunes the tiered settings resolver.
type SettingsConfig struct {
	CacheTTL     time.Duration
	QueryTimeout time.Duration
	AuthTimeout  time.Duration
}

// SitemapConfig governs background sitemap regeneration.
type SitemapConfig struct {
	Enabled       bool
	WorkerRetries int
}

// FiltersCacheConfig tunes redis caching of upstream filter snapshots.
type FiltersCacheConfig struct {
	Enabled  bool
	CacheTTL time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		PublicUser:   v.GetString("DB_PUBLIC_USER"),
		PublicPass:   v.GetString("DB_PUBLIC_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Site = SiteConfig{
		Title:       v.GetString("SITE_TITLE"),
		Tagline:     v.GetString("SITE_TAGLINE"),
		Description: v.GetString("SITE_DESCRIPTION"),
		URL:         v.GetString("SITE_URL"),
		GAID:        v.GetString("GA_ID"),
		GTMID:       v.GetString("GTM_ID"),
	}

	cfg.WP = WordPressConfig{
		APIURL:        v.GetString("WP_API_URL"),
		FiltersAPIURL: v.GetString("WP_FILTERS_API_URL"),
		PostsAPIURL:   v.GetString("WP_POSTS_API_URL"),
		JobsAPIURL:    v.GetString("WP_JOBS_API_URL"),
		AuthToken:     v.GetString("WP_AUTH_TOKEN"),
		Timeout:       parseDuration(v.GetString("WP_TIMEOUT"), 10*time.Second),
	}

	cfg.Settings = SettingsConfig{
		CacheTTL:     parseDuration(v.GetString("SETTINGS_CACHE_TTL"), 2*time.Minute),
		QueryTimeout: parseDuration(v.GetString("SETTINGS_QUERY_TIMEOUT"), 15*time.Second),
		AuthTimeout:  parseDuration(v.GetString("SETTINGS_AUTH_TIMEOUT"), 10*time.Second),
	}

	cfg.Sitemap = SitemapConfig{
		Enabled:       v.GetBool("ENABLE_SITEMAP_SCHEDULER"),
		WorkerRetries: v.GetInt("SITEMAP_WORKER_RETRIES"),
	}

	cfg.Filters = FiltersCacheConfig{
		Enabled:  v.GetBool("ENABLE_FILTERS_CACHE"),
		CacheTTL: parseDuration(v.GetString("FILTERS_CACHE_TTL"), 10*time.Minute),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_PUBLIC_USER", "nexjob_public")
	v.SetDefault("DB_PUBLIC_PASSWORD", "")
	v.SetDefault("DB_NAME", "nexjob")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "nexjob-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SITE_TITLE", "Nexjob")
	v.SetDefault("SITE_TAGLINE", "Find Your Dream Job")
	v.SetDefault("SITE_DESCRIPTION", "Portal lowongan kerja dan artikel karir Indonesia")
	v.SetDefault("SITE_URL", "https://nexjob.tech")
	v.SetDefault("GA_ID", "")
	v.SetDefault("GTM_ID", "")

	v.SetDefault("WP_API_URL", "https://cms.nexjob.tech/wp-json/wp/v2")
	v.SetDefault("WP_FILTERS_API_URL", "https://cms.nexjob.tech/wp-json/nexjob/v1/filters")
	v.SetDefault("WP_POSTS_API_URL", "https://cms.nexjob.tech/wp-json/wp/v2/posts")
	v.SetDefault("WP_JOBS_API_URL", "https://cms.nexjob.tech/wp-json/wp/v2/lowongan-kerja")
	v.SetDefault("WP_AUTH_TOKEN", "")
	v.SetDefault("WP_TIMEOUT", "10s")

	v.SetDefault("SETTINGS_CACHE_TTL", "2m")
	v.SetDefault("SETTINGS_QUERY_TIMEOUT", "15s")
	v.SetDefault("SETTINGS_AUTH_TIMEOUT", "10s")

	v.SetDefault("ENABLE_SITEMAP_SCHEDULER", false)
	v.SetDefault("SITEMAP_WORKER_RETRIES", 3)

	v.SetDefault("ENABLE_FILTERS_CACHE", false)
	v.SetDefault("FILTERS_CACHE_TTL", "10m")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
