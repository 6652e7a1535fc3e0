package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode      Mode
	HTTPAddr  string
	PublicURL string
	SiteID    string

	DBDriver  string
	DBDSN     string
	DBTimeout time.Duration

	RequestTimeout time.Duration

	AuthSecret string
	TokenTTL   time.Duration

	CORSOriginsOnline  []string
	CORSOriginsOffline []string

	// EmptyKeyPolicy decides what grading does with an assessment that has no MCQ items:
	// "reject" fails the submission, "unapproved" records nothing and reports approved=false.
	EmptyKeyPolicy string

	Logging Logging
}

// Logging is handed to logging.New once at start.
type Logging struct {
	Level  string // debug|info|warn|error
	Format string // text|json
}

// CORSOrigins returns the allowed origins for the configured mode.
func (c Config) CORSOrigins() []string {
	if c.Mode == ModeOnline {
		return c.CORSOriginsOnline
	}
	return c.CORSOriginsOffline
}

// FromEnv reads an optional .env file and then the process environment.
func FromEnv() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("MODE", string(ModeOffline))
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("SITE_ID", "local")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("DB_TIMEOUT", "5s")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("AUTH_HMAC_SECRET", "supersecret-dev-key")
	v.SetDefault("TOKEN_TTL", "8h")
	v.SetDefault("CORS_ORIGINS_ONLINE", "https://lms.mindengage.ai")
	v.SetDefault("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:3010")
	v.SetDefault("EMPTY_KEY_POLICY", "reject")
	v.SetDefault("LOG_LEVEL", "info")
}

func fromViper(v *viper.Viper) Config {
	mode := Mode(strings.ToLower(v.GetString("MODE")))
	if mode != ModeOnline {
		mode = ModeOffline
	}
	logFormat := v.GetString("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "text"
		if mode == ModeOnline {
			logFormat = "json"
		}
	}
	return Config{
		Mode:               mode,
		HTTPAddr:           v.GetString("HTTP_ADDR"),
		PublicURL:          v.GetString("PUBLIC_URL"),
		SiteID:             v.GetString("SITE_ID"),
		DBDriver:           v.GetString("DB_DRIVER"),
		DBDSN:              v.GetString("DB_DSN"),
		DBTimeout:          positive(v.GetDuration("DB_TIMEOUT"), 5*time.Second),
		RequestTimeout:     positive(v.GetDuration("REQUEST_TIMEOUT"), 30*time.Second),
		AuthSecret:         v.GetString("AUTH_HMAC_SECRET"),
		TokenTTL:           v.GetDuration("TOKEN_TTL"),
		CORSOriginsOnline:  csv(v.GetString("CORS_ORIGINS_ONLINE")),
		CORSOriginsOffline: csv(v.GetString("CORS_ORIGINS_OFFLINE")),
		EmptyKeyPolicy:     strings.ToLower(v.GetString("EMPTY_KEY_POLICY")),
		Logging: Logging{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(logFormat),
		},
	}
}

// positive returns def for zero, negative or unparsable durations.
func positive(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

func csv(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
