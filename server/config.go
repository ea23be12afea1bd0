package server

import (
	"net"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process-wide configuration: set once at server start,
// read-only thereafter.
type Config struct {
	Host  string `env:"SKELETO_HOST" envDefault:"127.0.0.1"`
	Port  int    `env:"SKELETO_PORT" envDefault:"8080"`
	Debug bool   `env:"SKELETO_DEBUG" envDefault:"false"`

	// MaxBodyBytes is the request body size limit. Enforcement happens in
	// the bodylimit middleware; zero disables the limit.
	MaxBodyBytes int `env:"SKELETO_MAX_BODY_BYTES" envDefault:"1048576"`

	// RateLimitPerSecond is the steady per-client request rate, enforced
	// by the ratelimit middleware; zero disables the limit.
	RateLimitPerSecond int `env:"SKELETO_RATE_LIMIT_RPS" envDefault:"100"`

	// RateLimitBurst is how many requests a client may burst above the
	// steady rate.
	RateLimitBurst int `env:"SKELETO_RATE_LIMIT_BURST" envDefault:"20"`

	// TrustedOrigins feeds the cross-origin protection middleware.
	TrustedOrigins []string `env:"SKELETO_TRUSTED_ORIGINS" envSeparator:","`

	// AccessCode is the admin access code, regenerated once per server
	// run. Never read from the environment.
	AccessCode string `env:"-"`
}

// Addr returns the host:port the server binds to.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// DefaultConfig returns a Config with the default values.
func DefaultConfig() Config {
	return Config{
		Host:               "127.0.0.1",
		Port:               8080,
		MaxBodyBytes:       1 << 20,
		RateLimitPerSecond: 100,
		RateLimitBurst:     20,
		AccessCode:         NewAccessCode(),
	}
}

// LoadConfig reads the configuration from the environment, loading a .env
// file first when one is present.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	cfg.AccessCode = NewAccessCode()
	return cfg, nil
}
