package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"meta-ads-proxy/internal/config/configs"
)

// Config aggregates all configuration sections for the proxy. Fields are
// populated from environment variables via caarlos0/env; nested structs carry
// an envPrefix so their fields parse with the given prefix. Use Load to
// construct a Config.
type Config struct {
	// Env names the deployment environment (e.g. prod, dev). Informational.
	Env string `env:"ENV" envDefault:"prod"`

	// HTTP configures the listening server. Variables prefixed HTTP_.
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger. Variables prefixed LOG_.
	Log configs.Logger `envPrefix:"LOG_"`

	// Meta configures the OAuth application and Graph API endpoints.
	// Variables prefixed META_.
	Meta configs.Meta `envPrefix:"META_"`

	// Psql configures the optional PostgreSQL session store. Variables
	// prefixed PSQL_.
	Psql configs.Postgres `envPrefix:"PSQL_"`
}

// Load reads configuration from the environment into a Config. A local .env
// file is applied first when present; real environment variables take
// precedence over values from the file.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
