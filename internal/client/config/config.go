package config

import (
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the LMS client.
//
// Fields:
//   - BaseURL: root of the REST API (scheme optional; production hosts are
//     upgraded to https by netx.NormalizeBaseURL).
//   - RequestTimeout: overall per-request timeout, refresh call included.
//   - CredentialDB: path of the SQLite credential database.
//   - LegacyCredentialFile: path of the legacy JSON credentials file, read
//     once for migration.
type Config struct {
	BaseURL              string        `env:"LMS_API_URL"`
	RequestTimeout       time.Duration `env:"LMS_REQUEST_TIMEOUT"`
	CredentialDB         string        `env:"LMS_CREDENTIAL_DB"`
	LegacyCredentialFile string        `env:"LMS_LEGACY_CREDENTIAL_FILE"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080/api"
	c.RequestTimeout = 15 * time.Second
	c.CredentialDB = "credentials.db"
	c.LegacyCredentialFile = "auth.json"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file is given), environment variables, and
// command-line flags. Later sources take precedence over earlier ones.
// A .env file in the working directory is loaded first so local overrides
// reach the environment stage.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
