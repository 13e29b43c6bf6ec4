package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080/api", c.BaseURL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, "credentials.db", c.CredentialDB)
	assert.Equal(t, "auth.json", c.LegacyCredentialFile)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8080/api", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("LMS_API_URL", "https://lms.mastereducation.kz/api")
	t.Setenv("LMS_REQUEST_TIMEOUT", "30s")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "https://lms.mastereducation.kz/api", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "credentials.db", cfg.CredentialDB)
}
