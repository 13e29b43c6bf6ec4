package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mastereducationkz/lms-front-sub003/internal/flagx"
	"github.com/mastereducationkz/lms-front-sub003/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify timeouts either as strings like "15s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	BaseURL              string         `json:"base_url"`
	RequestTimeout       timex.Duration `json:"request_timeout"`
	CredentialDB         string         `json:"credential_db"`
	LegacyCredentialFile string         `json:"legacy_credential_file"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c/-config flags. Absent flag means no JSON is loaded. Read or
// unmarshal errors panic (caller may recover if desired). Only fields
// present in the file override the current values.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.CredentialDB != "" {
		cfg.CredentialDB = jc.CredentialDB
	}
	if jc.LegacyCredentialFile != "" {
		cfg.LegacyCredentialFile = jc.LegacyCredentialFile
	}
}
