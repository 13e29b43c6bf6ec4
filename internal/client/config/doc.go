// Package config loads runtime configuration for the LMS client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv); a .env file in the working
//     directory is loaded first via godotenv.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the LMS API
//	-t int      request timeout (seconds)
//	-d string   path of the credential database
//
// # JSON schema
//
// The JSON loader uses timex.Duration for timeouts, so values can be either
// strings like "15s" or integer nanoseconds:
//
//	{
//	  "base_url": "https://lms.mastereducation.kz/api",
//	  "request_timeout": "15s",
//	  "credential_db": "credentials.db",
//	  "legacy_credential_file": "auth.json"
//	}
package config
