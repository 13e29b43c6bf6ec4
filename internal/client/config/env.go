package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays Config with values from the environment, per the env
// tags on Config. Unset variables leave the current values untouched.
func parseEnv(cfg *Config) {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}
