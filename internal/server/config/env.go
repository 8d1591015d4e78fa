package config

import "github.com/caarlos0/env/v11"

// EnvPrefix namespaces every environment variable read by the server,
// e.g. TASKMASTER_DATABASE_DSN.
const EnvPrefix = "TASKMASTER_"

// parseEnv overlays values from TASKMASTER_* environment variables.
// Unset variables leave the current value untouched.
func parseEnv(config *Config) {
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(err)
	}
}
