package cliconfig

import "os"

// Environment variables read by ApplyEnvConfig.
const (
	EnvRoot          = "OPSTATE_ROOT"
	EnvLogLevel      = "OPSTATE_LOG_LEVEL"
	EnvLogFormat     = "OPSTATE_LOG_FORMAT"
	EnvWatchDebounce = "OPSTATE_WATCH_DEBOUNCE"
)

// ApplyEnvConfig applies OPSTATE_* environment variables to cfg.
// Env overrides file config but not flags that were set explicitly.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("root", os.Getenv(EnvRoot), &cfg.Root)
	s.setString("log-level", os.Getenv(EnvLogLevel), &cfg.LogLevel)
	s.setString("log-format", os.Getenv(EnvLogFormat), &cfg.LogFormat)

	return s.setDuration("debounce", os.Getenv(EnvWatchDebounce), &cfg.WatchDebounce)
}
