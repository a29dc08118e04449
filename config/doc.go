// Package config loads recs configuration.
//
// Values come from a YAML file, then a .env file, then the process
// environment. Environment variables carry the RECS_ prefix followed by
// the key path with dots as underscores:
//
//	RECS_LOGGING_LEVEL=debug
//	RECS_SHELL_GRACE_PERIOD=2s
//
// The config file is RECS_CONFIG when set, otherwise the first of
// ./recs.yml, ./config.yml, ./config/config.yml and
// ~/.config/recs/config.yml that exists.
//
//	var cfg config.Config
//	if err := config.Load("recs", &cfg); err != nil { ... }
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil { ... }
package config
