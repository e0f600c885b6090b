// Package config loads typed configuration from the environment.
//
// It wraps github.com/caarlos0/env/v11 for struct-tag parsing and
// github.com/joho/godotenv for optional .env files. Each package of the
// engine declares its own Config struct (pg.Config, httpserver.Config,
// trigger.Config, ...) and the binaries load them at startup:
//
//	var dbCfg pg.Config
//	config.MustLoad(&dbCfg)
//
// Parsed values are cached per type, so components that ask for the same
// configuration share a single parse. Tests call Reset after changing the
// environment with t.Setenv.
package config
