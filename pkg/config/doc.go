// Package config loads environment-driven configuration structs.
//
// Configuration is declared as plain structs with `env` tags (parsed by
// caarlos0/env) and loaded with Load or MustLoad. A .env file in the working
// directory is picked up automatically on first use, which keeps local
// development setups out of the shell profile. Parsed configurations are
// cached per type for the lifetime of the process.
package config
