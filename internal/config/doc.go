// Package config loads and validates the bookvert configuration file.
//
// Configuration is TOML. Defaults cover every key, so running without a
// config file works; a file at ~/.config/bookvert/config.toml or
// bookvert.toml in the working directory overrides them.
package config
