// Package config loads, normalizes, and validates gltfix configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads the TOML file at ~/.config/gltfix/config.toml or an
// explicit --config path. Always obtain settings through this package so
// downstream code receives sanitized paths and validated knobs.
package config
