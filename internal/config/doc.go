// Package config loads, normalizes, and validates progdoc configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: the source database path, the output directory for the
// generated document, extraction locale and timezone, and log settings.
//
// Always obtain settings through this package so downstream code receives
// expanded paths and clear validation errors.
package config
