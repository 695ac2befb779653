// Package config loads and merges loupe configuration from the config file,
// environment variables, and CLI flag overrides.
package config
