// Package config loads and merges prcritic configuration from multiple
// sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (PRCRITIC_PROVIDER, PRCRITIC_MODEL, etc.)
//  3. Config file ($XDG_CONFIG_HOME/prcritic/config.json)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config] and [SetField] to update a single
// key in the config file.
package config
