// Package config loads, normalizes, and validates montage's TOML
// configuration.
//
// Load resolves the active config file (explicit path, then
// ~/.config/montage/config.toml, then ./montage.toml), decodes it over the
// repository defaults, expands ~ in every path field, and validates the
// result. Prefer these constructors over ad-hoc decoding so every component
// sees the same expansion and defaulting rules.
package config
