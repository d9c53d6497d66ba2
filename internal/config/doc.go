// Package config loads, normalizes, and validates eventsort configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// EVENTSORT_SOURCE_DIR. The Config type centralizes every knob the CLI and the
// router need: where the catalog lives, which directories to sort between, and
// the sorting policy switches (input/output signatures, unmatched handling,
// artist requirement, copy versus move).
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical signature names, and clear validation errors.
package config
