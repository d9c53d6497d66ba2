// Package services defines shared utilities consumed by the router, the
// bulk exchange, and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp batch identifiers and stage names for
//     logging.
//   - Structured error markers plus the Wrap helper and Kind classifier so
//     per-file failures are reported uniformly.
package services
