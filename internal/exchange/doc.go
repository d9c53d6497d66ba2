// Package exchange moves catalog records in and out of files.
//
// A Bundle is the file-level form of the catalog: events with their
// subevents and participants, artists, and standalone persons. Bundles are
// read from JSON, YAML, or iCalendar files and written as JSON or YAML.
// Apply inserts a bundle through the catalog so every record passes the same
// validation an interactive edit does; rejected records are collected in the
// Summary instead of aborting the import.
package exchange
