// Package catalog persists persons, events, subevents, participants, and
// artists in SQLite and enforces their temporal invariants.
//
// Every mutation runs the same read-only check that the Check* methods
// expose, inside one transaction and under a single-writer mutex, so a
// rejected write never leaves partial rows behind and overlap scans are never
// observed mid-update. A lock file beside the database keeps a second process
// from writing to the same catalog.
//
// Validation failures surface as *ValidationError values that wrap one of the
// exported sentinels (ErrDuplicateName, ErrOverlapConflict, ...). They are
// recoverable: callers map them to warning codes instead of aborting.
//
// Instants are stored as naive "2006-01-02 15:04:05.000" text so SQL range
// predicates compare chronologically. The schema version lives in
// PRAGMA user_version.
package catalog
