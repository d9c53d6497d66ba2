// Package logging assembles the slog loggers used across eventsort.
//
// Console output is one line per record with the component up front; JSON
// output keeps naive timestamps in storage layout and reports durations in
// milliseconds. Loggers built from configuration also append to a daily log
// file, and PruneLogs drops files past the retention window.
package logging
