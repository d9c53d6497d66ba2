// Package router binds media files to catalog events and files them into
// the library tree.
//
// For each source file the router resolves a timestamp (filename signature,
// EXIF, or both), looks up the events containing it, optionally applies an
// artist's device time shift, renders the output filename, resolves name
// collisions, and moves or copies the file. Every file ends in exactly one
// Outcome; per-file failures are reported as IoError and never stop the
// batch. Only an unusable source directory is fatal, and it is reported
// before any file is touched.
//
// Batches run sequentially on one goroutine. Callers poll Progress for
// current/total/finished and Wait for the Report. Cancelling the context
// stops the batch between files.
//
// Destination layout:
//
//	<target>/misc/<original name>                unparsed, process_unmatched on
//	<target>/<year>/misc/<new name>              no event contains the time
//	<target>/<year>/<MM>_<event title>/<new name>
//	.../no_artist/<new name>                     artist required but not found
package router
