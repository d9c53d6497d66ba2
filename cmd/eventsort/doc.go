// Command eventsort maintains the event catalog and sorts media files from an
// inbox directory into a dated library tree.
//
// Catalog commands (person, event, subevent, participant, artist) edit the
// SQLite catalog; check reports the warning code a draft would produce
// without saving it; sort runs one routing batch and prints its report.
package main
