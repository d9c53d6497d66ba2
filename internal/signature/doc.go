// Package signature recognizes capture timestamps embedded in media filenames
// and renders the canonical names written into the library.
//
// Recognition runs an ordered recognizer table against the decoration-stripped
// base name (duplicate suffixes such as "_1" or " - Copy" are removed first);
// the first pattern that matches and parses wins. The table order matters
// because some forms are prefixes of others. Output signatures name the
// recognizer that reads them back, so a rendered name always re-recognizes to
// the same instant at the precision the form keeps.
package signature
