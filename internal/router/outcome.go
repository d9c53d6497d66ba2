package router

import (
	"time"
)

// Outcome is the terminal classification of one routed file.
type Outcome string

const (
	Moved                Outcome = "MOVED"
	Copied               Outcome = "COPIED"
	SkippedUnmatched     Outcome = "UNPARSED_SKIPPED"
	SkippedNameCollision Outcome = "NAME_COLLISION"
	RoutedToMisc         Outcome = "ROUTED_TO_MISC"
	RoutedNoArtist       Outcome = "ROUTED_NO_ARTIST"
	IoError              Outcome = "IO_ERROR"
)

// Outcomes lists every outcome in report order.
func Outcomes() []Outcome {
	return []Outcome{Moved, Copied, RoutedToMisc, RoutedNoArtist, SkippedUnmatched, SkippedNameCollision, IoError}
}

// Result describes what happened to one source file.
type Result struct {
	Source      string
	Destination string
	Outcome     Outcome
	// Time is the resolved timestamp after any artist shift. Zero when the
	// file was unparsed.
	Time time.Time
	// TimeSource is "name:<signature>" or "exif".
	TimeSource string
	EventID    int64
	EventTitle string
	ArtistID   int64
	// Transferred is "move" or "copy" when the file was written.
	Transferred string
	Reason      string
	// ErrorKind is the services.Kind of the failure for IoError results.
	ErrorKind string
	Warning   string
}

// Report summarizes a finished batch.
type Report struct {
	ID         string
	Source     string
	Target     string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []Result
	Counts     map[Outcome]int
	Warnings   []string
	// Canceled is set when the context ended the batch early. Files after
	// the last result were not processed.
	Canceled bool
	DryRun   bool
}

// Count returns the number of results with outcome.
func (r Report) Count(outcome Outcome) int {
	return r.Counts[outcome]
}

// Failed reports whether any file ended in IoError.
func (r Report) Failed() bool {
	return r.Counts[IoError] > 0
}

func (r *Report) add(res Result) {
	if r.Counts == nil {
		r.Counts = make(map[Outcome]int)
	}
	r.Results = append(r.Results, res)
	r.Counts[res.Outcome]++
	if res.Warning != "" {
		r.Warnings = append(r.Warnings, res.Warning)
	}
}
