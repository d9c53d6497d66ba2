package validation

import (
	"context"
	"strings"
	"time"

	"eventsort/internal/catalog"
	"eventsort/internal/interval"
)

// Checker is the read-only projection of catalog mutations.
type Checker interface {
	CheckPerson(ctx context.Context, name string) error
	CheckEvent(ctx context.Context, title string, iv interval.Interval) error
	CheckSubevent(ctx context.Context, eventID int64, title string, iv interval.Interval) error
	CheckParticipant(ctx context.Context, personName string, eventID int64, iv interval.Interval) error
	CheckArtist(ctx context.Context, a catalog.Artist) error
}

// PersonDraft is the unsaved state of a person form.
type PersonDraft struct {
	Name string
}

// EventDraft is the unsaved state of an event form. Zero times are missing.
type EventDraft struct {
	Title string
	Start time.Time
	End   time.Time
}

// SubeventDraft is the unsaved state of a subevent row.
type SubeventDraft struct {
	EventID int64
	Title   string
	Start   time.Time
	End     time.Time
}

// ParticipantDraft is the unsaved state of a participant row.
type ParticipantDraft struct {
	EventID    int64
	PersonName string
	Start      time.Time
	End        time.Time
}

// ArtistDraft is the unsaved state of an artist form. ID is set when the
// form edits an existing row.
type ArtistDraft struct {
	ID         int64
	PersonName string
	Make       string
	Model      string
	Start      time.Time
	End        time.Time
	Shift      catalog.TimeShift
}

// Artist converts the draft into the record the catalog stores.
func (d ArtistDraft) Artist() catalog.Artist {
	return catalog.Artist{
		ID:         d.ID,
		PersonName: d.PersonName,
		Make:       d.Make,
		Model:      d.Model,
		Interval:   interval.New(d.Start, d.End),
		Shift:      d.Shift,
	}
}

// Validator computes warning codes against a catalog.
type Validator struct {
	checker Checker
}

// New returns a Validator backed by checker.
func New(checker Checker) *Validator {
	return &Validator{checker: checker}
}

// Person validates a person draft.
func (v *Validator) Person(ctx context.Context, d PersonDraft) (Code, error) {
	if blank(d.Name) {
		return MissingData, nil
	}
	return v.resolve(v.checker.CheckPerson(ctx, d.Name))
}

// Event validates an event draft.
func (v *Validator) Event(ctx context.Context, d EventDraft) (Code, error) {
	if code, done := local(blank(d.Title), d.Start, d.End); done {
		return code, nil
	}
	return v.resolve(v.checker.CheckEvent(ctx, d.Title, interval.New(d.Start, d.End)))
}

// Subevent validates a subevent draft against its event and siblings.
func (v *Validator) Subevent(ctx context.Context, d SubeventDraft) (Code, error) {
	if code, done := local(blank(d.Title) || d.EventID == 0, d.Start, d.End); done {
		return code, nil
	}
	return v.resolve(v.checker.CheckSubevent(ctx, d.EventID, d.Title, interval.New(d.Start, d.End)))
}

// Participant validates a participant draft against its event and the
// person's other attendances.
func (v *Validator) Participant(ctx context.Context, d ParticipantDraft) (Code, error) {
	if code, done := local(blank(d.PersonName) || d.EventID == 0, d.Start, d.End); done {
		return code, nil
	}
	return v.resolve(v.checker.CheckParticipant(ctx, d.PersonName, d.EventID, interval.New(d.Start, d.End)))
}

// Artist validates an artist draft against other windows of the device.
func (v *Validator) Artist(ctx context.Context, d ArtistDraft) (Code, error) {
	if code, done := local(blank(d.PersonName) || blank(d.Make) || blank(d.Model), d.Start, d.End); done {
		return code, nil
	}
	return v.resolve(v.checker.CheckArtist(ctx, d.Artist()))
}

func (v *Validator) resolve(err error) (Code, error) {
	if code, ok := CodeFor(err); ok {
		return code, nil
	}
	return "", err
}

// local applies the missing-field and swap checks that need no catalog.
func local(missing bool, start, end time.Time) (Code, bool) {
	if missing || start.IsZero() || end.IsZero() {
		return MissingData, true
	}
	if interval.ClassifySwap(interval.Stored(start), interval.Stored(end)) == interval.Swapped {
		return DateSwap, true
	}
	return NoWarning, false
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
