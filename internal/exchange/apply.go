package exchange

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventsort/internal/catalog"
	"eventsort/internal/interval"
	"eventsort/internal/validation"
)

// Writer is the catalog surface Apply inserts through.
type Writer interface {
	GetOrCreatePerson(ctx context.Context, name string) (catalog.Person, error)
	InsertEvent(ctx context.Context, title string, iv interval.Interval) (catalog.Event, error)
	InsertSubevent(ctx context.Context, eventID int64, title string, iv interval.Interval) (catalog.Subevent, error)
	AddParticipant(ctx context.Context, personName string, eventID int64, iv interval.Interval) (catalog.Participant, error)
	InsertArtist(ctx context.Context, a catalog.Artist) (catalog.Artist, error)
}

// Reader is the catalog surface Collect reads from.
type Reader interface {
	ListPersons(ctx context.Context) ([]catalog.Person, error)
	ListEvents(ctx context.Context) ([]catalog.Event, error)
	ListSubevents(ctx context.Context, eventID int64) ([]catalog.Subevent, error)
	ListParticipants(ctx context.Context, eventID int64) ([]catalog.Participant, error)
	ListArtists(ctx context.Context) ([]catalog.Artist, error)
}

// Rejection is one record the catalog refused.
type Rejection struct {
	Entity string
	Label  string
	Code   validation.Code
	Reason string
}

// Summary counts what Apply inserted and lists what it rejected.
type Summary struct {
	Persons      int
	Events       int
	Subevents    int
	Participants int
	Artists      int
	Rejected     []Rejection
}

// Imported returns the number of inserted records.
func (s Summary) Imported() int {
	return s.Persons + s.Events + s.Subevents + s.Participants + s.Artists
}

// Apply inserts bundle into the catalog in file order: persons, then each
// event followed by its children, then artists. Records failing validation
// are recorded in Summary.Rejected; children of a rejected event are
// rejected with it. Any other error stops the import and is returned with
// the partial summary.
func Apply(ctx context.Context, store Writer, bundle Bundle) (Summary, error) {
	var sum Summary

	for _, name := range bundle.Persons {
		if _, err := store.GetOrCreatePerson(ctx, name); err != nil {
			if err := sum.reject("person", name, err); err != nil {
				return sum, err
			}
			continue
		}
		sum.Persons++
	}

	for _, rec := range bundle.Events {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if err := sum.applyEvent(ctx, store, rec); err != nil {
			return sum, err
		}
	}

	for _, rec := range bundle.Artists {
		label := fmt.Sprintf("%s %s %s", rec.Person, rec.Make, rec.Model)
		iv, err := parseBounds(rec.Start, rec.End)
		if err != nil {
			sum.rejectParse("artist", label, err)
			continue
		}
		if _, err := store.InsertArtist(ctx, catalog.Artist{
			PersonName: rec.Person,
			Make:       rec.Make,
			Model:      rec.Model,
			Interval:   iv,
			Shift:      rec.Shift,
		}); err != nil {
			if err := sum.reject("artist", label, err); err != nil {
				return sum, err
			}
			continue
		}
		sum.Artists++
	}
	return sum, nil
}

func (s *Summary) applyEvent(ctx context.Context, store Writer, rec EventRecord) error {
	iv, err := parseBounds(rec.Start, rec.End)
	if err != nil {
		s.rejectParse("event", rec.Title, err)
		s.rejectChildren(rec)
		return nil
	}
	event, err := store.InsertEvent(ctx, rec.Title, iv)
	if err != nil {
		if err := s.reject("event", rec.Title, err); err != nil {
			return err
		}
		s.rejectChildren(rec)
		return nil
	}
	s.Events++

	for _, sub := range rec.Subevents {
		label := rec.Title + " / " + sub.Title
		iv, err := parseBounds(sub.Start, sub.End)
		if err != nil {
			s.rejectParse("subevent", label, err)
			continue
		}
		if _, err := store.InsertSubevent(ctx, event.ID, sub.Title, iv); err != nil {
			if err := s.reject("subevent", label, err); err != nil {
				return err
			}
			continue
		}
		s.Subevents++
	}
	for _, part := range rec.Participants {
		label := rec.Title + " / " + part.Person
		iv, err := parseBounds(part.Start, part.End)
		if err != nil {
			s.rejectParse("participant", label, err)
			continue
		}
		if _, err := store.AddParticipant(ctx, part.Person, event.ID, iv); err != nil {
			if err := s.reject("participant", label, err); err != nil {
				return err
			}
			continue
		}
		s.Participants++
	}
	return nil
}

// reject records err when it is a validation failure and returns it
// otherwise.
func (s *Summary) reject(entity, label string, err error) error {
	code, ok := validation.CodeFor(err)
	if !ok {
		return fmt.Errorf("import %s %q: %w", entity, label, err)
	}
	s.Rejected = append(s.Rejected, Rejection{Entity: entity, Label: label, Code: code, Reason: err.Error()})
	return nil
}

func (s *Summary) rejectParse(entity, label string, err error) {
	s.Rejected = append(s.Rejected, Rejection{Entity: entity, Label: label, Code: validation.MissingData, Reason: err.Error()})
}

func (s *Summary) rejectChildren(rec EventRecord) {
	for _, sub := range rec.Subevents {
		s.Rejected = append(s.Rejected, Rejection{
			Entity: "subevent", Label: rec.Title + " / " + sub.Title,
			Code: validation.MissingData, Reason: "parent event rejected",
		})
	}
	for _, part := range rec.Participants {
		s.Rejected = append(s.Rejected, Rejection{
			Entity: "participant", Label: rec.Title + " / " + part.Person,
			Code: validation.MissingData, Reason: "parent event rejected",
		})
	}
}

// parseBounds leaves a blank bound zero so the catalog reports it as
// missing data.
func parseBounds(start, end string) (interval.Interval, error) {
	var iv interval.Interval
	var err error
	if strings.TrimSpace(start) != "" {
		if iv.Start, err = interval.ParseStart(start); err != nil {
			return iv, err
		}
	}
	if strings.TrimSpace(end) != "" {
		if iv.End, err = interval.ParseEnd(end); err != nil {
			return iv, err
		}
	}
	return iv, nil
}

// Collect reads the whole catalog into a bundle.
func Collect(ctx context.Context, store Reader) (Bundle, error) {
	var bundle Bundle

	persons, err := store.ListPersons(ctx)
	if err != nil {
		return Bundle{}, err
	}
	for _, p := range persons {
		bundle.Persons = append(bundle.Persons, p.Name)
	}

	events, err := store.ListEvents(ctx)
	if err != nil {
		return Bundle{}, err
	}
	for _, ev := range events {
		rec := EventRecord{Title: ev.Title, Start: stamp(ev.Interval.Start), End: stamp(ev.Interval.End)}
		subs, err := store.ListSubevents(ctx, ev.ID)
		if err != nil {
			return Bundle{}, err
		}
		for _, sub := range subs {
			rec.Subevents = append(rec.Subevents, SubeventRecord{
				Title: sub.Title, Start: stamp(sub.Interval.Start), End: stamp(sub.Interval.End),
			})
		}
		parts, err := store.ListParticipants(ctx, ev.ID)
		if err != nil {
			return Bundle{}, err
		}
		for _, part := range parts {
			rec.Participants = append(rec.Participants, ParticipantRecord{
				Person: part.PersonName, Start: stamp(part.Interval.Start), End: stamp(part.Interval.End),
			})
		}
		bundle.Events = append(bundle.Events, rec)
	}

	artists, err := store.ListArtists(ctx)
	if err != nil {
		return Bundle{}, err
	}
	for _, a := range artists {
		bundle.Artists = append(bundle.Artists, ArtistRecord{
			Person: a.PersonName,
			Make:   a.Make,
			Model:  a.Model,
			Start:  stamp(a.Interval.Start),
			End:    stamp(a.Interval.End),
			Shift:  a.Shift,
		})
	}
	return bundle, nil
}

func stamp(t time.Time) string {
	return interval.Format(t)
}
