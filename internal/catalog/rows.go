package catalog

import (
	"fmt"
	"strings"

	"eventsort/internal/interval"
)

type personRow struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type eventRow struct {
	ID    int64  `db:"id"`
	Title string `db:"title"`
	Start string `db:"start_at"`
	End   string `db:"end_at"`
}

type subeventRow struct {
	ID      int64  `db:"id"`
	EventID int64  `db:"event_id"`
	Title   string `db:"title"`
	Start   string `db:"start_at"`
	End     string `db:"end_at"`
}

type participantRow struct {
	ID         int64  `db:"id"`
	EventID    int64  `db:"event_id"`
	PersonID   int64  `db:"person_id"`
	PersonName string `db:"person_name"`
	Start      string `db:"start_at"`
	End        string `db:"end_at"`
}

type artistRow struct {
	ID           int64  `db:"id"`
	PersonID     int64  `db:"person_id"`
	PersonName   string `db:"person_name"`
	Make         string `db:"make"`
	Model        string `db:"model"`
	Start        string `db:"start_at"`
	End          string `db:"end_at"`
	ShiftDays    int    `db:"shift_days"`
	ShiftHours   int    `db:"shift_hours"`
	ShiftMinutes int    `db:"shift_minutes"`
	ShiftSeconds int    `db:"shift_seconds"`
}

const (
	eventColumns       = "id, title, start_at, end_at"
	subeventColumns    = "id, event_id, title, start_at, end_at"
	participantColumns = "p.id, p.event_id, p.person_id, pe.name AS person_name, p.start_at, p.end_at"
	artistColumns      = "a.id, a.person_id, pe.name AS person_name, a.make, a.model, a.start_at, a.end_at, a.shift_days, a.shift_hours, a.shift_minutes, a.shift_seconds"
)

func parseInterval(start, end string) (interval.Interval, error) {
	s, err := interval.Parse(start)
	if err != nil {
		return interval.Interval{}, fmt.Errorf("parse stored start %q: %w", start, err)
	}
	e, err := interval.Parse(end)
	if err != nil {
		return interval.Interval{}, fmt.Errorf("parse stored end %q: %w", end, err)
	}
	return interval.Interval{Start: s, End: e}, nil
}

func (r eventRow) toEvent() (Event, error) {
	iv, err := parseInterval(r.Start, r.End)
	if err != nil {
		return Event{}, err
	}
	return Event{ID: r.ID, Title: r.Title, Interval: iv}, nil
}

func (r subeventRow) toSubevent() (Subevent, error) {
	iv, err := parseInterval(r.Start, r.End)
	if err != nil {
		return Subevent{}, err
	}
	return Subevent{ID: r.ID, EventID: r.EventID, Title: r.Title, Interval: iv}, nil
}

func (r participantRow) toParticipant() (Participant, error) {
	iv, err := parseInterval(r.Start, r.End)
	if err != nil {
		return Participant{}, err
	}
	return Participant{ID: r.ID, EventID: r.EventID, PersonID: r.PersonID, PersonName: r.PersonName, Interval: iv}, nil
}

func (r artistRow) toArtist() (Artist, error) {
	iv, err := parseInterval(r.Start, r.End)
	if err != nil {
		return Artist{}, err
	}
	return Artist{
		ID:         r.ID,
		PersonID:   r.PersonID,
		PersonName: r.PersonName,
		Make:       r.Make,
		Model:      r.Model,
		Interval:   iv,
		Shift: TimeShift{
			Days:    r.ShiftDays,
			Hours:   r.ShiftHours,
			Minutes: r.ShiftMinutes,
			Seconds: r.ShiftSeconds,
		},
	}, nil
}

func convertRows[R any, T any](rows []R, convert func(R) (T, error)) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		item, err := convert(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func normalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

func normalizeInterval(iv interval.Interval) interval.Interval {
	return interval.Interval{Start: interval.Stored(iv.Start), End: interval.Stored(iv.End)}
}
