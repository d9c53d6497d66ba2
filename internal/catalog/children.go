package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"eventsort/internal/interval"
)

// InsertSubevent adds a subevent inside its event without overlapping any
// sibling.
func (s *Store) InsertSubevent(ctx context.Context, eventID int64, title string, iv interval.Interval) (Subevent, error) {
	var sub Subevent
	err := s.write(ctx, func(tx *sqlx.Tx) error {
		if err := checkSubevent(ctx, tx, eventID, title, iv); err != nil {
			return err
		}
		iv = normalizeInterval(iv)
		title = strings.TrimSpace(title)
		res, err := tx.ExecContext(ctx,
			`INSERT INTO subevents (event_id, title, start_at, end_at) VALUES (?, ?, ?, ?)`,
			eventID, title, interval.Format(iv.Start), interval.Format(iv.End))
		if err != nil {
			return fmt.Errorf("insert subevent: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		sub = Subevent{ID: id, EventID: eventID, Title: title, Interval: iv}
		return nil
	})
	return sub, err
}

// ListSubevents returns the subevents of an event ordered by start.
func (s *Store) ListSubevents(ctx context.Context, eventID int64) ([]Subevent, error) {
	var rows []subeventRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT `+subeventColumns+` FROM subevents WHERE event_id = ? ORDER BY start_at, id`, eventID); err != nil {
		return nil, fmt.Errorf("list subevents: %w", err)
	}
	return convertRows(rows, subeventRow.toSubevent)
}

// DeleteSubevent removes one subevent.
func (s *Store) DeleteSubevent(ctx context.Context, id int64) error {
	return s.write(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM subevents WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete subevent: %w", err)
		}
		return expectAffected(res, "subevent", id)
	})
}

// InsertParticipant records an existing person attending an event. The
// person may not attend any other overlapping interval, in any event.
func (s *Store) InsertParticipant(ctx context.Context, personID, eventID int64, iv interval.Interval) (Participant, error) {
	return s.addParticipant(ctx, personID, "", eventID, iv)
}

// AddParticipant is InsertParticipant keyed by person name. An unknown name
// creates the person in the same transaction.
func (s *Store) AddParticipant(ctx context.Context, personName string, eventID int64, iv interval.Interval) (Participant, error) {
	return s.addParticipant(ctx, 0, personName, eventID, iv)
}

func (s *Store) addParticipant(ctx context.Context, personID int64, personName string, eventID int64, iv interval.Interval) (Participant, error) {
	var participant Participant
	err := s.write(ctx, func(tx *sqlx.Tx) error {
		existingID, err := resolvePerson(ctx, tx, personID, personName, false)
		if err != nil {
			return err
		}
		if err := checkParticipant(ctx, tx, existingID, eventID, iv); err != nil {
			return err
		}
		id, err := resolvePerson(ctx, tx, personID, personName, true)
		if err != nil {
			return err
		}
		iv = normalizeInterval(iv)
		res, err := tx.ExecContext(ctx,
			`INSERT INTO participants (event_id, person_id, start_at, end_at) VALUES (?, ?, ?, ?)`,
			eventID, id, interval.Format(iv.Start), interval.Format(iv.End))
		if err != nil {
			return fmt.Errorf("insert participant: %w", err)
		}
		rowID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		var name string
		if err := tx.GetContext(ctx, &name, `SELECT name FROM persons WHERE id = ?`, id); err != nil {
			return fmt.Errorf("load person name: %w", err)
		}
		participant = Participant{ID: rowID, EventID: eventID, PersonID: id, PersonName: name, Interval: iv}
		return nil
	})
	return participant, err
}

// ListParticipants returns the participants of an event ordered by start.
func (s *Store) ListParticipants(ctx context.Context, eventID int64) ([]Participant, error) {
	var rows []participantRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT `+participantColumns+`
         FROM participants p JOIN persons pe ON pe.id = p.person_id
         WHERE p.event_id = ? ORDER BY p.start_at, p.id`, eventID); err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return convertRows(rows, participantRow.toParticipant)
}

// DeleteParticipant removes one participant row. The person is kept.
func (s *Store) DeleteParticipant(ctx context.Context, id int64) error {
	return s.write(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM participants WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete participant: %w", err)
		}
		return expectAffected(res, "participant", id)
	})
}
