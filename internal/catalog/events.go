package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"eventsort/internal/interval"
)

// InsertEvent creates an event. Children are validated when they are added.
func (s *Store) InsertEvent(ctx context.Context, title string, iv interval.Interval) (Event, error) {
	var event Event
	err := s.write(ctx, func(tx *sqlx.Tx) error {
		if err := checkEvent(title, iv); err != nil {
			return err
		}
		iv = normalizeInterval(iv)
		title = strings.TrimSpace(title)
		res, err := tx.ExecContext(ctx,
			`INSERT INTO events (title, start_at, end_at) VALUES (?, ?, ?)`,
			title, interval.Format(iv.Start), interval.Format(iv.End))
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		event = Event{ID: id, Title: title, Interval: iv}
		return nil
	})
	return event, err
}

// UpdateEvent replaces the title and interval of an event. Existing
// subevents and participants are not re-validated against the new bounds.
func (s *Store) UpdateEvent(ctx context.Context, id int64, title string, iv interval.Interval) (Event, error) {
	var event Event
	err := s.write(ctx, func(tx *sqlx.Tx) error {
		if err := requireRow(ctx, tx, "events", id); err != nil {
			return err
		}
		if err := checkEvent(title, iv); err != nil {
			return err
		}
		iv = normalizeInterval(iv)
		title = strings.TrimSpace(title)
		if _, err := tx.ExecContext(ctx,
			`UPDATE events SET title = ?, start_at = ?, end_at = ? WHERE id = ?`,
			title, interval.Format(iv.Start), interval.Format(iv.End), id); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		event = Event{ID: id, Title: title, Interval: iv}
		return nil
	})
	return event, err
}

// GetEvent fetches an event by id.
func (s *Store) GetEvent(ctx context.Context, id int64) (Event, error) {
	var row eventRow
	err := s.db.GetContext(ctx, &row, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Event{}, fmt.Errorf("event #%d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Event{}, fmt.Errorf("get event: %w", err)
	}
	return row.toEvent()
}

// ListEvents returns every event in creation order.
func (s *Store) ListEvents(ctx context.Context) ([]Event, error) {
	var rows []eventRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+eventColumns+` FROM events ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return convertRows(rows, eventRow.toEvent)
}

// DeleteEvent removes an event together with its subevents and participants.
func (s *Store) DeleteEvent(ctx context.Context, id int64) error {
	return s.write(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		return expectAffected(res, "event", id)
	})
}

// FindEventsContaining returns every event whose interval contains t,
// inclusive at both ends, in creation order.
func (s *Store) FindEventsContaining(ctx context.Context, t time.Time) ([]Event, error) {
	stamp := interval.Format(interval.Naive(t))
	var rows []eventRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT `+eventColumns+` FROM events WHERE start_at <= ? AND end_at >= ? ORDER BY id`,
		stamp, stamp); err != nil {
		return nil, fmt.Errorf("find events containing %s: %w", stamp, err)
	}
	return convertRows(rows, eventRow.toEvent)
}

func expectAffected(res sql.Result, entity string, id int64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s #%d: %w", entity, id, ErrNotFound)
	}
	return nil
}
