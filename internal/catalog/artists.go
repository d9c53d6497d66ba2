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

// InsertArtist stores a device window for a person. The person is taken
// from a.PersonID, or from a.PersonName when the id is zero, in which case
// an unknown name is created. a.ID is ignored.
func (s *Store) InsertArtist(ctx context.Context, a Artist) (Artist, error) {
	a.ID = 0
	return s.saveArtist(ctx, a)
}

// UpdateArtist replaces the artist row a.ID. The row itself is excluded
// from the overlap scan.
func (s *Store) UpdateArtist(ctx context.Context, a Artist) (Artist, error) {
	if a.ID == 0 {
		return Artist{}, fmt.Errorf("artist id is required: %w", ErrNotFound)
	}
	return s.saveArtist(ctx, a)
}

func (s *Store) saveArtist(ctx context.Context, a Artist) (Artist, error) {
	var saved Artist
	err := s.write(ctx, func(tx *sqlx.Tx) error {
		if a.ID != 0 {
			if err := requireRow(ctx, tx, "artists", a.ID); err != nil {
				return err
			}
		}
		existingID, err := resolvePerson(ctx, tx, a.PersonID, a.PersonName, false)
		if err != nil {
			return err
		}
		if err := checkArtist(ctx, tx, a.ID, existingID, a.Make, a.Model, a.Interval); err != nil {
			return err
		}
		personID, err := resolvePerson(ctx, tx, a.PersonID, a.PersonName, true)
		if err != nil {
			return err
		}

		iv := normalizeInterval(a.Interval)
		deviceMake := strings.TrimSpace(a.Make)
		deviceModel := strings.TrimSpace(a.Model)
		args := []any{
			personID, deviceMake, deviceModel,
			interval.Format(iv.Start), interval.Format(iv.End),
			a.Shift.Days, a.Shift.Hours, a.Shift.Minutes, a.Shift.Seconds,
		}
		id := a.ID
		if id == 0 {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO artists (
                    person_id, make, model, start_at, end_at,
                    shift_days, shift_hours, shift_minutes, shift_seconds
                ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
			if err != nil {
				return fmt.Errorf("insert artist: %w", err)
			}
			if id, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("last insert id: %w", err)
			}
		} else {
			if _, err := tx.ExecContext(ctx,
				`UPDATE artists
                 SET person_id = ?, make = ?, model = ?, start_at = ?, end_at = ?,
                     shift_days = ?, shift_hours = ?, shift_minutes = ?, shift_seconds = ?
                 WHERE id = ?`, append(args, id)...); err != nil {
				return fmt.Errorf("update artist: %w", err)
			}
		}

		var row artistRow
		if err := tx.GetContext(ctx, &row,
			`SELECT `+artistColumns+` FROM artists a JOIN persons pe ON pe.id = a.person_id WHERE a.id = ?`, id); err != nil {
			return fmt.Errorf("reload artist: %w", err)
		}
		saved, err = row.toArtist()
		return err
	})
	return saved, err
}

// FindArtist returns the first artist, by id, whose device matches make and
// model case-insensitively and whose interval contains t. The boolean is
// false when no artist matches.
func (s *Store) FindArtist(ctx context.Context, deviceMake, deviceModel string, t time.Time) (Artist, bool, error) {
	stamp := interval.Format(interval.Naive(t))
	var row artistRow
	err := s.db.GetContext(ctx, &row,
		`SELECT `+artistColumns+`
         FROM artists a JOIN persons pe ON pe.id = a.person_id
         WHERE lower(a.make) = lower(?) AND lower(a.model) = lower(?)
           AND a.start_at <= ? AND a.end_at >= ?
         ORDER BY a.id LIMIT 1`,
		strings.TrimSpace(deviceMake), strings.TrimSpace(deviceModel), stamp, stamp)
	if errors.Is(err, sql.ErrNoRows) {
		return Artist{}, false, nil
	}
	if err != nil {
		return Artist{}, false, fmt.Errorf("find artist: %w", err)
	}
	artist, err := row.toArtist()
	if err != nil {
		return Artist{}, false, err
	}
	return artist, true, nil
}

// ListArtists returns every artist in creation order.
func (s *Store) ListArtists(ctx context.Context) ([]Artist, error) {
	var rows []artistRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT `+artistColumns+` FROM artists a JOIN persons pe ON pe.id = a.person_id ORDER BY a.id`); err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return convertRows(rows, artistRow.toArtist)
}

// DeleteArtist removes one artist row.
func (s *Store) DeleteArtist(ctx context.Context, id int64) error {
	return s.write(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete artist: %w", err)
		}
		return expectAffected(res, "artist", id)
	})
}
