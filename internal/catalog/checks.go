package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventsort/internal/interval"
)

// Every mutation runs the same check function inside its write transaction
// that the exported Check* projection runs against the live database, so a
// clean projection implies the mutation succeeds. Checks compare intervals
// in their stored form.

// CheckPerson reports the error InsertPerson would return for name.
func (s *Store) CheckPerson(ctx context.Context, name string) error {
	return checkPerson(ctx, s.db, name)
}

// CheckEvent reports the error InsertEvent or UpdateEvent would return.
func (s *Store) CheckEvent(ctx context.Context, title string, iv interval.Interval) error {
	return checkEvent(title, iv)
}

// CheckSubevent reports the error InsertSubevent would return.
func (s *Store) CheckSubevent(ctx context.Context, eventID int64, title string, iv interval.Interval) error {
	return checkSubevent(ctx, s.db, eventID, title, iv)
}

// CheckParticipant reports the error AddParticipant would return for a
// person referenced by name. An unknown name has no attendance history.
func (s *Store) CheckParticipant(ctx context.Context, personName string, eventID int64, iv interval.Interval) error {
	name := normalizeName(personName)
	if name == "" {
		return invalid("participant", ReasonMissingData, "person name is required")
	}
	personID, err := lookupPersonID(ctx, s.db, name)
	if err != nil {
		return err
	}
	return checkParticipant(ctx, s.db, personID, eventID, iv)
}

// CheckArtist reports the error InsertArtist (ID zero) or UpdateArtist
// (ID set) would return for a.
func (s *Store) CheckArtist(ctx context.Context, a Artist) error {
	if a.ID != 0 {
		if err := requireRow(ctx, s.db, "artists", a.ID); err != nil {
			return err
		}
	}
	personID, err := resolvePerson(ctx, s.db, a.PersonID, a.PersonName, false)
	if err != nil {
		return err
	}
	return checkArtist(ctx, s.db, a.ID, personID, a.Make, a.Model, a.Interval)
}

func checkPerson(ctx context.Context, q queryer, name string) error {
	normalized := normalizeName(name)
	if normalized == "" {
		return invalid("person", ReasonMissingData, "name is required")
	}
	id, err := lookupPersonID(ctx, q, normalized)
	if err != nil {
		return err
	}
	if id != 0 {
		return &ValidationError{Entity: "person", Reason: ReasonDuplicateName, ConflictID: id, Detail: normalized}
	}
	return nil
}

func checkEvent(title string, iv interval.Interval) error {
	iv = normalizeInterval(iv)
	if strings.TrimSpace(title) == "" {
		return invalid("event", ReasonMissingTitle, "")
	}
	return checkBounds("event", iv)
}

func checkBounds(entity string, iv interval.Interval) error {
	if iv.Start.IsZero() || iv.End.IsZero() {
		return invalid(entity, ReasonMissingData, "start and end are required")
	}
	if iv.Swapped() {
		return swapError(entity, iv)
	}
	return nil
}

func checkSubevent(ctx context.Context, q queryer, eventID int64, title string, iv interval.Interval) error {
	iv = normalizeInterval(iv)
	if strings.TrimSpace(title) == "" {
		return invalid("subevent", ReasonMissingTitle, "")
	}
	if err := checkBounds("subevent", iv); err != nil {
		return err
	}
	parent, err := loadParent(ctx, q, "subevent", eventID)
	if err != nil {
		return err
	}
	if kind := parent.Interval.Outside(iv); kind != interval.Inside {
		return outsideError("subevent", kind, parent.ID)
	}

	var siblings []subeventRow
	if err := q.SelectContext(ctx, &siblings,
		`SELECT `+subeventColumns+` FROM subevents WHERE event_id = ? ORDER BY id`, eventID); err != nil {
		return fmt.Errorf("list sibling subevents: %w", err)
	}
	for _, row := range siblings {
		existing, err := parseInterval(row.Start, row.End)
		if err != nil {
			return err
		}
		if kind := existing.Overlap(iv); kind != interval.None {
			return overlapError("subevent", kind, row.ID)
		}
	}
	return nil
}

// checkParticipant scans every attendance of the person across all events.
// personID zero means the person does not exist yet.
func checkParticipant(ctx context.Context, q queryer, personID, eventID int64, iv interval.Interval) error {
	iv = normalizeInterval(iv)
	if err := checkBounds("participant", iv); err != nil {
		return err
	}
	parent, err := loadParent(ctx, q, "participant", eventID)
	if err != nil {
		return err
	}
	if kind := parent.Interval.Outside(iv); kind != interval.Inside {
		return outsideError("participant", kind, parent.ID)
	}
	if personID == 0 {
		return nil
	}

	var rows []participantRow
	if err := q.SelectContext(ctx, &rows,
		`SELECT `+participantColumns+`
         FROM participants p JOIN persons pe ON pe.id = p.person_id
         WHERE p.person_id = ? ORDER BY p.id`, personID); err != nil {
		return fmt.Errorf("list participations: %w", err)
	}
	for _, row := range rows {
		existing, err := parseInterval(row.Start, row.End)
		if err != nil {
			return err
		}
		if kind := existing.Overlap(iv); kind != interval.None {
			return overlapError("participant", kind, row.ID)
		}
	}
	return nil
}

// checkArtist scans rows sharing the device triple, skipping selfID.
func checkArtist(ctx context.Context, q queryer, selfID, personID int64, deviceMake, deviceModel string, iv interval.Interval) error {
	iv = normalizeInterval(iv)
	if strings.TrimSpace(deviceMake) == "" || strings.TrimSpace(deviceModel) == "" {
		return invalid("artist", ReasonMissingData, "make and model are required")
	}
	if err := checkBounds("artist", iv); err != nil {
		return err
	}
	if personID == 0 {
		return nil
	}

	var rows []artistRow
	if err := q.SelectContext(ctx, &rows,
		`SELECT `+artistColumns+`
         FROM artists a JOIN persons pe ON pe.id = a.person_id
         WHERE a.person_id = ? AND lower(a.make) = lower(?) AND lower(a.model) = lower(?) AND a.id != ?
         ORDER BY a.id`,
		personID, strings.TrimSpace(deviceMake), strings.TrimSpace(deviceModel), selfID); err != nil {
		return fmt.Errorf("list device artists: %w", err)
	}
	for _, row := range rows {
		existing, err := parseInterval(row.Start, row.End)
		if err != nil {
			return err
		}
		if kind := existing.Overlap(iv); kind != interval.None {
			return overlapError("artist", kind, row.ID)
		}
	}
	return nil
}

func loadParent(ctx context.Context, q queryer, entity string, eventID int64) (Event, error) {
	if eventID == 0 {
		return Event{}, invalid(entity, ReasonMissingData, "event is required")
	}
	var row eventRow
	err := q.GetContext(ctx, &row, `SELECT `+eventColumns+` FROM events WHERE id = ?`, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return Event{}, invalid(entity, ReasonMissingData, fmt.Sprintf("event #%d does not exist", eventID))
	}
	if err != nil {
		return Event{}, fmt.Errorf("load event %d: %w", eventID, err)
	}
	return row.toEvent()
}

func lookupPersonID(ctx context.Context, q queryer, name string) (int64, error) {
	var id int64
	err := q.GetContext(ctx, &id, `SELECT id FROM persons WHERE name = ?`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("lookup person: %w", err)
	}
	return id, nil
}

// resolvePerson returns the id for an explicit id or a name. With create
// set, an unknown name is inserted; otherwise it resolves to zero.
func resolvePerson(ctx context.Context, q queryer, id int64, name string, create bool) (int64, error) {
	if id != 0 {
		var found int64
		err := q.GetContext(ctx, &found, `SELECT id FROM persons WHERE id = ?`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, invalid("person", ReasonMissingData, fmt.Sprintf("person #%d does not exist", id))
		}
		if err != nil {
			return 0, fmt.Errorf("lookup person %d: %w", id, err)
		}
		return found, nil
	}
	normalized := normalizeName(name)
	if normalized == "" {
		return 0, invalid("person", ReasonMissingData, "person name is required")
	}
	found, err := lookupPersonID(ctx, q, normalized)
	if err != nil || found != 0 || !create {
		return found, err
	}
	res, err := q.ExecContext(ctx, `INSERT INTO persons (name) VALUES (?)`, normalized)
	if err != nil {
		return 0, fmt.Errorf("insert person: %w", err)
	}
	return res.LastInsertId()
}

func requireRow(ctx context.Context, q queryer, table string, id int64) error {
	var count int
	if err := q.GetContext(ctx, &count, `SELECT COUNT(1) FROM `+table+` WHERE id = ?`, id); err != nil {
		return fmt.Errorf("lookup %s %d: %w", table, id, err)
	}
	if count == 0 {
		return fmt.Errorf("%s #%d: %w", strings.TrimSuffix(table, "s"), id, ErrNotFound)
	}
	return nil
}
