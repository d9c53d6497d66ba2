package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// InsertPerson creates a person. Names are unique after whitespace folding.
func (s *Store) InsertPerson(ctx context.Context, name string) (Person, error) {
	var person Person
	err := s.write(ctx, func(tx *sqlx.Tx) error {
		if err := checkPerson(ctx, tx, name); err != nil {
			return err
		}
		normalized := normalizeName(name)
		res, err := tx.ExecContext(ctx, `INSERT INTO persons (name) VALUES (?)`, normalized)
		if err != nil {
			return fmt.Errorf("insert person: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		person = Person{ID: id, Name: normalized}
		return nil
	})
	return person, err
}

// GetOrCreatePerson returns the person named name, creating it when absent.
func (s *Store) GetOrCreatePerson(ctx context.Context, name string) (Person, error) {
	var person Person
	err := s.write(ctx, func(tx *sqlx.Tx) error {
		id, err := resolvePerson(ctx, tx, 0, name, true)
		if err != nil {
			return err
		}
		person = Person{ID: id, Name: normalizeName(name)}
		return nil
	})
	return person, err
}

// FindPersonByName returns ErrNotFound when no person has that name.
func (s *Store) FindPersonByName(ctx context.Context, name string) (Person, error) {
	var row personRow
	err := s.db.GetContext(ctx, &row, `SELECT id, name FROM persons WHERE name = ?`, normalizeName(name))
	if errors.Is(err, sql.ErrNoRows) {
		return Person{}, fmt.Errorf("person %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Person{}, fmt.Errorf("find person: %w", err)
	}
	return Person{ID: row.ID, Name: row.Name}, nil
}

// ListPersons returns every person ordered by name.
func (s *Store) ListPersons(ctx context.Context) ([]Person, error) {
	var rows []personRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT id, name FROM persons ORDER BY name, id`); err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	persons := make([]Person, 0, len(rows))
	for _, row := range rows {
		persons = append(persons, Person{ID: row.ID, Name: row.Name})
	}
	return persons, nil
}

// DeletePerson removes a person that no participant or artist references.
func (s *Store) DeletePerson(ctx context.Context, id int64) error {
	return s.write(ctx, func(tx *sqlx.Tx) error {
		if err := requireRow(ctx, tx, "persons", id); err != nil {
			return err
		}
		var refs int
		if err := tx.GetContext(ctx, &refs,
			`SELECT (SELECT COUNT(1) FROM participants WHERE person_id = ?) +
                    (SELECT COUNT(1) FROM artists WHERE person_id = ?)`, id, id); err != nil {
			return fmt.Errorf("count person references: %w", err)
		}
		if refs > 0 {
			return fmt.Errorf("person #%d (%d references): %w", id, refs, ErrPersonInUse)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM persons WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete person: %w", err)
		}
		return nil
	})
}
