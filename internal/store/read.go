package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Get retrieves an entry by ID. Returns ErrNotFound if absent.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT seq, id, name, fingerprint, query, params
		FROM fragments
		WHERE id = ?
	`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get %s: %w", id, err)
	}
	return entry, nil
}

// FindByFingerprint retrieves the entry for a rendering fingerprint.
// Returns ErrNotFound if absent.
func (s *Store) FindByFingerprint(ctx context.Context, fingerprint string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT seq, id, name, fingerprint, query, params
		FROM fragments
		WHERE fingerprint = ?
	`, fingerprint)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("find fingerprint %s: %w", fingerprint, ErrNotFound)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("find fingerprint %s: %w", fingerprint, err)
	}
	return entry, nil
}

// FindByName returns every entry recorded under name, ordered by seq.
func (s *Store) FindByName(ctx context.Context, name string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, name, fingerprint, query, params
		FROM fragments
		WHERE name = ?
		ORDER BY seq ASC
	`, name)
	if err != nil {
		return nil, fmt.Errorf("query fragments by name: %w", err)
	}
	return scanEntries(rows)
}

// List returns all entries ordered by seq.
// Returns an empty slice (not nil) for an empty catalog.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, name, fingerprint, query, params
		FROM fragments
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query fragments: %w", err)
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fragments: %w", err)
	}
	return entries, nil
}

// scanEntry scans one row into an Entry.
func scanEntry(row rowScanner) (Entry, error) {
	var entry Entry
	var paramsJSON string

	if err := row.Scan(
		&entry.Seq, &entry.ID, &entry.Name, &entry.Fingerprint, &entry.Query, &paramsJSON,
	); err != nil {
		return Entry{}, err
	}

	params, err := unmarshalParams(paramsJSON)
	if err != nil {
		return Entry{}, err
	}
	entry.Params = params

	return entry, nil
}
