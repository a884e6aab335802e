package store

import (
	"context"
	"fmt"

	"github.com/roach88/cypherfrag/internal/canonical"
	"github.com/roach88/cypherfrag/internal/pattern"
)

// Entry is one catalog row.
type Entry struct {
	Seq         int64          `json:"seq"`
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Fingerprint string         `json:"fingerprint"`
	Query       string         `json:"query"`
	Params      map[string]any `json:"params"`
}

// QueryObject returns the stored rendering.
func (e Entry) QueryObject() pattern.QueryObject {
	return pattern.QueryObject{Query: e.Query, Params: e.Params}
}

// Record stores a rendered fragment under name and reports whether a new
// row was inserted.
//
// Uses ON CONFLICT(fingerprint) DO NOTHING for idempotency. If an equal
// rendering already exists, its entry is returned with inserted=false and
// the first name is kept.
func (s *Store) Record(ctx context.Context, name string, obj pattern.QueryObject) (entry Entry, inserted bool, err error) {
	if name == "" {
		return Entry{}, false, fmt.Errorf("record fragment: name is required")
	}

	fingerprint, err := canonical.Fingerprint(obj.Query, obj.Params)
	if err != nil {
		return Entry{}, false, fmt.Errorf("record fragment: %w", err)
	}
	paramsJSON, err := marshalParams(obj.Params)
	if err != nil {
		return Entry{}, false, fmt.Errorf("record fragment: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, false, fmt.Errorf("record fragment: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO fragments
		(id, name, fingerprint, query, params)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO NOTHING
	`,
		s.ids.Generate(),
		name,
		fingerprint,
		obj.Query,
		paramsJSON,
	)
	if err != nil {
		return Entry{}, false, fmt.Errorf("record fragment: insert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return Entry{}, false, fmt.Errorf("record fragment: rows affected: %w", err)
	}
	inserted = rowsAffected > 0

	row := tx.QueryRowContext(ctx, `
		SELECT seq, id, name, fingerprint, query, params
		FROM fragments
		WHERE fingerprint = ?
	`, fingerprint)
	entry, err = scanEntry(row)
	if err != nil {
		return Entry{}, false, fmt.Errorf("record fragment: select: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Entry{}, false, fmt.Errorf("record fragment: commit: %w", err)
	}

	return entry, inserted, nil
}
