package index

import (
	"encoding/json"
	"fmt"
	"time"
)

// TipRow represents a row in the tips table.
type TipRow struct {
	ID         string
	Title      string
	Content    string
	Category   string
	Difficulty string
	Tags       []string
	Checksum   string
	CreatedAt  time.Time
}

// SearchResult represents one search hit.
type SearchResult struct {
	ID      string
	Title   string
	Snippet string
}

// UpsertTip inserts or replaces a tip and its FTS entry within a transaction.
func (db *DB) UpsertTip(row TipRow) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	tagsJSON, _ := json.Marshal(row.Tags)

	_, err = tx.Exec(`
		INSERT INTO tips (id, title, content, category, difficulty, tags, checksum, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title      = excluded.title,
			content    = excluded.content,
			category   = excluded.category,
			difficulty = excluded.difficulty,
			tags       = excluded.tags,
			checksum   = excluded.checksum,
			created_at = excluded.created_at
	`, row.ID, row.Title, row.Content, row.Category, row.Difficulty, string(tagsJSON), row.Checksum, row.CreatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert tip: %w", err)
	}

	// FTS upsert (no-op when the FTS5 tag is absent).
	if err := ftsUpsert(tx, row.ID, row.Title, row.Content, row.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteTip removes a tip and its FTS entry.
func (db *DB) DeleteTip(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, id)
	_, _ = tx.Exec(`DELETE FROM tips WHERE id = ?`, id)

	return tx.Commit()
}

// DeleteAll purges the whole index. Used by the reset operation.
func (db *DB) DeleteAll() error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDeleteAll(tx)
	_, err = tx.Exec(`DELETE FROM tips`)
	if err != nil {
		return fmt.Errorf("index: delete all: %w", err)
	}

	return tx.Commit()
}

// GetChecksum returns the stored checksum for a tip, or empty string if
// not found.
func (db *DB) GetChecksum(id string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM tips WHERE id = ?`, id).Scan(&cs)
	if err != nil {
		return "", nil // not found is fine
	}
	return cs, nil
}

// AllChecksums returns id → checksum for every indexed tip.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT id, checksum FROM tips`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var id, cs string
		if err := rows.Scan(&id, &cs); err != nil {
			return nil, err
		}
		out[id] = cs
	}
	return out, rows.Err()
}

// sortClauses whitelists ListTips sort keys.
var sortClauses = map[string]string{
	"":           "created_at DESC",
	"created_at": "created_at DESC",
	"title":      "title ASC",
	"category":   "category ASC, created_at DESC",
}

// ListTips returns a page of tips with an optional category filter.
func (db *DB) ListTips(limit, offset int, category, sort string) ([]TipRow, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	order, ok := sortClauses[sort]
	if !ok {
		order = sortClauses[""]
	}

	where := ""
	args := []any{}
	if category != "" {
		where = "WHERE category = ?"
		args = append(args, category)
	}

	var total int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM tips `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count tips: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, title, content, category, difficulty, tags, checksum, created_at
		FROM tips %s
		ORDER BY %s
		LIMIT ? OFFSET ?
	`, where, order)
	args = append(args, limit, offset)

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list tips: %w", err)
	}
	defer rows.Close()

	var out []TipRow
	for rows.Next() {
		var r TipRow
		var tagsJSON string
		if err := rows.Scan(&r.ID, &r.Title, &r.Content, &r.Category, &r.Difficulty, &tagsJSON, &r.Checksum, &r.CreatedAt); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal([]byte(tagsJSON), &r.Tags); err != nil {
			r.Tags = nil
		}
		out = append(out, r)
	}
	return out, total, rows.Err()
}
