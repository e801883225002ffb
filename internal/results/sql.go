package results

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLStore appends rows to the form_log table (sqlite or postgres, see
// internal/db). Placeholder style differs between the two drivers.
type SQLStore struct {
	db       *sql.DB
	postgres bool
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, postgres: driver == "postgres"}
}

func (s *SQLStore) Append(ctx context.Context, row Row) error {
	q := `INSERT INTO form_log (form_id, view_url, edit_url, question_count, created_at) VALUES (?, ?, ?, ?, ?)`
	if s.postgres {
		q = `INSERT INTO form_log (form_id, view_url, edit_url, question_count, created_at) VALUES ($1, $2, $3, $4, $5)`
	}
	if _, err := s.db.ExecContext(ctx, q,
		row.FormID, row.ViewURL, row.EditURL, row.QuestionCount, row.CreatedAt.Unix()); err != nil {
		return fmt.Errorf("append form log: %w", err)
	}
	return nil
}
