// Package results appends one row per created form to a tabular store.
package results

import (
	"context"
	"time"

	"github.com/OPS-PIvers/Schoology-to-Forms/internal/forms"
)

// Row is the five fields logged per created form.
type Row struct {
	FormID        string
	ViewURL       string
	EditURL       string
	QuestionCount int
	CreatedAt     time.Time
}

// RowFromRecord copies a form record into its log row.
func RowFromRecord(rec forms.Record) Row {
	return Row{
		FormID:        rec.FormID,
		ViewURL:       rec.ViewURL,
		EditURL:       rec.EditURL,
		QuestionCount: rec.QuestionCount,
		CreatedAt:     rec.CreatedAt,
	}
}

// Store is the persistence collaborator.
type Store interface {
	Append(ctx context.Context, row Row) error
}
