package results

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

var csvHeader = []string{"form_id", "view_url", "edit_url", "question_count", "created_at"}

// CSVStore appends rows to a local CSV file, writing the header row the
// first time the file is used.
type CSVStore struct {
	mu   sync.Mutex
	path string
}

func NewCSVStore(path string) (*CSVStore, error) {
	if path == "" {
		path = "./conversion-log.csv"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &CSVStore{path: path}, nil
}

func (s *CSVStore) Append(ctx context.Context, row Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open results log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			return err
		}
	}
	if err := w.Write([]string{
		row.FormID,
		row.ViewURL,
		row.EditURL,
		strconv.Itoa(row.QuestionCount),
		row.CreatedAt.UTC().Format(time.RFC3339),
	}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
