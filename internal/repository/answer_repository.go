package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vinash85/polypLabeler/internal/models"
)

// ErrAnswerNotFound is returned when no answer record exists for an item key,
// or when a change targets a user with no answer store at all.
var ErrAnswerNotFound = errors.New("answer not found")

// answerFileHeader is the header row written when a per-user store is first
// created. It matches the responses file layout consumed by downstream
// analysis scripts, so the column names are load-bearing.
var answerFileHeader = []string{"image_name", "answer"}

// AnswerRepository is a durable per-user log of (item key, answer) pairs.
// Reads and updates both resolve the first row matching the item key, so the
// two stay consistent even if a file acquires duplicate keys out-of-band.
type AnswerRepository interface {
	// Append writes a new record, creating the store with a header row on
	// first use. It performs no duplicate check; callers are expected to
	// consult GetAnswer or ListAnswered first.
	Append(ctx context.Context, username, itemKey, answer string) error

	// ListAnswered returns the item keys present in the store in file
	// order, header excluded. A missing store yields an empty slice.
	ListAnswered(ctx context.Context, username string) ([]string, error)

	// GetAnswer returns the first matching record's answer.
	GetAnswer(ctx context.Context, username, itemKey string) (string, error)

	// ChangeAnswer replaces the first row matching itemKey, preserving
	// the relative order of all other rows. The store is rewritten to a
	// temporary file and atomically renamed into place; on any failure
	// the temporary file is discarded and the original is left intact.
	ChangeAnswer(ctx context.Context, username, itemKey, newAnswer string) error
}

type answerRepository struct {
	dir string

	// rename is swapped out in tests to inject failures mid-rewrite.
	rename func(oldpath, newpath string) error
}

// NewAnswerRepository creates a CSV-file-backed answer repository rooted at
// dir. Per-user files are created lazily on first write.
func NewAnswerRepository(dir string) AnswerRepository {
	return &answerRepository{
		dir:    dir,
		rename: os.Rename,
	}
}

func (r *answerRepository) storePath(username string) string {
	return filepath.Join(r.dir, username+"_answers.csv")
}

func (r *answerRepository) Append(ctx context.Context, username, itemKey, answer string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := r.storePath(username)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := r.createStore(path); err != nil {
			return err
		}
	} else if err != nil {
		return fmt.Errorf("failed to stat answer store for %s: %w", username, err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open answer store for %s: %w", username, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{itemKey, answer}); err != nil {
		return fmt.Errorf("failed to append answer for %s: %w", username, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to append answer for %s: %w", username, err)
	}

	return nil
}

func (r *answerRepository) createStore(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create answers directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create answer store: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(answerFileHeader); err != nil {
		return fmt.Errorf("failed to write answer store header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write answer store header: %w", err)
	}

	return nil
}

func (r *answerRepository) ListAnswered(ctx context.Context, username string) ([]string, error) {
	records, err := r.readAll(ctx, username)
	if errors.Is(err, os.ErrNotExist) {
		// No store yet means nothing answered, not an error.
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(records))
	for _, rec := range records {
		keys = append(keys, rec.ItemKey)
	}
	return keys, nil
}

func (r *answerRepository) GetAnswer(ctx context.Context, username, itemKey string) (string, error) {
	records, err := r.readAll(ctx, username)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrAnswerNotFound
	}
	if err != nil {
		return "", err
	}

	for _, rec := range records {
		if rec.ItemKey == itemKey {
			return rec.Answer, nil
		}
	}
	return "", ErrAnswerNotFound
}

func (r *answerRepository) ChangeAnswer(ctx context.Context, username, itemKey, newAnswer string) error {
	records, err := r.readAll(ctx, username)
	if errors.Is(err, os.ErrNotExist) {
		return ErrAnswerNotFound
	}
	if err != nil {
		return err
	}

	replaced := false
	for i := range records {
		if records[i].ItemKey == itemKey {
			records[i].Answer = newAnswer
			replaced = true
			break
		}
	}
	if !replaced {
		return ErrAnswerNotFound
	}

	return r.rewrite(username, records)
}

// rewrite writes the full record set to a temporary file next to the store
// and renames it into place. The rename is the commit point; until it
// succeeds the original file is untouched.
func (r *answerRepository) rewrite(username string, records []models.AnswerRecord) error {
	path := r.storePath(username)

	tmp, err := os.CreateTemp(r.dir, username+"_answers_*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp answer store for %s: %w", username, err)
	}
	tmpPath := tmp.Name()

	w := csv.NewWriter(tmp)
	writeErr := w.Write(answerFileHeader)
	for _, rec := range records {
		if writeErr != nil {
			break
		}
		writeErr = w.Write([]string{rec.ItemKey, rec.Answer})
	}
	if writeErr == nil {
		w.Flush()
		writeErr = w.Error()
	}
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rewrite answer store for %s: %w", username, writeErr)
	}

	if err := r.rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace answer store for %s: %w", username, err)
	}

	return nil
}

func (r *answerRepository) readAll(ctx context.Context, username string) ([]models.AnswerRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.storePath(username))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to open answer store for %s: %w", username, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read answer store for %s: %w", username, err)
	}

	records := make([]models.AnswerRecord, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			// Header row.
			continue
		}
		records = append(records, models.AnswerRecord{ItemKey: row[0], Answer: row[1]})
	}
	return records, nil
}
