package store

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/pavelanni/interviewbot/internal/model"
)

// GetImportedFileHash returns the recorded hash for a question file.
// Returns empty string and nil error if the file was never imported.
func (s *Store) GetImportedFileHash(path string) (string, error) {
	var hash string
	err := s.db.QueryRow(`SELECT sha256 FROM imported_files WHERE path = ?`, path).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return hash, err
}

// SetImportedFileHash records the hash of an imported question file.
func (s *Store) SetImportedFileHash(path, hash string) error {
	return setImportedFileHash(s.db, path, hash)
}

func setImportedFileHash(e execer, path, hash string) error {
	_, err := e.Exec(
		`INSERT INTO imported_files (path, sha256, imported_at) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET sha256 = excluded.sha256, imported_at = excluded.imported_at`,
		path, hash, time.Now(),
	)
	return err
}

// ImportQuestions inserts the questions of one file and records its hash in
// a single transaction. Questions whose ID is already stored are skipped.
// It returns the number of questions added.
func (s *Store) ImportQuestions(path, hash string, questions []model.Question) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	added := 0
	for _, q := range questions {
		ok, err := insertQuestion(tx, q)
		if err != nil {
			return 0, err
		}
		if !ok {
			slog.Warn("question already in library, skipping", "path", path, "id", q.ID)
			continue
		}
		added++
	}
	if err := setImportedFileHash(tx, path, hash); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	slog.Info("imported questions", "path", path, "added", added, "skipped", len(questions)-added)
	return added, nil
}
