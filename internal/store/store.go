package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pavelanni/interviewbot/internal/model"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed question library.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
// Pass ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	// One connection: ":memory:" databases are per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("set journal mode: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS questions (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		section TEXT NOT NULL,
		text TEXT NOT NULL,
		keywords TEXT NOT NULL DEFAULT '[]',
		weight REAL NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_questions_position ON questions(position);

	CREATE TABLE IF NOT EXISTS imported_files (
		path TEXT PRIMARY KEY,
		sha256 TEXT NOT NULL,
		imported_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ErrDuplicateQuestion is returned when a question ID is already stored.
var ErrDuplicateQuestion = errors.New("question already in library")

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// InsertQuestion appends a question to the library.
func (s *Store) InsertQuestion(q model.Question) error {
	added, err := insertQuestion(s.db, q)
	if err != nil {
		return err
	}
	if !added {
		return fmt.Errorf("%w: %s", ErrDuplicateQuestion, q.ID)
	}
	return nil
}

// insertQuestion appends q unless its ID is already stored and reports
// whether a row was added.
func insertQuestion(e execer, q model.Question) (bool, error) {
	keywords, err := json.Marshal(q.Keywords)
	if err != nil {
		return false, fmt.Errorf("encode keywords: %w", err)
	}
	res, err := e.Exec(
		`INSERT INTO questions (id, position, section, text, keywords, weight)
		 VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM questions), ?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		q.ID, q.Section, q.Text, string(keywords), q.Weight,
	)
	if err != nil {
		return false, fmt.Errorf("insert question %s: %w", q.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListQuestions returns all questions in insertion order.
func (s *Store) ListQuestions() ([]model.Question, error) {
	return s.queryQuestions(`SELECT id, section, text, keywords, weight FROM questions ORDER BY position`)
}

// ListQuestionsBySection returns the questions of one section, compared
// case-insensitively, in insertion order.
func (s *Store) ListQuestionsBySection(section string) ([]model.Question, error) {
	return s.queryQuestions(
		`SELECT id, section, text, keywords, weight FROM questions
		 WHERE section = ? COLLATE NOCASE ORDER BY position`, section,
	)
}

func (s *Store) queryQuestions(query string, args ...any) ([]model.Question, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var questions []model.Question
	for rows.Next() {
		var (
			q        model.Question
			keywords string
		)
		if err := rows.Scan(&q.ID, &q.Section, &q.Text, &keywords, &q.Weight); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(keywords), &q.Keywords); err != nil {
			return nil, fmt.Errorf("decode keywords of %s: %w", q.ID, err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// ListSections returns the distinct sections, compared case-insensitively,
// ordered by first appearance.
func (s *Store) ListSections() ([]string, error) {
	rows, err := s.db.Query(`SELECT section FROM questions GROUP BY section COLLATE NOCASE ORDER BY MIN(position)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sections []string
	for rows.Next() {
		var sec string
		if err := rows.Scan(&sec); err != nil {
			return nil, err
		}
		sections = append(sections, sec)
	}
	return sections, rows.Err()
}

// QuestionCount returns the number of questions in the database.
func (s *Store) QuestionCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM questions`).Scan(&count)
	return count, err
}
