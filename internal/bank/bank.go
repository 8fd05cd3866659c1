// Package bank loads, validates and selects interview questions.
package bank

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pavelanni/interviewbot/internal/model"
)

var (
	// ErrNoQuestions is returned when a bank or a selection is empty.
	ErrNoQuestions = errors.New("no questions")
	// ErrDuplicateID is returned when two questions share an ID.
	ErrDuplicateID = errors.New("duplicate question id")
	// ErrInvalidQuestion is returned for questions missing text, section or keywords.
	ErrInvalidQuestion = errors.New("invalid question")
)

//go:embed default_questions.json
var defaultQuestions []byte

// Default returns the built-in question bank.
func Default() ([]model.Question, error) {
	var imports []model.QuestionImport
	if err := json.Unmarshal(defaultQuestions, &imports); err != nil {
		return nil, fmt.Errorf("parse default questions: %w", err)
	}
	return FromImports(imports)
}

// FromImports converts imported questions into validated bank questions.
// Whitespace is trimmed, blank keywords are dropped and missing IDs are
// derived from the section and text.
func FromImports(imports []model.QuestionImport) ([]model.Question, error) {
	if len(imports) == 0 {
		return nil, ErrNoQuestions
	}
	questions := make([]model.Question, 0, len(imports))
	for i, qi := range imports {
		q := model.Question{
			ID:      strings.TrimSpace(qi.ID),
			Text:    strings.TrimSpace(qi.Text),
			Section: strings.TrimSpace(qi.Section),
			Weight:  qi.Weight,
		}
		for _, kw := range qi.Keywords {
			if kw = strings.TrimSpace(kw); kw != "" {
				q.Keywords = append(q.Keywords, kw)
			}
		}
		if q.ID == "" {
			q.ID = DeriveID(q.Section, q.Text)
		}
		if err := validate(q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		questions = append(questions, q)
	}
	if err := checkUnique(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// DeriveID returns a stable name-based ID for a question.
func DeriveID(section, text string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(section+"\n"+text)).String()
}

// Sections returns the distinct sections in order of first appearance.
func Sections(questions []model.Question) []string {
	seen := make(map[string]bool)
	var sections []string
	for _, q := range questions {
		if !seen[q.Section] {
			seen[q.Section] = true
			sections = append(sections, q.Section)
		}
	}
	return sections
}

func validate(q model.Question) error {
	switch {
	case q.Text == "":
		return fmt.Errorf("%w: empty text", ErrInvalidQuestion)
	case q.Section == "":
		return fmt.Errorf("%w: %q has no section", ErrInvalidQuestion, q.Text)
	case len(q.Keywords) == 0:
		return fmt.Errorf("%w: %q has no keywords", ErrInvalidQuestion, q.Text)
	case q.Weight < 0:
		return fmt.Errorf("%w: %q has negative weight", ErrInvalidQuestion, q.Text)
	}
	return nil
}

func checkUnique(questions []model.Question) error {
	seen := make(map[string]bool, len(questions))
	for _, q := range questions {
		if seen[q.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, q.ID)
		}
		seen[q.ID] = true
	}
	return nil
}
