package store

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pavelanni/interviewbot/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("newTestStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func insertTestQuestion(t *testing.T, s *Store, id, section string) {
	t.Helper()
	err := s.InsertQuestion(model.Question{
		ID:       id,
		Section:  section,
		Text:     "text of " + id,
		Keywords: []string{"alpha", "beta"},
		Weight:   2,
	})
	if err != nil {
		t.Fatalf("insertTestQuestion: %v", err)
	}
}

func TestQuestionCRUD(t *testing.T) {
	s := newTestStore(t)

	// Empty DB should return zero count and empty list.
	count, err := s.QuestionCount()
	if err != nil {
		t.Fatalf("QuestionCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 questions, got %d", count)
	}
	list, err := s.ListQuestions()
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}

	insertTestQuestion(t, s, "q1", model.SectionTechnical)
	list, err = s.ListQuestions()
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	want := model.Question{
		ID:       "q1",
		Section:  model.SectionTechnical,
		Text:     "text of q1",
		Keywords: []string{"alpha", "beta"},
		Weight:   2,
	}
	if len(list) != 1 || !reflect.DeepEqual(list[0], want) {
		t.Errorf("ListQuestions = %+v, want [%+v]", list, want)
	}

	// Duplicate ID is rejected.
	err = s.InsertQuestion(model.Question{ID: "q1", Section: "HR", Text: "x"})
	if !errors.Is(err, ErrDuplicateQuestion) {
		t.Errorf("expected ErrDuplicateQuestion, got %v", err)
	}

	count, _ = s.QuestionCount()
	if count != 1 {
		t.Errorf("expected 1 question, got %d", count)
	}
}

func TestListQuestionsOrder(t *testing.T) {
	s := newTestStore(t)
	insertTestQuestion(t, s, "z", model.SectionHR)
	insertTestQuestion(t, s, "a", model.SectionTechnical)
	insertTestQuestion(t, s, "m", model.SectionHR)

	list, err := s.ListQuestions()
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	var ids []string
	for _, q := range list {
		ids = append(ids, q.ID)
	}
	if !reflect.DeepEqual(ids, []string{"z", "a", "m"}) {
		t.Errorf("expected insertion order, got %v", ids)
	}

	hr, err := s.ListQuestionsBySection("hr")
	if err != nil {
		t.Fatalf("ListQuestionsBySection: %v", err)
	}
	if len(hr) != 2 || hr[0].ID != "z" || hr[1].ID != "m" {
		t.Errorf("unexpected HR questions %v", hr)
	}

	sections, err := s.ListSections()
	if err != nil {
		t.Fatalf("ListSections: %v", err)
	}
	if !reflect.DeepEqual(sections, []string{model.SectionHR, model.SectionTechnical}) {
		t.Errorf("expected sections by first appearance, got %v", sections)
	}
}

func TestNilKeywordsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	if err := s.InsertQuestion(model.Question{ID: "k", Section: "HR", Text: "t"}); err != nil {
		t.Fatalf("InsertQuestion: %v", err)
	}
	list, err := s.ListQuestions()
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(list) != 1 || len(list[0].Keywords) != 0 {
		t.Errorf("expected one question without keywords, got %+v", list)
	}
}

func TestImportedFileHash(t *testing.T) {
	s := newTestStore(t)

	// Missing file returns empty string.
	hash, err := s.GetImportedFileHash("/some/path.json")
	if err != nil {
		t.Fatalf("GetImportedFileHash: %v", err)
	}
	if hash != "" {
		t.Errorf("expected empty hash, got %q", hash)
	}

	if err := s.SetImportedFileHash("/some/path.json", "abc123"); err != nil {
		t.Fatalf("SetImportedFileHash: %v", err)
	}
	hash, err = s.GetImportedFileHash("/some/path.json")
	if err != nil {
		t.Fatalf("GetImportedFileHash: %v", err)
	}
	if hash != "abc123" {
		t.Errorf("expected 'abc123', got %q", hash)
	}

	// Update existing.
	if err := s.SetImportedFileHash("/some/path.json", "def456"); err != nil {
		t.Fatalf("SetImportedFileHash update: %v", err)
	}
	hash, _ = s.GetImportedFileHash("/some/path.json")
	if hash != "def456" {
		t.Errorf("expected 'def456', got %q", hash)
	}
}

func TestImportQuestionsSkipsExisting(t *testing.T) {
	s := newTestStore(t)

	first := []model.Question{{ID: "a", Section: "HR", Text: "A?"}}
	added, err := s.ImportQuestions("a.json", "h1", first)
	if err != nil || added != 1 {
		t.Fatalf("ImportQuestions(a) = %d, %v; want 1, nil", added, err)
	}

	// The second file repeats "a" and adds "b".
	second := []model.Question{
		{ID: "a", Section: "HR", Text: "A again?"},
		{ID: "b", Section: "Technical", Text: "B?"},
	}
	added, err = s.ImportQuestions("b.json", "h2", second)
	if err != nil {
		t.Fatalf("ImportQuestions(b): %v", err)
	}
	if added != 1 {
		t.Errorf("added = %d, want 1", added)
	}

	list, _ := s.ListQuestions()
	if len(list) != 2 || list[0].Text != "A?" || list[1].ID != "b" {
		t.Errorf("unexpected library %+v", list)
	}
	if hash, _ := s.GetImportedFileHash("b.json"); hash != "h2" {
		t.Errorf("expected hash h2, got %q", hash)
	}
}

func TestFileDatabasePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.db")
	s, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	insertTestQuestion(t, s, "p1", model.SectionTechnical)
	s.Close()

	s, err = New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if count, _ := s.QuestionCount(); count != 1 {
		t.Errorf("expected 1 persisted question, got %d", count)
	}
}
