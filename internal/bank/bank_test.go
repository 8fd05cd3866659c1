package bank

import (
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pavelanni/interviewbot/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func sectionsOf(qs []model.Question) string {
	var parts []string
	for _, q := range qs {
		parts = append(parts, q.Section)
	}
	return strings.Join(parts, ",")
}

func TestDefault(t *testing.T) {
	qs, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(qs) != 6 {
		t.Fatalf("expected 6 questions, got %d", len(qs))
	}
	got := Sections(qs)
	if len(got) != 2 || got[0] != model.SectionTechnical || got[1] != model.SectionHR {
		t.Errorf("unexpected sections %v", got)
	}
	for _, q := range qs {
		if q.ID == "" || len(q.Keywords) == 0 {
			t.Errorf("incomplete question %+v", q)
		}
	}
}

func TestFromImports(t *testing.T) {
	t.Run("trims and derives IDs", func(t *testing.T) {
		qs, err := FromImports([]model.QuestionImport{
			{Text: "  Why Go? ", Section: " Technical ", Keywords: []string{" simple ", "", "fast"}},
		})
		if err != nil {
			t.Fatalf("FromImports: %v", err)
		}
		q := qs[0]
		if q.Text != "Why Go?" || q.Section != "Technical" {
			t.Errorf("fields not trimmed: %+v", q)
		}
		if len(q.Keywords) != 2 || q.Keywords[0] != "simple" {
			t.Errorf("unexpected keywords %v", q.Keywords)
		}
		if q.ID != DeriveID("Technical", "Why Go?") {
			t.Errorf("ID %q is not derived", q.ID)
		}
		if q.EffectiveWeight() != 1 {
			t.Errorf("expected default weight 1, got %v", q.EffectiveWeight())
		}
	})

	t.Run("derived IDs are stable and distinct", func(t *testing.T) {
		a := DeriveID("HR", "Tell me about yourself.")
		if a != DeriveID("HR", "Tell me about yourself.") {
			t.Error("DeriveID not deterministic")
		}
		if a == DeriveID("Technical", "Tell me about yourself.") {
			t.Error("section should change derived ID")
		}
	})

	tests := []struct {
		name    string
		in      []model.QuestionImport
		wantErr error
	}{
		{"empty", nil, ErrNoQuestions},
		{"no text", []model.QuestionImport{{Section: "HR", Keywords: []string{"x"}}}, ErrInvalidQuestion},
		{"no section", []model.QuestionImport{{Text: "Q", Keywords: []string{"x"}}}, ErrInvalidQuestion},
		{"no keywords", []model.QuestionImport{{Text: "Q", Section: "HR", Keywords: []string{" "}}}, ErrInvalidQuestion},
		{"negative weight", []model.QuestionImport{{Text: "Q", Section: "HR", Keywords: []string{"x"}, Weight: -1}}, ErrInvalidQuestion},
		{"duplicate id", []model.QuestionImport{
			{ID: "a", Text: "Q1", Section: "HR", Keywords: []string{"x"}},
			{ID: "a", Text: "Q2", Section: "HR", Keywords: []string{"y"}},
		}, ErrDuplicateID},
		{"duplicate derived id", []model.QuestionImport{
			{Text: "Q1", Section: "HR", Keywords: []string{"x"}},
			{Text: "Q1", Section: "HR", Keywords: []string{"y"}},
		}, ErrDuplicateID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromImports(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "tech.json", `[
		{"id": "t1", "section": "Technical", "text": "What is a goroutine?", "keywords": ["lightweight", "thread"]},
		{"id": "t2", "section": "Technical", "text": "What is a channel?", "keywords": ["conduit"], "weight": 2}
	]`)
	yamlPath := writeFile(t, dir, "hr.yaml", `
- id: h1
  section: HR
  text: Why do you want this job?
  keywords: [growth, team]
`)

	qs, err := LoadFiles(context.Background(), []string{jsonPath, yamlPath})
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	if len(qs) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(qs))
	}
	if qs[0].ID != "t1" || qs[1].ID != "t2" || qs[2].ID != "h1" {
		t.Errorf("questions not in path order: %s %s %s", qs[0].ID, qs[1].ID, qs[2].ID)
	}
	if qs[1].Weight != 2 {
		t.Errorf("expected weight 2, got %v", qs[1].Weight)
	}
	if len(qs[2].Keywords) != 2 {
		t.Errorf("YAML keywords not parsed: %v", qs[2].Keywords)
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFiles(context.Background(), []string{jsonPath, filepath.Join(dir, "nope.json")})
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected not-exist error, got %v", err)
		}
	})

	t.Run("bad JSON", func(t *testing.T) {
		bad := writeFile(t, dir, "bad.json", `{"not": "a list"}`)
		if _, err := LoadFiles(context.Background(), []string{bad}); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("duplicates across files", func(t *testing.T) {
		dup := writeFile(t, dir, "dup.yml", "- {id: t1, section: HR, text: Q, keywords: [x]}\n")
		if _, err := LoadFiles(context.Background(), []string{jsonPath, dup}); !errors.Is(err, ErrDuplicateID) {
			t.Errorf("expected ErrDuplicateID, got %v", err)
		}
	})

	t.Run("no paths", func(t *testing.T) {
		if _, err := LoadFiles(context.Background(), nil); !errors.Is(err, ErrNoQuestions) {
			t.Errorf("expected ErrNoQuestions, got %v", err)
		}
	})
}

func TestParseQuota(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []SectionQuota
		wantErr bool
	}{
		{"empty", nil, nil, false},
		{"pairs", []string{"Technical=3", " HR = 2 "}, []SectionQuota{{"Technical", 3}, {"HR", 2}}, false},
		{"whole section", []string{"HR"}, []SectionQuota{{"HR", 0}}, false},
		{"blank entries skipped", []string{"", "HR=1"}, []SectionQuota{{"HR", 1}}, false},
		{"not a number", []string{"HR=two"}, nil, true},
		{"negative", []string{"HR=-1"}, nil, true},
		{"empty section", []string{"=2"}, nil, true},
		{"repeated section", []string{"HR=1", "hr=2"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuota(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("entry %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSelect(t *testing.T) {
	qs, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	t.Run("no quota keeps bank order", func(t *testing.T) {
		got, err := Select(qs, nil, nil)
		if err != nil {
			t.Fatalf("Select: %v", err)
		}
		for i := range qs {
			if got[i].ID != qs[i].ID {
				t.Fatalf("order changed at %d", i)
			}
		}
	})

	t.Run("interleaves sections", func(t *testing.T) {
		got, err := Select(qs, []SectionQuota{{"Technical", 3}, {"HR", 2}}, nil)
		if err != nil {
			t.Fatalf("Select: %v", err)
		}
		if s := sectionsOf(got); s != "Technical,HR,Technical,HR,Technical" {
			t.Errorf("sections = %s", s)
		}
		if got[0].ID != "tech-list-tuple" || got[1].ID != "hr-about-yourself" {
			t.Errorf("unexpected first questions %s, %s", got[0].ID, got[1].ID)
		}
	})

	t.Run("quota order decides interleaving", func(t *testing.T) {
		got, _ := Select(qs, []SectionQuota{{"hr", 1}, {"technical", 2}}, nil)
		if s := sectionsOf(got); s != "HR,Technical,Technical" {
			t.Errorf("sections = %s", s)
		}
	})

	t.Run("zero count takes whole section", func(t *testing.T) {
		got, _ := Select(qs, []SectionQuota{{"HR", 0}}, nil)
		if len(got) != 3 {
			t.Errorf("expected 3 HR questions, got %d", len(got))
		}
	})

	t.Run("unknown section skipped", func(t *testing.T) {
		got, err := Select(qs, []SectionQuota{{"Design", 2}, {"HR", 1}}, nil)
		if err != nil || len(got) != 1 {
			t.Errorf("expected 1 question, got %d (err %v)", len(got), err)
		}
		if _, err := Select(qs, []SectionQuota{{"Design", 2}}, nil); !errors.Is(err, ErrNoQuestions) {
			t.Errorf("expected ErrNoQuestions, got %v", err)
		}
	})

	t.Run("shuffle is seeded and keeps sections", func(t *testing.T) {
		quota := []SectionQuota{{"Technical", 2}, {"HR", 2}}
		a, _ := Select(qs, quota, rand.New(rand.NewPCG(7, 7)))
		b, _ := Select(qs, quota, rand.New(rand.NewPCG(7, 7)))
		for i := range a {
			if a[i].ID != b[i].ID {
				t.Fatal("same seed should give same selection")
			}
		}
		if s := sectionsOf(a); s != "Technical,HR,Technical,HR" {
			t.Errorf("sections = %s", s)
		}
	})

	t.Run("does not modify input", func(t *testing.T) {
		before := qs[0].ID
		_, _ = Select(qs, nil, rand.New(rand.NewPCG(1, 2)))
		if qs[0].ID != before {
			t.Error("input slice was shuffled")
		}
	})
}
