package i18n

import (
	"context"
	"testing"

	"github.com/pavelanni/interviewbot/internal/model"
)

func initLang(t *testing.T, lang string) context.Context {
	t.Helper()
	if err := Init(lang); err != nil {
		t.Fatalf("Init(%q): %v", lang, err)
	}
	loc := NewLocalizer(lang)
	return WithLocalizer(context.Background(), loc)
}

func TestTranslateEnglish(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "AppTitle")
	if got != "Smart Interview Bot" {
		t.Errorf("T(AppTitle) = %q, want 'Smart Interview Bot'", got)
	}

	got = T(ctx, "SummaryTitle")
	if got != "Interview Summary" {
		t.Errorf("T(SummaryTitle) = %q, want 'Interview Summary'", got)
	}
}

func TestTranslateRussian(t *testing.T) {
	ctx := initLang(t, "ru")

	got := T(ctx, "SummaryTitle")
	if got != "Итоги собеседования" {
		t.Errorf("T(SummaryTitle) = %q, want 'Итоги собеседования'", got)
	}

	got = TierLabel(ctx, model.TierExcellent)
	if got != "Отлично" {
		t.Errorf("TierLabel(excellent) = %q, want 'Отлично'", got)
	}
}

func TestPluralTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	got1 := Tp(ctx, "QuestionsLoaded", 1)
	if got1 != "1 question loaded." {
		t.Errorf("Tp(QuestionsLoaded, 1) = %q, want '1 question loaded.'", got1)
	}

	got5 := Tp(ctx, "QuestionsLoaded", 5)
	if got5 != "5 questions loaded." {
		t.Errorf("Tp(QuestionsLoaded, 5) = %q, want '5 questions loaded.'", got5)
	}
}

func TestRussianPlural(t *testing.T) {
	ctx := initLang(t, "ru")

	tests := []struct {
		count int
		want  string
	}{
		{1, "Загружен 1 вопрос."},
		{3, "Загружено 3 вопроса."},
		{5, "Загружено 5 вопросов."},
	}
	for _, tt := range tests {
		if got := Tp(ctx, "QuestionsLoaded", tt.count); got != tt.want {
			t.Errorf("Tp(QuestionsLoaded, %d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}

func TestTemplateDataTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	got := Td(ctx, "QuestionN", map[string]any{"Number": 2, "Total": 5})
	if got != "Question 2/5" {
		t.Errorf("Td(QuestionN) = %q, want 'Question 2/5'", got)
	}
}

func TestTierMessages(t *testing.T) {
	ctx := initLang(t, "en")

	tests := []struct {
		tier     model.Tier
		label    string
		feedback string
	}{
		{model.TierNeedsImprovement, "Needs improvement", "Needs improvement - missing important points."},
		{model.TierGood, "Good", "Good - some important points present, add more details."},
		{model.TierExcellent, "Excellent", "Excellent - covered expected points!"},
		{model.Tier("bogus"), "Needs improvement", "Needs improvement - missing important points."},
	}
	for _, tt := range tests {
		if got := TierLabel(ctx, tt.tier); got != tt.label {
			t.Errorf("TierLabel(%q) = %q, want %q", tt.tier, got, tt.label)
		}
		if got := TierFeedback(ctx, tt.tier); got != tt.feedback {
			t.Errorf("TierFeedback(%q) = %q, want %q", tt.tier, got, tt.feedback)
		}
	}
}

func TestFallbackToInitLanguage(t *testing.T) {
	if err := Init("ru"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	got := T(context.Background(), "NoAnswer")
	if got != "(Нет ответа)" {
		t.Errorf("T without localizer = %q, want Russian fallback", got)
	}
}

func TestMissingKey(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "NonExistentKey")
	if got != "NonExistentKey" {
		t.Errorf("T(NonExistentKey) = %q, want 'NonExistentKey'", got)
	}
}

func TestInvalidLanguage(t *testing.T) {
	if err := Init("not a language!"); err == nil {
		t.Error("expected error for invalid language tag")
	}
}
