package scorer

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/pavelanni/interviewbot/internal/model"
)

const (
	// maxAnswerRunes caps the answer length considered for matching.
	maxAnswerRunes = 10000
	// epsilon absorbs rounding in weighted averages.
	epsilon = 1e-9
)

// Result is the outcome of scoring one answer against a keyword set.
type Result struct {
	Matched  int
	Possible int
	Hits     []string
	Misses   []string
	Ratio    float64
	Tier     model.Tier
}

// Scorer matches answers against expected keywords and maps the match
// ratio to a feedback tier.
type Scorer struct {
	thresholds Thresholds
	preset     Preset
}

// New creates a scorer for the given grading preset.
func New(p Preset) (*Scorer, error) {
	th, err := ThresholdsFor(p)
	if err != nil {
		return nil, err
	}
	return &Scorer{thresholds: th, preset: p}, nil
}

// NewWithThresholds creates a scorer with explicit thresholds.
func NewWithThresholds(th Thresholds) (*Scorer, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{thresholds: th, preset: PresetCustom}, nil
}

// Preset returns the grading preset the scorer was built with.
func (s *Scorer) Preset() Preset {
	return s.preset
}

// Thresholds returns the tier thresholds in use.
func (s *Scorer) Thresholds() Thresholds {
	return s.thresholds
}

// Evaluate scores an answer by case-insensitive containment of each keyword.
// Keywords that fold to the same text are counted once.
func (s *Scorer) Evaluate(answer string, keywords []string) Result {
	fold := cases.Fold()
	text := normalize(fold.String(truncate(answer)))

	seen := make(map[string]bool, len(keywords))
	res := Result{}
	for _, kw := range keywords {
		key := normalize(fold.String(kw))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		res.Possible++
		if text != "" && strings.Contains(text, key) {
			res.Matched++
			res.Hits = append(res.Hits, kw)
		} else {
			res.Misses = append(res.Misses, kw)
		}
	}

	if res.Possible > 0 {
		res.Ratio = float64(res.Matched) / float64(res.Possible)
	}
	res.Tier = s.tierFor(res.Ratio)
	return res
}

// TierForPercent maps an aggregate score in the range 0..100 to a tier.
func (s *Scorer) TierForPercent(p float64) model.Tier {
	return s.tierFor(p / 100)
}

func (s *Scorer) tierFor(ratio float64) model.Tier {
	switch {
	case ratio+epsilon >= s.thresholds.Excellent:
		return model.TierExcellent
	case ratio > 0 && ratio+epsilon >= s.thresholds.Good:
		return model.TierGood
	default:
		return model.TierNeedsImprovement
	}
}

// normalize collapses runs of whitespace into single spaces.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(answer string) string {
	if utf8.RuneCountInString(answer) <= maxAnswerRunes {
		return answer
	}
	runes := []rune(answer)
	return string(runes[:maxAnswerRunes])
}
