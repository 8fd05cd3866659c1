package bank

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/pavelanni/interviewbot/internal/model"
)

// SectionQuota is the number of questions drawn from one section.
// Count 0 means every question in the section.
type SectionQuota struct {
	Section string
	Count   int
}

// ParseQuota parses "Section=N" entries, e.g. "Technical=3". An entry
// without "=N" takes the whole section.
func ParseQuota(entries []string) ([]SectionQuota, error) {
	var quota []SectionQuota
	seen := make(map[string]bool)
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		section, countStr, hasCount := strings.Cut(e, "=")
		section = strings.TrimSpace(section)
		if section == "" {
			return nil, fmt.Errorf("quota %q: empty section", e)
		}
		count := 0
		if hasCount {
			n, err := strconv.Atoi(strings.TrimSpace(countStr))
			if err != nil {
				return nil, fmt.Errorf("quota %q: %w", e, err)
			}
			if n < 0 {
				return nil, fmt.Errorf("quota %q: count must not be negative", e)
			}
			count = n
		}
		key := strings.ToLower(section)
		if seen[key] {
			return nil, fmt.Errorf("quota %q: section listed twice", e)
		}
		seen[key] = true
		quota = append(quota, SectionQuota{Section: section, Count: count})
	}
	return quota, nil
}

// Select draws questions per section quota and interleaves the sections
// round-robin in quota order. With an empty quota every question is kept in
// bank order. A non-nil rng shuffles each section before drawing.
func Select(questions []model.Question, quota []SectionQuota, rng *rand.Rand) ([]model.Question, error) {
	if len(quota) == 0 {
		out := append([]model.Question(nil), questions...)
		if rng != nil {
			rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		}
		if len(out) == 0 {
			return nil, ErrNoQuestions
		}
		return out, nil
	}

	var groups [][]model.Question
	longest := 0
	for _, sq := range quota {
		var group []model.Question
		for _, q := range questions {
			if strings.EqualFold(q.Section, sq.Section) {
				group = append(group, q)
			}
		}
		if len(group) == 0 {
			slog.Warn("no questions for section, skipping", "section", sq.Section)
			continue
		}
		if rng != nil {
			rng.Shuffle(len(group), func(i, j int) { group[i], group[j] = group[j], group[i] })
		}
		if sq.Count > 0 && sq.Count < len(group) {
			group = group[:sq.Count]
		}
		groups = append(groups, group)
		longest = max(longest, len(group))
	}

	var out []model.Question
	for i := range longest {
		for _, group := range groups {
			if i < len(group) {
				out = append(out, group[i])
			}
		}
	}
	if len(out) == 0 {
		return nil, ErrNoQuestions
	}
	return out, nil
}
