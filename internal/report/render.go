package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	appI18n "github.com/pavelanni/interviewbot/internal/i18n"
	"github.com/pavelanni/interviewbot/internal/model"
)

// Format is a report output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatHTML:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown report format %q (want text, json or html)", s)
}

// Write renders the report in the given format.
func Write(ctx context.Context, w io.Writer, f Format, rep model.Report) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, rep)
	case FormatHTML:
		return HTML(rep).Render(ctx, w)
	default:
		return WriteText(ctx, w, rep)
	}
}

// WriteJSON writes the report as indented JSON with a trailing newline.
func WriteJSON(w io.Writer, rep model.Report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// WriteText writes the localized plain-text summary.
func WriteText(ctx context.Context, w io.Writer, rep model.Report) error {
	var sb strings.Builder
	line := func(s string) { sb.WriteString(s + "\n") }

	line(appI18n.T(ctx, "SummaryTitle"))
	line(totalLine(ctx, rep))
	line(appI18n.Td(ctx, "OverallTier", map[string]any{"Tier": appI18n.TierLabel(ctx, rep.Tier)}))
	line("")
	for _, s := range rep.Sections {
		line(sectionLine(ctx, s))
	}
	line("")
	line(appI18n.T(ctx, "DetailedAnswers"))
	for _, q := range rep.Questions {
		line(appI18n.Td(ctx, "QuestionDetail", map[string]any{
			"Number":  q.Number,
			"Section": q.Section,
			"Text":    q.Text,
		}))
		line("  " + appI18n.Td(ctx, "YourAnswer", map[string]any{"Answer": answerText(ctx, q)}))
		line("  " + questionScoreLine(ctx, q))
		line("")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// HTML returns a standalone HTML page for the report.
func HTML(rep model.Report) templ.Component {
	return reportPage(rep)
}

func totalLine(ctx context.Context, rep model.Report) string {
	return appI18n.Td(ctx, "TotalScore", map[string]any{
		"Matched":  rep.Matched,
		"Possible": rep.Possible,
		"Score":    FormatScore(rep.Score),
	})
}

func sectionLine(ctx context.Context, s model.SectionSummary) string {
	return appI18n.Td(ctx, "SectionScore", map[string]any{
		"Section":  s.Section,
		"Matched":  s.Matched,
		"Possible": s.Possible,
		"Score":    FormatScore(s.Score),
		"Tier":     appI18n.TierLabel(ctx, s.Tier),
	})
}

func questionScoreLine(ctx context.Context, q model.QuestionResult) string {
	return appI18n.Td(ctx, "QuestionScore", map[string]any{
		"Matched":  q.Matched,
		"Possible": q.Possible,
		"Tier":     appI18n.TierLabel(ctx, q.Tier),
	})
}

// answerText returns the trimmed answer or the localized placeholder.
func answerText(ctx context.Context, q model.QuestionResult) string {
	answer := strings.TrimSpace(q.Answer)
	if !q.Answered || answer == "" {
		return appI18n.T(ctx, "NoAnswer")
	}
	return answer
}

func matchedLine(ctx context.Context, keys []string) string {
	return appI18n.Td(ctx, "MatchedKeywords", map[string]any{"Keywords": strings.Join(keys, ", ")})
}

// FormatScore rounds a percentage to one decimal and drops a trailing ".0".
func FormatScore(p float64) string {
	return strconv.FormatFloat(math.Round(p*10)/10, 'f', -1, 64)
}
