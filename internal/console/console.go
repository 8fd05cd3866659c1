// Package console is a line-oriented terminal surface for the interview
// runner.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	appI18n "github.com/pavelanni/interviewbot/internal/i18n"
	"github.com/pavelanni/interviewbot/internal/interview"
	"github.com/pavelanni/interviewbot/internal/model"
	"github.com/pavelanni/interviewbot/internal/report"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"

	barWidth    = 20
	maxLineSize = 1 << 20
	prompt      = "> "
)

type line struct {
	text string
	err  error
}

// Console reads commands and answers from in and writes to out.
type Console struct {
	in      io.Reader
	out     io.Writer
	noColor bool
	lines   chan line
}

// New creates a console surface. Set noColor to disable ANSI escapes.
func New(in io.Reader, out io.Writer, noColor bool) *Console {
	return &Console{in: in, out: out, noColor: noColor}
}

var _ interview.Surface = (*Console)(nil)

// ParseLine turns one input line into an action. Lines starting with ':'
// are commands; ok is false for an unknown command. A leading "::" submits
// the rest of the line with one ':' removed. Anything else, including a
// blank line, is an answer.
func ParseLine(s string) (act interview.Action, ok bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "::") {
		return interview.Action{Kind: interview.ActionSubmit, Answer: s[1:]}, true
	}
	if !strings.HasPrefix(s, ":") {
		return interview.Action{Kind: interview.ActionSubmit, Answer: s}, true
	}
	switch strings.ToLower(s) {
	case ":n", ":next":
		return interview.Action{Kind: interview.ActionNext}, true
	case ":p", ":prev", ":previous":
		return interview.Action{Kind: interview.ActionPrevious}, true
	case ":f", ":finish":
		return interview.Action{Kind: interview.ActionFinish}, true
	case ":q", ":quit":
		return interview.Action{Kind: interview.ActionQuit}, true
	case ":h", ":help", ":?":
		return interview.Action{Kind: interview.ActionHelp}, true
	}
	return interview.Action{}, false
}

// Welcome prints the title and the number of loaded questions.
func (c *Console) Welcome(ctx context.Context, count int) error {
	_, err := fmt.Fprintf(c.out, "%s\n%s\n",
		c.colorize(colorBold, appI18n.T(ctx, "AppTitle")),
		appI18n.Tp(ctx, "QuestionsLoaded", count),
	)
	return err
}

func (c *Console) RenderQuestion(ctx context.Context, s interview.Slide) error {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(c.colorize(colorBold, appI18n.Td(ctx, "QuestionN", map[string]any{
		"Number": s.Number,
		"Total":  s.Total,
	})))
	sb.WriteString("  " + progressBar(s.Answered, s.Total, barWidth) + "\n")
	sb.WriteString(c.colorize(colorCyan, appI18n.Td(ctx, "SectionLabel", map[string]any{"Section": s.Question.Section})) + "\n")
	sb.WriteString(s.Question.Text + "\n")
	if s.Record != nil {
		sb.WriteString(appI18n.Td(ctx, "PreviousAnswer", map[string]any{"Answer": s.Record.Answer}) + "\n")
	}
	sb.WriteString(appI18n.T(ctx, "AnswerPrompt") + "\n")
	_, err := io.WriteString(c.out, sb.String())
	return err
}

func (c *Console) RenderFeedback(ctx context.Context, rec model.AnswerRecord) error {
	var sb strings.Builder
	sb.WriteString(c.colorize(tierColor(rec.Tier), appI18n.TierFeedback(ctx, rec.Tier)) + "\n")
	if len(rec.MatchedKeys) > 0 {
		sb.WriteString(appI18n.Td(ctx, "MatchedKeywords", map[string]any{
			"Keywords": strings.Join(rec.MatchedKeys, ", "),
		}) + "\n")
	}
	_, err := io.WriteString(c.out, sb.String())
	return err
}

func (c *Console) RenderNotice(ctx context.Context, n interview.Notice) error {
	var msg string
	switch n.Kind {
	case interview.NoticeAtFirst:
		msg = appI18n.T(ctx, "AtFirstQuestion")
	case interview.NoticeAtLast:
		msg = appI18n.T(ctx, "AtLastQuestion")
	case interview.NoticeHelp:
		msg = appI18n.T(ctx, "Help")
	case interview.NoticeUnanswered:
		msg = c.colorize(colorYellow, appI18n.Tp(ctx, "UnansweredRemaining", n.Count))
	default:
		return nil
	}
	_, err := fmt.Fprintln(c.out, msg)
	return err
}

func (c *Console) RenderSummary(ctx context.Context, rep model.Report) error {
	if _, err := fmt.Fprintln(c.out); err != nil {
		return err
	}
	return report.WriteText(ctx, c.out, rep)
}

// NextAction prompts for a line and parses it. Unknown commands are
// reported and the prompt is repeated.
func (c *Console) NextAction(ctx context.Context) (interview.Action, error) {
	if c.lines == nil {
		c.lines = make(chan line)
		go c.readLines()
	}
	for {
		if _, err := io.WriteString(c.out, prompt); err != nil {
			return interview.Action{}, err
		}
		select {
		case <-ctx.Done():
			return interview.Action{}, ctx.Err()
		case l, open := <-c.lines:
			if !open {
				return interview.Action{}, io.EOF
			}
			if l.err != nil {
				return interview.Action{}, l.err
			}
			act, ok := ParseLine(l.text)
			if ok {
				return act, nil
			}
			msg := appI18n.Td(ctx, "UnknownCommand", map[string]any{"Command": strings.TrimSpace(l.text)})
			if _, err := fmt.Fprintln(c.out, c.colorize(colorRed, msg)); err != nil {
				return interview.Action{}, err
			}
		}
	}
}

// readLines feeds c.lines until the reader is exhausted. Scanning runs in
// its own goroutine so NextAction can return on context cancellation.
func (c *Console) readLines() {
	defer close(c.lines)
	sc := bufio.NewScanner(c.in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		c.lines <- line{text: sc.Text()}
	}
	if err := sc.Err(); err != nil {
		c.lines <- line{err: fmt.Errorf("read input: %w", err)}
	}
}

func (c *Console) colorize(color, text string) string {
	if c.noColor {
		return text
	}
	return color + text + colorReset
}

func tierColor(t model.Tier) string {
	switch t {
	case model.TierExcellent:
		return colorGreen
	case model.TierGood:
		return colorYellow
	default:
		return colorRed
	}
}

// progressBar renders e.g. "[#####---------------] 1/4".
func progressBar(done, total, width int) string {
	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	filled = min(max(filled, 0), width)
	return fmt.Sprintf("[%s%s] %d/%d",
		strings.Repeat("#", filled), strings.Repeat("-", width-filled), done, total)
}
