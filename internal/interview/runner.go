// Package interview drives a session through a display surface.
package interview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/pavelanni/interviewbot/internal/model"
	"github.com/pavelanni/interviewbot/internal/session"
)

// ActionKind is what the user asked the surface to do.
type ActionKind int

const (
	ActionSubmit ActionKind = iota
	ActionNext
	ActionPrevious
	ActionFinish
	ActionQuit
	ActionHelp
)

func (k ActionKind) String() string {
	switch k {
	case ActionSubmit:
		return "submit"
	case ActionNext:
		return "next"
	case ActionPrevious:
		return "previous"
	case ActionFinish:
		return "finish"
	case ActionQuit:
		return "quit"
	case ActionHelp:
		return "help"
	}
	return fmt.Sprintf("action(%d)", int(k))
}

// Action is one user input. Answer is only set for ActionSubmit.
type Action struct {
	Kind   ActionKind
	Answer string
}

// Slide is everything a surface needs to show the current question.
type Slide struct {
	Number   int
	Total    int
	Question model.Question
	Record   *model.AnswerRecord
	Answered int
	Progress float64
}

// NoticeKind identifies a short informational message.
type NoticeKind int

const (
	NoticeAtFirst NoticeKind = iota
	NoticeAtLast
	NoticeHelp
	NoticeUnanswered
)

// Notice is a message that is not tied to a slide. Count is used by
// NoticeUnanswered.
type Notice struct {
	Kind  NoticeKind
	Count int
}

// Surface renders the interview and reports user actions.
type Surface interface {
	RenderQuestion(ctx context.Context, s Slide) error
	RenderFeedback(ctx context.Context, rec model.AnswerRecord) error
	RenderNotice(ctx context.Context, n Notice) error
	RenderSummary(ctx context.Context, rep model.Report) error
	// NextAction blocks until the user acts. It returns io.EOF when
	// input is exhausted.
	NextAction(ctx context.Context) (Action, error)
}

// SlideOf builds the slide for the navigator's current question.
func SlideOf(nav *session.Navigator) Slide {
	q := nav.Current()
	s := Slide{
		Number:   nav.Index() + 1,
		Total:    nav.Len(),
		Question: q,
		Answered: nav.Answered(),
		Progress: nav.Progress(),
	}
	if rec, ok := nav.Record(q.ID); ok {
		s.Record = &rec
	}
	return s
}

// Run shows questions until the user finishes, quits or input ends. It
// returns the final report, or nil if the user quit. End of input counts
// as finishing.
func Run(ctx context.Context, nav *session.Navigator, s Surface) (*model.Report, error) {
	slog.Info("interview started", "session", nav.ID(), "questions", nav.Len())

	render := true
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if render {
			if err := s.RenderQuestion(ctx, SlideOf(nav)); err != nil {
				return nil, fmt.Errorf("render question: %w", err)
			}
			render = false
		}

		act, err := s.NextAction(ctx)
		if errors.Is(err, io.EOF) {
			slog.Debug("input closed, finishing", "session", nav.ID())
			return finish(ctx, nav, s)
		}
		if err != nil {
			return nil, fmt.Errorf("read action: %w", err)
		}

		switch act.Kind {
		case ActionSubmit:
			rec := nav.Submit(act.Answer)
			if err := s.RenderFeedback(ctx, rec); err != nil {
				return nil, fmt.Errorf("render feedback: %w", err)
			}
		case ActionNext:
			if nav.Next() {
				render = true
			} else if err := s.RenderNotice(ctx, Notice{Kind: NoticeAtLast}); err != nil {
				return nil, err
			}
		case ActionPrevious:
			if nav.Previous() {
				render = true
			} else if err := s.RenderNotice(ctx, Notice{Kind: NoticeAtFirst}); err != nil {
				return nil, err
			}
		case ActionHelp:
			if err := s.RenderNotice(ctx, Notice{Kind: NoticeHelp}); err != nil {
				return nil, err
			}
		case ActionFinish:
			return finish(ctx, nav, s)
		case ActionQuit:
			slog.Info("interview quit", "session", nav.ID(), "answered", nav.Answered())
			return nil, nil
		default:
			return nil, fmt.Errorf("unknown action %v", act.Kind)
		}
	}
}

func finish(ctx context.Context, nav *session.Navigator, s Surface) (*model.Report, error) {
	if remaining := nav.Len() - nav.Answered(); remaining > 0 {
		if err := s.RenderNotice(ctx, Notice{Kind: NoticeUnanswered, Count: remaining}); err != nil {
			return nil, err
		}
	}
	rep := nav.Summary()
	if err := s.RenderSummary(ctx, rep); err != nil {
		return nil, fmt.Errorf("render summary: %w", err)
	}
	slog.Info("interview finished",
		"session", nav.ID(),
		"answered", rep.NumAnswered,
		"score", rep.Score,
		"tier", rep.Tier,
	)
	return &rep, nil
}
