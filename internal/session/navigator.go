// Package session holds the in-memory state of one interview run.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pavelanni/interviewbot/internal/bank"
	"github.com/pavelanni/interviewbot/internal/model"
	"github.com/pavelanni/interviewbot/internal/report"
	"github.com/pavelanni/interviewbot/internal/scorer"
)

// Navigator walks an ordered list of questions and keeps at most one
// answer record per question. It is not safe for concurrent use.
type Navigator struct {
	id        string
	questions []model.Question
	scorer    *scorer.Scorer
	index     int
	records   []*model.AnswerRecord
	tally     map[string]*model.SectionTally
	answered  int
	now       func() time.Time
}

// New creates a navigator positioned at the first question.
func New(questions []model.Question, sc *scorer.Scorer) (*Navigator, error) {
	if len(questions) == 0 {
		return nil, bank.ErrNoQuestions
	}
	if sc == nil {
		return nil, errors.New("nil scorer")
	}
	seen := make(map[string]bool, len(questions))
	tally := make(map[string]*model.SectionTally)
	for _, q := range questions {
		if seen[q.ID] {
			return nil, fmt.Errorf("%w: %s", bank.ErrDuplicateID, q.ID)
		}
		seen[q.ID] = true
		if tally[q.Section] == nil {
			tally[q.Section] = &model.SectionTally{Section: q.Section}
		}
	}
	return &Navigator{
		id:        uuid.New().String(),
		questions: append([]model.Question(nil), questions...),
		scorer:    sc,
		records:   make([]*model.AnswerRecord, len(questions)),
		tally:     tally,
		now:       time.Now,
	}, nil
}

// ID returns the session identifier.
func (n *Navigator) ID() string { return n.id }

// Len returns the number of questions.
func (n *Navigator) Len() int { return len(n.questions) }

// Index returns the zero-based index of the current question.
func (n *Navigator) Index() int { return n.index }

// Questions returns a copy of the session questions in order.
func (n *Navigator) Questions() []model.Question {
	return append([]model.Question(nil), n.questions...)
}

// Current returns the question at the current index.
func (n *Navigator) Current() model.Question {
	return n.questions[n.index]
}

// Next moves to the following question. At the last question it does
// nothing and returns false.
func (n *Navigator) Next() bool {
	if n.index >= len(n.questions)-1 {
		return false
	}
	n.index++
	return true
}

// Previous moves to the preceding question. At the first question it does
// nothing and returns false.
func (n *Navigator) Previous() bool {
	if n.index == 0 {
		return false
	}
	n.index--
	return true
}

// Submit scores an answer for the current question and stores it,
// replacing any earlier record for that question. It does not advance.
func (n *Navigator) Submit(answer string) model.AnswerRecord {
	q := n.questions[n.index]
	res := n.scorer.Evaluate(answer, q.Keywords)

	rec := &model.AnswerRecord{
		QuestionID:  q.ID,
		Section:     q.Section,
		Answer:      answer,
		Matched:     res.Matched,
		Possible:    res.Possible,
		MatchedKeys: res.Hits,
		MissedKeys:  res.Misses,
		Ratio:       res.Ratio,
		Tier:        res.Tier,
		SubmittedAt: n.now(),
	}

	t := n.tally[q.Section]
	if old := n.records[n.index]; old != nil {
		t.Matched -= old.Matched
		t.Possible -= old.Possible
		t.Answered--
		n.answered--
		slog.Debug("replacing answer", "session", n.id, "question", q.ID)
	}
	t.Matched += rec.Matched
	t.Possible += rec.Possible
	t.Answered++
	n.answered++
	n.records[n.index] = rec

	slog.Debug("answer scored",
		"session", n.id,
		"question", q.ID,
		"matched", rec.Matched,
		"possible", rec.Possible,
		"tier", rec.Tier,
	)
	return *rec
}

// IsComplete reports whether every question has an answer record.
func (n *Navigator) IsComplete() bool {
	return n.answered == len(n.questions)
}

// Answered returns the number of questions with a record.
func (n *Navigator) Answered() int { return n.answered }

// Record returns the answer record for a question ID.
func (n *Navigator) Record(questionID string) (model.AnswerRecord, bool) {
	for i, q := range n.questions {
		if q.ID == questionID && n.records[i] != nil {
			return *n.records[i], true
		}
	}
	return model.AnswerRecord{}, false
}

// Records returns the stored answer records in question order.
func (n *Navigator) Records() []model.AnswerRecord {
	out := make([]model.AnswerRecord, 0, n.answered)
	for _, r := range n.records {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// Tally returns the running per-section totals in section order.
func (n *Navigator) Tally() []model.SectionTally {
	out := make([]model.SectionTally, 0, len(n.tally))
	for _, s := range bank.Sections(n.questions) {
		out = append(out, *n.tally[s])
	}
	return out
}

// Progress returns the share of answered questions in the range 0..1.
func (n *Navigator) Progress() float64 {
	return float64(n.answered) / float64(len(n.questions))
}

// Summary aggregates the current records into a report.
func (n *Navigator) Summary() model.Report {
	return report.Summarize(n.id, n.questions, n.Records(), n.scorer)
}
