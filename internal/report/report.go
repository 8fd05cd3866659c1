// Package report aggregates answer records into an interview summary.
package report

import (
	"github.com/pavelanni/interviewbot/internal/bank"
	"github.com/pavelanni/interviewbot/internal/model"
	"github.com/pavelanni/interviewbot/internal/scorer"
)

// Summarize builds the session report. Question scores are match ratios in
// percent; section and overall scores are weight-averaged question scores.
// Unanswered questions score 0. The result depends only on its inputs.
func Summarize(sessionID string, questions []model.Question, records []model.AnswerRecord, sc *scorer.Scorer) model.Report {
	byID := make(map[string]model.AnswerRecord, len(records))
	for _, r := range records {
		byID[r.QuestionID] = r
	}

	type acc struct {
		summary model.SectionSummary
		weight  float64
		sum     float64
	}
	sections := make(map[string]*acc)
	for _, s := range bank.Sections(questions) {
		sections[s] = &acc{summary: model.SectionSummary{Section: s}}
	}

	rep := model.Report{
		SessionID:    sessionID,
		Grading:      string(sc.Preset()),
		NumQuestions: len(questions),
	}
	var totalWeight, totalSum float64

	for i, q := range questions {
		qr := model.QuestionResult{
			Number:     i + 1,
			QuestionID: q.ID,
			Text:       q.Text,
			Section:    q.Section,
		}
		if rec, ok := byID[q.ID]; ok {
			qr.Answered = true
			qr.Answer = rec.Answer
			qr.Matched = rec.Matched
			qr.Possible = rec.Possible
			qr.MatchedKeys = rec.MatchedKeys
			qr.Score = rec.Ratio * 100
			qr.Tier = rec.Tier
		} else {
			empty := sc.Evaluate("", q.Keywords)
			qr.Possible = empty.Possible
			qr.Tier = empty.Tier
		}
		rep.Questions = append(rep.Questions, qr)

		w := q.EffectiveWeight()
		a := sections[q.Section]
		a.summary.NumQuestions++
		a.summary.Matched += qr.Matched
		a.summary.Possible += qr.Possible
		a.weight += w
		a.sum += w * qr.Score
		if qr.Answered {
			a.summary.NumAnswered++
			rep.NumAnswered++
		}

		rep.Matched += qr.Matched
		rep.Possible += qr.Possible
		totalWeight += w
		totalSum += w * qr.Score
	}

	for _, s := range bank.Sections(questions) {
		a := sections[s]
		if a.weight > 0 {
			a.summary.Score = a.sum / a.weight
		}
		a.summary.Tier = sc.TierForPercent(a.summary.Score)
		rep.Sections = append(rep.Sections, a.summary)
	}
	if totalWeight > 0 {
		rep.Score = totalSum / totalWeight
	}
	rep.Tier = sc.TierForPercent(rep.Score)
	return rep
}
