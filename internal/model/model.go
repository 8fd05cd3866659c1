package model

import "time"

// Tier is a discrete feedback label derived from a keyword match ratio.
type Tier string

const (
	TierNeedsImprovement Tier = "needs_improvement"
	TierGood             Tier = "good"
	TierExcellent        Tier = "excellent"
)

// Common section labels used by the default question bank.
const (
	SectionTechnical = "Technical"
	SectionHR        = "HR"
)

// Question represents an interview question.
type Question struct {
	ID       string   `json:"id" yaml:"id"`
	Text     string   `json:"text" yaml:"text"`
	Section  string   `json:"section" yaml:"section"`
	Keywords []string `json:"keywords" yaml:"keywords"`
	Weight   float64  `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// EffectiveWeight returns the question weight, defaulting to 1.
func (q Question) EffectiveWeight() float64 {
	if q.Weight <= 0 {
		return 1
	}
	return q.Weight
}

// AnswerRecord holds the scored answer for one question in a session.
type AnswerRecord struct {
	QuestionID  string    `json:"question_id"`
	Section     string    `json:"section"`
	Answer      string    `json:"answer"`
	Matched     int       `json:"matched"`
	Possible    int       `json:"possible"`
	MatchedKeys []string  `json:"matched_keywords"`
	MissedKeys  []string  `json:"missed_keywords"`
	Ratio       float64   `json:"ratio"`
	Tier        Tier      `json:"tier"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// SectionTally is the running per-section total kept by a session.
type SectionTally struct {
	Section  string `json:"section"`
	Matched  int    `json:"matched"`
	Possible int    `json:"possible"`
	Answered int    `json:"answered"`
}

// InterviewConfig holds runtime interview parameters set via CLI flags.
// Quota holds Section=N entries and is empty for all questions. Seed 0 means
// random. Grading is strict, standard or lenient. Format is text, json or
// html, and an empty Output writes no report file.
type InterviewConfig struct {
	Quota   []string
	Shuffle bool
	Seed    uint64
	Grading string
	Lang    string
	NoColor bool
	Format  string
	Output  string
}

// QuestionImport is used for loading questions from JSON or YAML files.
type QuestionImport struct {
	ID       string   `json:"id" yaml:"id"`
	Text     string   `json:"text" yaml:"text"`
	Section  string   `json:"section" yaml:"section"`
	Keywords []string `json:"keywords" yaml:"keywords"`
	Weight   float64  `json:"weight" yaml:"weight"`
}
