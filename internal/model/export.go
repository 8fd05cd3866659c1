package model

// Report is the read-only summary of an interview session.
type Report struct {
	SessionID    string           `json:"session_id"`
	Grading      string           `json:"grading"`
	NumQuestions int              `json:"num_questions"`
	NumAnswered  int              `json:"num_answered"`
	Matched      int              `json:"matched"`
	Possible     int              `json:"possible"`
	Score        float64          `json:"score"`
	Tier         Tier             `json:"tier"`
	Sections     []SectionSummary `json:"sections"`
	Questions    []QuestionResult `json:"questions"`
}

// SectionSummary holds aggregated results for one section.
type SectionSummary struct {
	Section      string  `json:"section"`
	NumQuestions int     `json:"num_questions"`
	NumAnswered  int     `json:"num_answered"`
	Matched      int     `json:"matched"`
	Possible     int     `json:"possible"`
	Score        float64 `json:"score"`
	Tier         Tier    `json:"tier"`
}

// QuestionResult holds per-question data for the report.
type QuestionResult struct {
	Number      int      `json:"number"`
	QuestionID  string   `json:"question_id"`
	Text        string   `json:"text"`
	Section     string   `json:"section"`
	Answered    bool     `json:"answered"`
	Answer      string   `json:"answer"`
	Matched     int      `json:"matched"`
	Possible    int      `json:"possible"`
	MatchedKeys []string `json:"matched_keywords,omitempty"`
	Score       float64  `json:"score"`
	Tier        Tier     `json:"tier"`
}
