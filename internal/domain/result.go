package domain

import "time"

// GradingResult is the structured outcome of a completed grading job.
// Immutable once produced.
type GradingResult struct {
	Score           float64
	Percentage      float64
	GradeLetter     string
	Feedback        string
	StudentName     string
	CompletedAt     *time.Time
	CriterionScores []CriterionScore
	FlaggedMistakes []FlaggedMistake
}

// CriterionScore is the per-criterion breakdown of a grading result, in the
// order the rubric defines.
type CriterionScore struct {
	Name          string
	PointsAwarded float64
	PointsMax     float64
	Feedback      string
}

// FlaggedMistake is a specific issue the grader identified in the document.
type FlaggedMistake struct {
	Description string
}
