package testutil

import (
	"time"

	"github.com/emmafields/rubriq/internal/domain"
	"github.com/google/uuid"
)

// NewPDFAttachment builds a valid PDF attachment for tests.
func NewPDFAttachment(filename string) *domain.Attachment {
	return &domain.Attachment{
		ID:        uuid.NewString(),
		Filename:  filename,
		MediaType: "application/pdf",
		Data:      []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n"),
	}
}

// NewRubric builds a rubric with two criteria.
func NewRubric(id, name string) *domain.Rubric {
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Rubric{
		ID:          id,
		Name:        name,
		Description: "fixture rubric",
		Criteria: []domain.RubricCriterion{
			{Name: "Structure", Description: "organization and flow", MaxPoints: 30},
			{Name: "Evidence", Description: "use of sources", MaxPoints: 70},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewGradingResult builds a completed grading result.
func NewGradingResult(score float64, letter string) *domain.GradingResult {
	completed := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	return &domain.GradingResult{
		Score:       score,
		Percentage:  score,
		GradeLetter: letter,
		Feedback:    "Solid work overall.",
		CompletedAt: &completed,
		CriterionScores: []domain.CriterionScore{
			{Name: "Structure", PointsAwarded: 28, PointsMax: 30, Feedback: "well organized"},
			{Name: "Evidence", PointsAwarded: score - 28, PointsMax: 70},
		},
	}
}
