package domain

import "time"

// DefaultRubricID is the sentinel rubric identifier understood by the
// grading service when no custom rubric was chosen.
const DefaultRubricID = "default"

// RubricRef identifies a rubric chosen for a workflow run. Immutable once
// selected.
type RubricRef struct {
	ID   string
	Name string
}

// DefaultRubricRef returns the built-in rubric reference. Always available,
// even when the rubric list cannot be fetched.
func DefaultRubricRef() RubricRef {
	return RubricRef{ID: DefaultRubricID, Name: "Standard Rubric"}
}

// Rubric is a full rubric definition as served by the grading service.
type Rubric struct {
	ID          string
	Name        string
	Description string
	Criteria    []RubricCriterion
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type RubricCriterion struct {
	Name        string
	Description string
	MaxPoints   int
}

// Ref returns the selection reference for this rubric.
func (r *Rubric) Ref() RubricRef {
	return RubricRef{ID: r.ID, Name: r.Name}
}
