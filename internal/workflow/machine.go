package workflow

import (
	"fmt"

	"github.com/emmafields/rubriq/internal/domain"
)

// StateMachine owns the grading workflow's step sequence and the data
// collected at each step. Steps only move forward; Reset returns to the
// start. A single instance serves one workflow run at a time.
type StateMachine struct {
	step       domain.WorkflowStep
	attachment *domain.Attachment
	rubric     *domain.RubricRef
	result     *domain.GradingResult
	pending    bool
	lastErr    error
}

// NewStateMachine creates a workflow in the initial Upload step.
func NewStateMachine() *StateMachine {
	return &StateMachine{step: domain.StepUpload}
}

func (m *StateMachine) Step() domain.WorkflowStep      { return m.step }
func (m *StateMachine) Attachment() *domain.Attachment { return m.attachment }
func (m *StateMachine) Rubric() *domain.RubricRef      { return m.rubric }
func (m *StateMachine) Result() *domain.GradingResult  { return m.result }
func (m *StateMachine) Pending() bool                  { return m.pending }
func (m *StateMachine) LastError() error               { return m.lastErr }

// SetAttachment stores the document and advances to rubric selection.
// Re-upload is allowed from any step; an unsupported media type leaves the
// machine unchanged.
func (m *StateMachine) SetAttachment(a *domain.Attachment) error {
	if a == nil || !domain.AllowedMediaTypes[a.MediaType] {
		mt := ""
		if a != nil {
			mt = a.MediaType
		}
		return fmt.Errorf("%w: %q (accepted: PDF, DOC, DOCX, plain text)", ErrUnsupportedMedia, mt)
	}
	m.attachment = a
	m.step = domain.StepSelectRubric
	m.lastErr = nil
	return nil
}

// SetRubric stores the chosen rubric and advances to review. Any rubric
// reference is acceptable, including the built-in default.
func (m *StateMachine) SetRubric(r domain.RubricRef) error {
	if m.attachment == nil {
		return fmt.Errorf("%w: no document selected", ErrInvalidState)
	}
	m.rubric = &r
	m.step = domain.StepReview
	m.lastErr = nil
	return nil
}

// BeginGrading marks the workflow pending. Legal only from the Review step
// with both document and rubric set.
func (m *StateMachine) BeginGrading() error {
	if m.step != domain.StepReview || m.attachment == nil || m.rubric == nil {
		return fmt.Errorf("%w: grading requires a reviewed document and rubric", ErrInvalidState)
	}
	m.pending = true
	m.lastErr = nil
	return nil
}

// CompleteWithResult records the grading result and ends the workflow.
func (m *StateMachine) CompleteWithResult(r *domain.GradingResult) {
	m.pending = false
	m.result = r
	m.lastErr = nil
	m.step = domain.StepResult
}

// CompleteWithError clears the pending flag and records the error. The step
// is left unchanged so collected input survives and the user can retry.
func (m *StateMachine) CompleteWithError(err error) {
	m.pending = false
	m.lastErr = err
}

// Reset returns to the initial state, discarding all collected data.
// Always legal.
func (m *StateMachine) Reset() {
	*m = StateMachine{step: domain.StepUpload}
}
