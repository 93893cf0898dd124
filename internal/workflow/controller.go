package workflow

import (
	"context"
	"fmt"

	"github.com/emmafields/rubriq/internal/domain"
	"github.com/emmafields/rubriq/internal/grader"
)

// JobSubmitter is the slice of the grading client the controller needs.
type JobSubmitter interface {
	Submit(ctx context.Context, att *domain.Attachment, rubricID string) (*grader.JobHandle, error)
	AwaitCompletion(ctx context.Context, handle *grader.JobHandle) (*domain.GradingResult, error)
}

// AuthSignal answers whether the current identity is authenticated.
// The stored session token is the single authoritative source.
type AuthSignal interface {
	IsAuthenticated(ctx context.Context) bool
}

// Controller composes the gate, the state machine, and the grading client.
// It is the only mutator of the state machine during a grading run.
type Controller struct {
	machine *StateMachine
	gate    *UsageGate
	client  JobSubmitter
	auth    AuthSignal
}

// NewController wires a controller around one workflow instance.
func NewController(machine *StateMachine, gate *UsageGate, client JobSubmitter, auth AuthSignal) *Controller {
	return &Controller{machine: machine, gate: gate, client: client, auth: auth}
}

// Machine exposes the workflow state for display. Callers must not mutate
// it while a grading run is pending.
func (c *Controller) Machine() *StateMachine { return c.machine }

// SelectDocument validates and stores the document, advancing the workflow.
func (c *Controller) SelectDocument(a *domain.Attachment) error {
	return c.machine.SetAttachment(a)
}

// SelectRubric stores the rubric choice, advancing the workflow.
func (c *Controller) SelectRubric(r domain.RubricRef) error {
	return c.machine.SetRubric(r)
}

// Reset returns the workflow to the upload step. The trial usage counter is
// untouched.
func (c *Controller) Reset() {
	c.machine.Reset()
}

// StartGrading runs the full submission-and-polling sequence:
// gate check, attempt consumption for anonymous users, submission, polling,
// and terminal state recording.
//
// A second invocation while a run is pending is a no-op returning
// (nil, nil). Gate denial returns ErrGateDenied without mutating workflow
// state; the caller redirects to authentication. Every other error is
// recorded on the state machine with the step preserved, so the user can
// retry without re-entering prior steps. Cancelling ctx stops polling and
// leaves the counters untouched.
func (c *Controller) StartGrading(ctx context.Context) (*domain.GradingResult, error) {
	if c.machine.Pending() {
		return nil, nil
	}

	authed := c.auth.IsAuthenticated(ctx)
	ok, err := c.gate.CanAttempt(ctx, authed)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: sign in to keep grading", ErrGateDenied)
	}
	if !authed {
		consumed, err := c.gate.ConsumeAttempt(ctx)
		if err != nil {
			return nil, err
		}
		if !consumed {
			return nil, fmt.Errorf("%w: sign in to keep grading", ErrGateDenied)
		}
	}

	if err := c.machine.BeginGrading(); err != nil {
		return nil, err
	}

	rubricID := domain.DefaultRubricID
	if r := c.machine.Rubric(); r != nil {
		rubricID = r.ID
	}

	handle, err := c.client.Submit(ctx, c.machine.Attachment(), rubricID)
	if err != nil {
		c.machine.CompleteWithError(err)
		return nil, err
	}

	result, err := c.client.AwaitCompletion(ctx, handle)
	if err != nil {
		c.machine.CompleteWithError(err)
		return nil, err
	}

	c.machine.CompleteWithResult(result)
	return result, nil
}
