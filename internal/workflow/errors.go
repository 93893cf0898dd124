package workflow

import "errors"

var (
	// ErrUnsupportedMedia indicates the selected document's media type is
	// not accepted by the grading service.
	ErrUnsupportedMedia = errors.New("unsupported document type")

	// ErrInvalidState indicates an operation was invoked from a workflow
	// step it is not legal in. This is a programming error, not a user
	// input problem.
	ErrInvalidState = errors.New("operation not valid in current workflow state")

	// ErrGateDenied indicates the anonymous free-attempt budget is spent.
	// Not a failure: callers redirect the user toward authentication.
	ErrGateDenied = errors.New("free grading attempts used up")
)
