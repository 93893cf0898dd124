package grader

import "errors"

var (
	// ErrUnavailable indicates a transport-level failure reaching the
	// grading service.
	ErrUnavailable = errors.New("grading service unreachable")

	// ErrSubmissionRejected indicates the service refused the grading
	// request without issuing a task id.
	ErrSubmissionRejected = errors.New("grading submission rejected")

	// ErrJobFailed indicates the service reported the grading job as failed.
	ErrJobFailed = errors.New("grading job failed")

	// ErrProtocolViolation indicates the service reported a job status
	// outside the documented set.
	ErrProtocolViolation = errors.New("unexpected job status")

	// ErrTimeout indicates the poll budget was exhausted while the job was
	// still processing.
	ErrTimeout = errors.New("grading is taking longer than expected")
)
