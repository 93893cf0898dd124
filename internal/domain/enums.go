package domain

// WorkflowStep identifies the current stage of the grading workflow.
type WorkflowStep int

const (
	StepUpload WorkflowStep = iota
	StepSelectRubric
	StepReview
	StepResult
)

func (s WorkflowStep) String() string {
	switch s {
	case StepUpload:
		return "upload"
	case StepSelectRubric:
		return "select_rubric"
	case StepReview:
		return "review"
	case StepResult:
		return "result"
	default:
		return "unknown"
	}
}

// JobStatus is the state a poll of the grading service can report. Anything
// outside this set is a protocol violation.
type JobStatus string

const (
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// AllowedMediaTypes is the canonical set of attachment media types the
// grading service accepts. Enforced client-side before submission.
var AllowedMediaTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
}
