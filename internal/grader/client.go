package grader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/emmafields/rubriq/internal/domain"
)

// JobHandle identifies a grading job accepted by the service.
type JobHandle struct {
	TaskID string
}

// JobClient talks to the remote grading service: submits documents, polls
// job status, and fetches the rubric list.
type JobClient interface {
	// Submit sends the attachment and rubric id to the grading endpoint.
	// Succeeds only when the service acknowledges with a task id.
	Submit(ctx context.Context, att *domain.Attachment, rubricID string) (*JobHandle, error)

	// AwaitCompletion polls the job at a fixed interval until it completes,
	// fails, or the poll budget is exhausted.
	AwaitCompletion(ctx context.Context, handle *JobHandle) (*domain.GradingResult, error)

	// ListRubrics fetches the rubrics available on the service.
	ListRubrics(ctx context.Context) ([]*domain.Rubric, error)

	// Available checks whether the grading service is reachable.
	Available(ctx context.Context) bool
}

// httpClient implements JobClient against the grading service HTTP API.
type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewHTTPClient creates a JobClient for the configured grading service.
func NewHTTPClient(cfg Config, observer Observer) JobClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
		cfg:      cfg,
		http:     &http.Client{},
		observer: observer,
		sleep:    sleepContext,
	}
}

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// submitResponse is the JSON body returned by POST /api/grade.
type submitResponse struct {
	Status  string `json:"status"`
	TaskID  string `json:"task_id"`
	Message string `json:"message"`
}

// statusResponse is the JSON body returned by GET /api/grade/{task_id}.
type statusResponse struct {
	Status         string               `json:"status"`
	Message        string               `json:"message"`
	Score          float64              `json:"score"`
	Percentage     float64              `json:"percentage"`
	GradeLetter    string               `json:"grade_letter"`
	Feedback       string               `json:"feedback"`
	StudentName    string               `json:"student_name"`
	CompletedAt    string               `json:"completed_at"`
	CriteriaScores []criterionScoreWire `json:"criteria_scores"`
	Mistakes       []string             `json:"mistakes"`
}

type criterionScoreWire struct {
	Name          string  `json:"name"`
	PointsAwarded float64 `json:"points_awarded"`
	PointsMax     float64 `json:"points_max"`
	Feedback      string  `json:"feedback"`
}

// rubricsResponse is the JSON body returned by GET /api/rubrics.
type rubricsResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Rubrics []rubricWire `json:"rubrics"`
}

type rubricWire struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Criteria    []criterionWire `json:"criteria"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

type criterionWire struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxPoints   int    `json:"max_points"`
}

func (c *httpClient) Submit(ctx context.Context, att *domain.Attachment, rubricID string) (*JobHandle, error) {
	start := time.Now()
	if rubricID == "" {
		rubricID = domain.DefaultRubricID
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.SubmitTimeoutMs)*time.Millisecond)
	defer cancel()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", att.Filename)
	if err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := part.Write(att.Data); err != nil {
		return nil, fmt.Errorf("writing attachment: %w", err)
	}
	if err := mw.WriteField("rubric_id", rubricID); err != nil {
		return nil, fmt.Errorf("writing rubric_id field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing multipart body: %w", err)
	}

	url := c.cfg.Endpoint + "/api/grade"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	httpResp, err := c.http.Do(req)
	if err != nil {
		c.observe("submit", "", start, ErrUnavailable)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		c.observe("submit", "", start, ErrUnavailable)
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	var resp submitResponse
	if jsonErr := json.Unmarshal(respBody, &resp); jsonErr != nil && httpResp.StatusCode == http.StatusOK {
		c.observe("submit", "", start, ErrSubmissionRejected)
		return nil, fmt.Errorf("%w: decoding response: %v", ErrSubmissionRejected, jsonErr)
	}

	if httpResp.StatusCode != http.StatusOK || resp.Status != "success" || resp.TaskID == "" {
		msg := resp.Message
		if msg == "" {
			msg = fmt.Sprintf("service returned status %d", httpResp.StatusCode)
		}
		c.observe("submit", "", start, ErrSubmissionRejected)
		return nil, fmt.Errorf("%w: %s", ErrSubmissionRejected, msg)
	}

	c.observe("submit", resp.TaskID, start, nil)
	return &JobHandle{TaskID: resp.TaskID}, nil
}

func (c *httpClient) AwaitCompletion(ctx context.Context, handle *JobHandle) (*domain.GradingResult, error) {
	interval := time.Duration(c.cfg.PollIntervalMs) * time.Millisecond

	for attempt := 1; ; attempt++ {
		start := time.Now()
		resp, err := c.pollOnce(ctx, handle.TaskID)
		if err != nil {
			// Transport errors propagate immediately; only a processing
			// status triggers another poll.
			c.observe("poll", handle.TaskID, start, ErrUnavailable)
			return nil, err
		}

		switch domain.JobStatus(resp.Status) {
		case domain.JobCompleted:
			c.observe("poll", handle.TaskID, start, nil)
			return resultFromStatus(resp), nil

		case domain.JobFailed:
			c.observe("poll", handle.TaskID, start, ErrJobFailed)
			msg := resp.Message
			if msg == "" {
				msg = "the grading service could not grade this document"
			}
			return nil, fmt.Errorf("%w: %s", ErrJobFailed, msg)

		case domain.JobProcessing:
			c.observe("poll", handle.TaskID, start, nil)
			if attempt >= c.cfg.MaxPolls {
				return nil, ErrTimeout
			}
			if err := c.sleep(ctx, interval); err != nil {
				return nil, err
			}

		default:
			c.observe("poll", handle.TaskID, start, ErrProtocolViolation)
			return nil, fmt.Errorf("%w: %q", ErrProtocolViolation, resp.Status)
		}
	}
}

func (c *httpClient) pollOnce(ctx context.Context, taskID string) (*statusResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.StatusTimeoutMs)*time.Millisecond)
	defer cancel()

	url := c.cfg.Endpoint + "/api/grade/" + taskID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: service returned status %d", ErrUnavailable, httpResp.StatusCode)
	}

	var resp statusResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	return &resp, nil
}

func resultFromStatus(resp *statusResponse) *domain.GradingResult {
	result := &domain.GradingResult{
		Score:       resp.Score,
		Percentage:  resp.Percentage,
		GradeLetter: resp.GradeLetter,
		Feedback:    resp.Feedback,
		StudentName: resp.StudentName,
	}
	if resp.CompletedAt != "" {
		if t, err := time.Parse(time.RFC3339, resp.CompletedAt); err == nil {
			result.CompletedAt = &t
		}
	}
	for _, cs := range resp.CriteriaScores {
		result.CriterionScores = append(result.CriterionScores, domain.CriterionScore{
			Name:          cs.Name,
			PointsAwarded: cs.PointsAwarded,
			PointsMax:     cs.PointsMax,
			Feedback:      cs.Feedback,
		})
	}
	for _, m := range resp.Mistakes {
		result.FlaggedMistakes = append(result.FlaggedMistakes, domain.FlaggedMistake{Description: m})
	}
	return result
}

func (c *httpClient) ListRubrics(ctx context.Context) ([]*domain.Rubric, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.StatusTimeoutMs)*time.Millisecond)
	defer cancel()

	url := c.cfg.Endpoint + "/api/rubrics"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		c.observe("rubrics", "", start, ErrUnavailable)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		c.observe("rubrics", "", start, ErrUnavailable)
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}
	if httpResp.StatusCode != http.StatusOK {
		c.observe("rubrics", "", start, ErrUnavailable)
		return nil, fmt.Errorf("%w: service returned status %d", ErrUnavailable, httpResp.StatusCode)
	}

	var resp rubricsResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		c.observe("rubrics", "", start, ErrUnavailable)
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	if resp.Status != "success" {
		c.observe("rubrics", "", start, ErrUnavailable)
		msg := resp.Message
		if msg == "" {
			msg = "rubric list request failed"
		}
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, msg)
	}

	rubrics := make([]*domain.Rubric, 0, len(resp.Rubrics))
	for _, rw := range resp.Rubrics {
		rubrics = append(rubrics, rubricFromWire(rw))
	}
	c.observe("rubrics", "", start, nil)
	return rubrics, nil
}

func rubricFromWire(rw rubricWire) *domain.Rubric {
	r := &domain.Rubric{
		ID:          rw.ID,
		Name:        rw.Name,
		Description: rw.Description,
	}
	if t, err := time.Parse(time.RFC3339, rw.CreatedAt); err == nil {
		r.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, rw.UpdatedAt); err == nil {
		r.UpdatedAt = t
	}
	for _, cw := range rw.Criteria {
		r.Criteria = append(r.Criteria, domain.RubricCriterion{
			Name:        cw.Name,
			Description: cw.Description,
			MaxPoints:   cw.MaxPoints,
		})
	}
	return r
}

func (c *httpClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"/api/rubrics", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *httpClient) observe(op, taskID string, start time.Time, callErr error) {
	c.observer.OnCallComplete(CallEvent{
		Op:        op,
		TaskID:    taskID,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   callErr == nil,
		ErrorCode: errorCode(callErr),
	})
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrSubmissionRejected):
		return "REJECTED"
	case errors.Is(err, ErrJobFailed):
		return "JOB_FAILED"
	case errors.Is(err, ErrProtocolViolation):
		return "PROTOCOL"
	default:
		return "UNKNOWN"
	}
}
