package service

import (
	"context"
	"time"

	"github.com/emmafields/rubriq/internal/grader"
	"github.com/emmafields/rubriq/internal/repository"
)

type rubricService struct {
	client  grader.JobClient
	rubrics repository.RubricRepo
	now     func() time.Time
}

// NewRubricService creates a RubricService backed by the grading service
// and a local cache.
func NewRubricService(client grader.JobClient, rubrics repository.RubricRepo) RubricService {
	return &rubricService{
		client:  client,
		rubrics: rubrics,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *rubricService) List(ctx context.Context) (*RubricList, error) {
	remote, err := s.client.ListRubrics(ctx)
	if err == nil {
		// Best-effort cache refresh; a write failure must not block grading.
		_ = s.rubrics.ReplaceAll(ctx, remote, s.now())
		return &RubricList{Rubrics: remote}, nil
	}

	cached, cacheErr := s.rubrics.List(ctx)
	if cacheErr != nil {
		return &RubricList{
			Degraded: true,
			Warning:  "could not fetch rubrics; only the standard rubric is available",
		}, nil
	}

	warning := "could not fetch rubrics; showing the standard rubric"
	if len(cached) > 0 {
		warning = "could not fetch rubrics; showing cached rubrics"
	}
	return &RubricList{Rubrics: cached, Degraded: true, Warning: warning}, nil
}
