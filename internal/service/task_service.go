package service

import (
	"math/rand"

	"ui_review_backend/internal/repository"
	"ui_review_backend/internal/util"
)

// IntnSource is the random source behind task draws; math/rand in production,
// a fixed sequence in tests.
type IntnSource interface {
	Intn(n int) int
}

// globalIntn draws from math/rand's top-level source, which is safe for the
// concurrent request goroutines sharing one TaskService. A bare *rand.Rand
// is not.
type globalIntn struct{}

func (globalIntn) Intn(n int) int { return rand.Intn(n) }

// TaskService rotates a worker through a fixed pool of task numbers without
// repetition. The pool is injected so the submission flow (1..7) and the
// feedback pre-fetch flow (0..7) run as separately configured instances.
type TaskService struct {
	Repo *repository.SubmissionRepository
	pool []int
	rng  IntnSource
}

func NewTaskService(repo *repository.SubmissionRepository, pool []int, rng IntnSource) *TaskService {
	if rng == nil {
		rng = globalIntn{}
	}
	return &TaskService{Repo: repo, pool: pool, rng: rng}
}

// CompletedTasks returns the task numbers already recorded for the worker.
func (s *TaskService) CompletedTasks(workerID string) ([]int, error) {
	return s.Repo.CompletedTaskNumbers(workerID)
}

// AvailableTasks returns the pool minus the worker's completed tasks,
// preserving pool order.
func (s *TaskService) AvailableTasks(workerID string) ([]int, error) {
	completed, err := s.CompletedTasks(workerID)
	if err != nil {
		return nil, err
	}

	done := make(map[int]bool, len(completed))
	for _, n := range completed {
		done[n] = true
	}

	available := make([]int, 0, len(s.pool))
	for _, n := range s.pool {
		if !done[n] {
			available = append(available, n)
		}
	}
	return available, nil
}

// NextTaskNumber draws uniformly from the worker's available tasks. The pool
// only empties after a full run, so callers hitting ErrTaskPoolExhausted are
// scheduling beyond the designed study length.
func (s *TaskService) NextTaskNumber(workerID string) (int, error) {
	available, err := s.AvailableTasks(workerID)
	if err != nil {
		return 0, err
	}
	if len(available) == 0 {
		return 0, util.ErrTaskPoolExhausted
	}
	return available[s.rng.Intn(len(available))], nil
}

// ValidateTaskNumber accepts a client-proposed task number only while it is
// still in the worker's available pool, rejecting replays of completed tasks.
func (s *TaskService) ValidateTaskNumber(workerID string, taskNumber int) error {
	available, err := s.AvailableTasks(workerID)
	if err != nil {
		return err
	}
	for _, n := range available {
		if n == taskNumber {
			return nil
		}
	}
	return util.ErrInvalidTaskNumber
}
