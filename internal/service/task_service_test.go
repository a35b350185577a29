package service

import (
	"sync"
	"testing"

	"ui_review_backend/internal/model"
	"ui_review_backend/internal/repository"
	"ui_review_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSubmission(t *testing.T, repo *repository.SubmissionRepository, workerID string, dayIdx int, taskNumber int) {
	t.Helper()
	require.NoError(t, repo.Create(&model.Submission{
		WorkerID:       workerID,
		DayIdx:         dayIdx,
		TaskNumber:     intPtr(taskNumber),
		Answer:         words(20),
		CompletionCode: "TESTCODE",
	}))
}

func TestAvailableTasksExcludesCompleted(t *testing.T) {
	repo := repository.NewSubmissionRepository(newTestDB(t))
	svc := NewTaskService(repo, []int{1, 2, 3, 4, 5, 6, 7}, &fixedIntn{})

	seedSubmission(t, repo, "w1", 0, 3)
	seedSubmission(t, repo, "w1", 1, 7)

	available, err := svc.AvailableTasks("w1")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4, 5, 6}, available)

	// another worker's history is invisible
	other, err := svc.AvailableTasks("w2")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, other)
}

func TestNextTaskNumberDrawsFromAvailable(t *testing.T) {
	repo := repository.NewSubmissionRepository(newTestDB(t))
	svc := NewTaskService(repo, []int{1, 2, 3}, &fixedIntn{vals: []int{1}})

	seedSubmission(t, repo, "w1", 0, 1)

	// available is [2 3]; scripted draw picks index 1
	next, err := svc.NextTaskNumber("w1")
	require.NoError(t, err)
	assert.Equal(t, 3, next)
}

func TestNextTaskNumberExhaustedPool(t *testing.T) {
	repo := repository.NewSubmissionRepository(newTestDB(t))
	svc := NewTaskService(repo, []int{1, 2}, &fixedIntn{})

	seedSubmission(t, repo, "w1", 0, 1)
	seedSubmission(t, repo, "w1", 1, 2)

	_, err := svc.NextTaskNumber("w1")
	assert.ErrorIs(t, err, util.ErrTaskPoolExhausted)
}

func TestValidateTaskNumber(t *testing.T) {
	repo := repository.NewSubmissionRepository(newTestDB(t))
	svc := NewTaskService(repo, []int{1, 2, 3}, &fixedIntn{})

	seedSubmission(t, repo, "w1", 0, 2)

	assert.NoError(t, svc.ValidateTaskNumber("w1", 1))
	// replay of a completed task
	assert.ErrorIs(t, svc.ValidateTaskNumber("w1", 2), util.ErrInvalidTaskNumber)
	// outside the pool entirely
	assert.ErrorIs(t, svc.ValidateTaskNumber("w1", 9), util.ErrInvalidTaskNumber)
}

func TestNextTaskNumberConcurrentDraws(t *testing.T) {
	repo := repository.NewSubmissionRepository(newTestDB(t))
	// default random source, shared by all request goroutines
	svc := NewTaskService(repo, []int{1, 2, 3, 4, 5, 6, 7}, nil)

	seedSubmission(t, repo, "w1", 0, 4)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	draws := make([]int, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			draws[i], errs[i] = svc.NextTaskNumber("w1")
		}(i)
	}
	wg.Wait()

	for i := range errs {
		require.NoError(t, errs[i])
		assert.Contains(t, []int{1, 2, 3, 5, 6, 7}, draws[i])
	}
}

func TestFeedbackPoolIncludesTaskZero(t *testing.T) {
	repo := repository.NewSubmissionRepository(newTestDB(t))
	svc := NewTaskService(repo, []int{0, 1, 2, 3, 4, 5, 6, 7}, &fixedIntn{})

	available, err := svc.AvailableTasks("w1")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, available)
}
