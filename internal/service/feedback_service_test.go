package service

import (
	"testing"

	"ui_review_backend/internal/model"
	"ui_review_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feedbackFixture struct {
	svc          *FeedbackService
	subs         *repository.SubmissionRepository
	participants *repository.ParticipantRepository
}

func newFeedbackFixture(t *testing.T, dayIdx int) *feedbackFixture {
	t.Helper()

	db := newTestDB(t)
	cfg := testConfig()
	subs := repository.NewSubmissionRepository(db)
	participants := repository.NewParticipantRepository(db)
	tasks := NewTaskService(subs, cfg.Study.FeedbackTaskPool(), &fixedIntn{})
	svc := NewFeedbackService(subs, participants, tasks, testClock(t, dayIdx), cfg, nil)
	return &feedbackFixture{svc: svc, subs: subs, participants: participants}
}

func (f *feedbackFixture) seedParticipant(t *testing.T, workerID string, order, cond int) {
	t.Helper()
	require.NoError(t, f.participants.Create(&model.Participant{
		WorkerID:         workerID,
		ParticipantOrder: order,
		Cond:             cond,
	}))
}

func (f *feedbackFixture) seedScored(t *testing.T, workerID string, dayIdx, taskNumber int, scoreA, scoreB *int, feedback *string) {
	t.Helper()
	sub := &model.Submission{
		WorkerID:       workerID,
		DayIdx:         dayIdx,
		TaskNumber:     intPtr(taskNumber),
		Answer:         words(20),
		ScoreA:         scoreA,
		ScoreB:         scoreB,
		Feedback:       feedback,
		CompletionCode: "TESTCODE",
	}
	require.NoError(t, f.subs.Create(sub))
}

func strPtr(s string) *string { return &s }

func TestPreviousSubmissionFirstDay(t *testing.T) {
	f := newFeedbackFixture(t, 0)

	prev, err := f.svc.PreviousSubmission("w1")
	require.NoError(t, err)

	assert.Nil(t, prev.Feedback)
	assert.Nil(t, prev.ScoreA)
	assert.Nil(t, prev.ScoreSum)
	assert.Nil(t, prev.DayIdx)
	require.NotNil(t, prev.NextTaskNumber)
	assert.Contains(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, *prev.NextTaskNumber)
}

func TestPreviousSubmissionYesterday(t *testing.T) {
	f := newFeedbackFixture(t, 2)
	f.seedScored(t, "w1", 1, 3, intPtr(6), intPtr(2), strPtr("solid catch on the contrast issue"))

	prev, err := f.svc.PreviousSubmission("w1")
	require.NoError(t, err)

	require.NotNil(t, prev.DayIdx)
	assert.Equal(t, 1, *prev.DayIdx)
	require.NotNil(t, prev.ScoreSum)
	assert.Equal(t, 8, *prev.ScoreSum)
	require.NotNil(t, prev.Feedback)
	assert.Equal(t, "solid catch on the contrast issue", *prev.Feedback)
	require.NotNil(t, prev.TaskNumber)
	assert.Equal(t, 3, *prev.TaskNumber)
	assert.NotNil(t, prev.NextTaskNumber)
}

func TestPreviousSubmissionFallsBackToLatest(t *testing.T) {
	// worker skipped day 2; on day 3 the feedback shows day 1
	f := newFeedbackFixture(t, 3)
	f.seedScored(t, "w1", 0, 1, intPtr(4), nil, nil)
	f.seedScored(t, "w1", 1, 5, intPtr(7), nil, nil)

	prev, err := f.svc.PreviousSubmission("w1")
	require.NoError(t, err)

	require.NotNil(t, prev.DayIdx)
	assert.Equal(t, 1, *prev.DayIdx)
	require.NotNil(t, prev.ScoreSum)
	assert.Equal(t, 7, *prev.ScoreSum)
}

func TestPreviousSubmissionUngraded(t *testing.T) {
	f := newFeedbackFixture(t, 1)
	f.seedScored(t, "w1", 0, 2, nil, nil, nil)

	prev, err := f.svc.PreviousSubmission("w1")
	require.NoError(t, err)

	require.NotNil(t, prev.DayIdx)
	assert.Nil(t, prev.ScoreA)
	assert.Nil(t, prev.ScoreSum)
}

func TestWorkerConditionWithoutRedis(t *testing.T) {
	f := newFeedbackFixture(t, 0)
	f.seedParticipant(t, "w1", 1, 2)

	cond, err := f.svc.WorkerCondition("w1")
	require.NoError(t, err)
	require.NotNil(t, cond)
	assert.Equal(t, 2, *cond)

	unknown, err := f.svc.WorkerCondition("ghost")
	require.NoError(t, err)
	assert.Nil(t, unknown)
}

func TestYesterdayHistogram(t *testing.T) {
	f := newFeedbackFixture(t, 1)
	f.seedParticipant(t, "w1", 1, 2)
	f.seedParticipant(t, "w2", 2, 2)
	f.seedParticipant(t, "w3", 3, 1)

	f.seedScored(t, "w1", 0, 1, intPtr(7), nil, nil)
	f.seedScored(t, "w2", 0, 2, intPtr(7), nil, nil)
	// different condition, must not leak into the histogram
	f.seedScored(t, "w3", 0, 3, intPtr(9), nil, nil)

	hist, err := f.svc.YesterdayHistogram("w1")
	require.NoError(t, err)
	require.NotNil(t, hist)
	require.Len(t, hist.Bins, 11)

	assert.Equal(t, 2, hist.Bins[7].Count)
	assert.True(t, hist.Bins[7].IsOwnBin)
	assert.Equal(t, 0, hist.Bins[9].Count)
	require.NotNil(t, hist.WorkerScore)
	assert.Equal(t, 7, *hist.WorkerScore)
}

func TestYesterdayHistogramFirstDay(t *testing.T) {
	f := newFeedbackFixture(t, 0)
	f.seedParticipant(t, "w1", 1, 2)

	hist, err := f.svc.YesterdayHistogram("w1")
	require.NoError(t, err)
	assert.Nil(t, hist)
}

func TestYesterdayHistogramUnknownWorker(t *testing.T) {
	f := newFeedbackFixture(t, 3)

	hist, err := f.svc.YesterdayHistogram("ghost")
	require.NoError(t, err)
	assert.Nil(t, hist)
}

func TestYesterdayGoalProgress(t *testing.T) {
	f := newFeedbackFixture(t, 2)
	f.seedParticipant(t, "w1", 1, 2)
	f.seedParticipant(t, "w2", 2, 2)
	f.seedParticipant(t, "w3", 3, 1)

	f.seedScored(t, "w1", 0, 1, intPtr(7), nil, nil) // meets threshold
	f.seedScored(t, "w1", 1, 2, intPtr(8), nil, nil) // meets threshold
	f.seedScored(t, "w2", 0, 3, intPtr(6), nil, nil) // below
	f.seedScored(t, "w3", 0, 4, intPtr(9), nil, nil) // other condition
	// today's submission is excluded until tomorrow
	f.seedScored(t, "w2", 2, 5, intPtr(10), nil, nil)

	goal, err := f.svc.YesterdayGoalProgress("w1")
	require.NoError(t, err)
	require.NotNil(t, goal)
	assert.Equal(t, 2, goal.Current)
	assert.Equal(t, 80, goal.Target)
	assert.Equal(t, 7, goal.Threshold)
}

func TestYesterdayGoalProgressFirstDay(t *testing.T) {
	f := newFeedbackFixture(t, 0)
	f.seedParticipant(t, "w1", 1, 1)

	goal, err := f.svc.YesterdayGoalProgress("w1")
	require.NoError(t, err)
	assert.Nil(t, goal)
}
