package service

import (
	"errors"
	"fmt"
	"strings"

	"ui_review_backend/internal/config"
	"ui_review_backend/internal/model"
	"ui_review_backend/internal/repository"
	"ui_review_backend/internal/util"
	"ui_review_backend/pkg/logger"
	"ui_review_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const completionCodeLength = 8

type GroupInfo struct {
	Cond             int `json:"cond"`
	ParticipantOrder int `json:"participantOrder"`
}

type SubmitResult struct {
	CompletionCode string    `json:"completionCode"`
	SubmissionID   string    `json:"submissionId"`
	GroupInfo      GroupInfo `json:"groupInfo"`
	IsSimilar      bool      `json:"isSimilar"`
}

// SubmissionService is the submission ledger: it validates answers, flags
// near-duplicates, registers participants and enforces the
// one-submission-per-worker-per-day rule.
type SubmissionService struct {
	Subs         *repository.SubmissionRepository
	Participants *ParticipantService
	Tasks        *TaskService
	Clock        *StudyClock
	Cfg          *config.Config
}

func NewSubmissionService(
	subs *repository.SubmissionRepository,
	participants *ParticipantService,
	tasks *TaskService,
	clock *StudyClock,
	cfg *config.Config,
) *SubmissionService {
	return &SubmissionService{
		Subs:         subs,
		Participants: participants,
		Tasks:        tasks,
		Clock:        clock,
		Cfg:          cfg,
	}
}

// Submit runs the full submission pipeline for one worker answer. taskNumber
// is the client-proposed task (validated against the available pool) or nil
// for a server draw. The similarity flag is informational: it shapes the new
// participant's condition but never blocks the submission.
func (s *SubmissionService) Submit(workerID string, taskNumber *int, answer string, rtMs *int) (*SubmitResult, error) {
	trimmed := strings.TrimSpace(answer)

	study := s.Cfg.Study
	if !util.IsValidWordCount(trimmed, study.MinWords, study.MaxWords) {
		return nil, &util.WordCountError{
			Count: util.CountWords(trimmed),
			Min:   study.MinWords,
			Max:   study.MaxWords,
		}
	}

	dayIdx := s.Clock.CurrentDayIdx()

	isSimilar, err := s.detectSimilar(workerID, dayIdx, trimmed)
	if err != nil {
		return nil, fmt.Errorf("similarity check: %w", err)
	}

	participant, err := s.Participants.GetOrCreate(workerID, isSimilar)
	if err != nil {
		logger.Log.Error("participant lookup failed",
			zap.String("workerId", workerID), zap.Int("dayIdx", dayIdx), zap.Error(err))
		return nil, err
	}

	// Fast-path duplicate check; the unique (worker_id, day_idx) constraint
	// on insert closes the race between concurrent retries.
	if _, err := s.Subs.FindByWorkerAndDay(workerID, dayIdx); err == nil {
		return nil, util.ErrDuplicateSubmission
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var resolvedTask int
	if taskNumber != nil {
		if err := s.Tasks.ValidateTaskNumber(workerID, *taskNumber); err != nil {
			return nil, err
		}
		resolvedTask = *taskNumber
	} else {
		resolvedTask, err = s.Tasks.NextTaskNumber(workerID)
		if err != nil {
			if errors.Is(err, util.ErrTaskPoolExhausted) {
				logger.Log.Error("task pool exhausted, scheduling bug upstream",
					zap.String("workerId", workerID), zap.Int("dayIdx", dayIdx))
			}
			return nil, err
		}
	}

	completionCode := util.GenerateCompletionCode(completionCodeLength)

	sub := &model.Submission{
		WorkerID:       workerID,
		DayIdx:         dayIdx,
		TaskNumber:     &resolvedTask,
		Answer:         trimmed,
		RtMs:           rtMs,
		CompletionCode: completionCode,
	}

	if err := s.Subs.Create(sub); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrDuplicateSubmission
		}
		logger.Log.Error("submission insert failed",
			zap.String("workerId", workerID), zap.Int("dayIdx", dayIdx), zap.Error(err))
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues(fmt.Sprintf("%t", isSimilar)).Inc()

	return &SubmitResult{
		CompletionCode: completionCode,
		SubmissionID:   sub.ID,
		GroupInfo: GroupInfo{
			Cond:             participant.Cond,
			ParticipantOrder: participant.ParticipantOrder,
		},
		IsSimilar: isSimilar,
	}, nil
}

// detectSimilar compares the answer against every same-day submission already
// persisted. The first similarity at or above the threshold decides the flag;
// iteration stops there, any match above threshold is sufficient.
func (s *SubmissionService) detectSimilar(workerID string, dayIdx int, answer string) (bool, error) {
	existing, err := s.Subs.ListByDay(dayIdx)
	if err != nil {
		return false, err
	}

	threshold := s.Cfg.Study.SimilarityThreshold
	for _, prev := range existing {
		if prev.Answer == "" {
			continue
		}

		similarity := util.WERSimilarity(answer, prev.Answer)
		if similarity >= threshold {
			logger.Log.Warn("high similarity detected",
				zap.Float64("similarity", similarity),
				zap.String("workerId", workerID),
				zap.String("matchedWorkerId", prev.WorkerID),
				zap.Int("dayIdx", dayIdx))
			monitoring.SimilarityMatches.Inc()
			return true, nil
		}
	}

	return false, nil
}

// List returns submissions for the admin dashboard.
func (s *SubmissionService) List(dayIdx *int, workerID string, cond int) ([]model.Submission, error) {
	return s.Subs.List(repository.SubmissionFilter{
		DayIdx:   dayIdx,
		WorkerID: workerID,
		Cond:     cond,
	})
}

func (s *SubmissionService) Get(id string) (*model.Submission, error) {
	sub, err := s.Subs.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	return sub, nil
}

func (s *SubmissionService) GetMany(ids []string) ([]model.Submission, error) {
	return s.Subs.FindByIDs(ids)
}

// ListForDay returns a full day's submissions regardless of condition, for
// the day-scoped evaluation flow.
func (s *SubmissionService) ListForDay(dayIdx int) ([]model.Submission, error) {
	return s.Subs.ListAllByDay(dayIdx)
}

type GradeItem struct {
	SubmissionID string
	ScoreA       *int
	ScoreB       *int
	Feedback     *string
}

type GradeResult struct {
	SubmissionID string `json:"submissionId"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

// GradeBatch persists a batch of grading results with one update per item.
// A failing item is reported in its result and does not abort the batch.
func (s *SubmissionService) GradeBatch(items []GradeItem) ([]GradeResult, int) {
	results := make([]GradeResult, 0, len(items))
	successCount := 0

	for _, item := range items {
		result := GradeResult{SubmissionID: item.SubmissionID}
		if item.SubmissionID == "" {
			result.Error = "submissionId is required"
		} else if _, err := s.UpdateScores(item.SubmissionID, item.ScoreA, item.ScoreB, item.Feedback); err != nil {
			result.Error = err.Error()
		} else {
			result.Success = true
			successCount++
		}
		results = append(results, result)
	}

	return results, successCount
}

// UpdateScores is the out-of-band grading write-back path.
func (s *SubmissionService) UpdateScores(id string, scoreA, scoreB *int, feedback *string) (*model.Submission, error) {
	sub, err := s.Subs.UpdateScores(id, scoreA, scoreB, feedback)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	return sub, nil
}
