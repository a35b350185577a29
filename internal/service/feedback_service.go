package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"ui_review_backend/internal/config"
	"ui_review_backend/internal/repository"
	"ui_review_backend/internal/util"
	"ui_review_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const condCacheTTL = 12 * time.Hour

type HistogramBin struct {
	Score    int  `json:"score"`
	Count    int  `json:"count"`
	IsOwnBin bool `json:"isOwnBin"`
}

type HistogramData struct {
	Bins        []HistogramBin `json:"bins"`
	WorkerScore *int           `json:"workerScore"`
}

type GoalData struct {
	Current   int `json:"current"`
	Target    int `json:"target"`
	Threshold int `json:"threshold"`
}

// PreviousSubmission is the prior-day record shown on the feedback page.
// On the first study day, or when the worker has no prior submission, only
// NextTaskNumber is populated.
type PreviousSubmission struct {
	Feedback       *string `json:"feedback,omitempty"`
	ScoreA         *int    `json:"scoreA,omitempty"`
	ScoreB         *int    `json:"scoreB,omitempty"`
	ScoreSum       *int    `json:"scoreSum,omitempty"`
	DayIdx         *int    `json:"dayIdx,omitempty"`
	TaskNumber     *int    `json:"taskNumber,omitempty"`
	NextTaskNumber *int    `json:"nextTaskNumber"`
}

// FeedbackService is the read-only path behind the feedback page: prior-day
// results, peer aggregates and the next-task pre-fetch.
type FeedbackService struct {
	Subs         *repository.SubmissionRepository
	Participants *repository.ParticipantRepository
	Tasks        *TaskService // feedback pool, 0..7
	Clock        *StudyClock
	Cfg          *config.Config
	Redis        *redis.Client // optional, nil disables the condition cache
}

func NewFeedbackService(
	subs *repository.SubmissionRepository,
	participants *repository.ParticipantRepository,
	tasks *TaskService,
	clock *StudyClock,
	cfg *config.Config,
	rdb *redis.Client,
) *FeedbackService {
	return &FeedbackService{
		Subs:         subs,
		Participants: participants,
		Tasks:        tasks,
		Clock:        clock,
		Cfg:          cfg,
		Redis:        rdb,
	}
}

// PreviousSubmission looks up the worker's scored result from exactly
// yesterday, falling back to the most recent earlier day. NextTaskNumber is
// always computed independently, nil once the 0..7 pool is exhausted.
func (s *FeedbackService) PreviousSubmission(workerID string) (*PreviousSubmission, error) {
	todayIdx := s.Clock.CurrentDayIdx()
	yesterdayIdx := todayIdx - 1

	result := &PreviousSubmission{}
	if next, err := s.Tasks.NextTaskNumber(workerID); err == nil {
		result.NextTaskNumber = &next
	} else if !errors.Is(err, util.ErrTaskPoolExhausted) {
		return nil, err
	}

	if yesterdayIdx < 0 {
		return result, nil
	}

	sub, err := s.Subs.FindByWorkerAndDay(workerID, yesterdayIdx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sub, err = s.Subs.FindLatestBefore(workerID, todayIdx)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, nil
		}
		return nil, err
	}

	result.Feedback = sub.Feedback
	result.ScoreA = sub.ScoreA
	result.ScoreB = sub.ScoreB
	result.DayIdx = &sub.DayIdx
	result.TaskNumber = sub.TaskNumber

	if sub.ScoreA != nil || sub.ScoreB != nil {
		sum := 0
		if sub.ScoreA != nil {
			sum += *sub.ScoreA
		}
		if sub.ScoreB != nil {
			sum += *sub.ScoreB
		}
		result.ScoreSum = &sum
	}

	return result, nil
}

// WorkerCondition returns the worker's experimental condition, nil for
// unknown workers. Conditions are immutable, so hits are cached in Redis.
func (s *FeedbackService) WorkerCondition(workerID string) (*int, error) {
	cacheKey := "worker_cond:" + workerID

	if s.Redis != nil {
		val, err := s.Redis.Get(context.Background(), cacheKey).Result()
		if err == nil {
			cond, convErr := strconv.Atoi(val)
			if convErr == nil {
				return &cond, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("condition cache read failed", zap.Error(err))
		}
	}

	p, err := s.Participants.FindByWorkerID(workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if s.Redis != nil {
		if err := s.Redis.Set(context.Background(), cacheKey, fmt.Sprint(p.Cond), condCacheTTL).Err(); err != nil {
			logger.Log.Warn("condition cache write failed", zap.Error(err))
		}
	}

	cond := p.Cond
	return &cond, nil
}

// YesterdayHistogram buckets same-condition peers' prior-day scores into the
// fixed 0..10 bins and marks the caller's own bin. Nil on the first study day
// and for unknown workers.
func (s *FeedbackService) YesterdayHistogram(workerID string) (*HistogramData, error) {
	todayIdx := s.Clock.CurrentDayIdx()
	yesterdayIdx := todayIdx - 1
	if yesterdayIdx < 0 {
		return nil, nil
	}

	cond, err := s.WorkerCondition(workerID)
	if err != nil {
		return nil, err
	}
	if cond == nil {
		return nil, nil
	}

	buckets, err := s.Subs.ScoreDistribution(yesterdayIdx, *cond)
	if err != nil {
		return nil, err
	}

	workerScore, err := s.Subs.WorkerScore(workerID, yesterdayIdx)
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int, len(buckets))
	for _, b := range buckets {
		counts[b.Score] = b.Count
	}

	bins := make([]HistogramBin, 11)
	for i := 0; i <= 10; i++ {
		bins[i] = HistogramBin{
			Score:    i,
			Count:    counts[i],
			IsOwnBin: workerScore != nil && *workerScore == i,
		}
	}

	return &HistogramData{Bins: bins, WorkerScore: workerScore}, nil
}

// YesterdayGoalProgress counts, among same-condition peers, prior-day scores
// meeting the configured threshold, against the configured target. Nil on the
// first study day and for unknown workers.
func (s *FeedbackService) YesterdayGoalProgress(workerID string) (*GoalData, error) {
	todayIdx := s.Clock.CurrentDayIdx()
	if todayIdx-1 < 0 {
		return nil, nil
	}

	cond, err := s.WorkerCondition(workerID)
	if err != nil {
		return nil, err
	}
	if cond == nil {
		return nil, nil
	}

	study := s.Cfg.Study
	current, err := s.Subs.CountGoalMet(todayIdx, *cond, study.GoalThreshold)
	if err != nil {
		return nil, err
	}

	return &GoalData{
		Current:   int(current),
		Target:    study.GoalTarget,
		Threshold: study.GoalThreshold,
	}, nil
}
