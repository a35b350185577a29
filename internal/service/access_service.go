package service

import (
	"context"
	"time"

	"ui_review_backend/internal/model"
	"ui_review_backend/internal/repository"
	"ui_review_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const accessDedupTTL = 24 * time.Hour

// AccessService records page accesses idempotently per (workerId, path).
// Redis SETNX short-circuits repeats; the unique index on access_logs is the
// authority when Redis is unavailable.
type AccessService struct {
	Repo  *repository.AccessLogRepository
	Redis *redis.Client // optional
}

func NewAccessService(repo *repository.AccessLogRepository, rdb *redis.Client) *AccessService {
	return &AccessService{Repo: repo, Redis: rdb}
}

// Record logs the access and reports whether a new row was written.
func (s *AccessService) Record(workerID, path string) (bool, error) {
	if s.Redis != nil {
		key := "access_seen:" + workerID + ":" + path
		fresh, err := s.Redis.SetNX(context.Background(), key, 1, accessDedupTTL).Result()
		if err != nil {
			logger.Log.Warn("access dedup cache unavailable", zap.Error(err))
		} else if !fresh {
			return false, nil
		}
	}

	return s.Repo.Insert(&model.AccessLog{
		WorkerID: workerID,
		Path:     path,
	})
}
