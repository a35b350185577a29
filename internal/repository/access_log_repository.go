package repository

import (
	"ui_review_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccessLogRepository struct {
	DB *gorm.DB
}

func NewAccessLogRepository(db *gorm.DB) *AccessLogRepository {
	return &AccessLogRepository{DB: db}
}

// Insert records one access, relying on the unique (worker_id, path) index
// for idempotency. Returns false when the pair was already logged.
func (r *AccessLogRepository) Insert(log *model.AccessLog) (bool, error) {
	result := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "worker_id"}, {Name: "path"}},
		DoNothing: true,
	}).Create(log)

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *AccessLogRepository) ListByWorker(workerID string) ([]model.AccessLog, error) {
	var logs []model.AccessLog
	err := r.DB.Where("worker_id = ?", workerID).Order("created_at ASC").Find(&logs).Error
	return logs, err
}
