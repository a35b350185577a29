package repository

import (
	"ui_review_backend/internal/model"

	"gorm.io/gorm"
)

type ParticipantRepository struct {
	DB *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) *ParticipantRepository {
	return &ParticipantRepository{DB: db}
}

func (r *ParticipantRepository) Create(p *model.Participant) error {
	return r.DB.Create(p).Error
}

func (r *ParticipantRepository) FindByWorkerID(workerID string) (*model.Participant, error) {
	var p model.Participant
	err := r.DB.Where("worker_id = ?", workerID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ParticipantRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Participant{}).Count(&count).Error
	return count, err
}
