package service

import (
	"errors"

	"ui_review_backend/internal/model"
	"ui_review_backend/internal/repository"

	"gorm.io/gorm"
)

// ParticipantService assigns each worker a stable experimental condition and
// ordinal position on first contact.
type ParticipantService struct {
	Repo *repository.ParticipantRepository
}

func NewParticipantService(repo *repository.ParticipantRepository) *ParticipantService {
	return &ParticipantService{Repo: repo}
}

// GetOrCreate returns the existing participant record unchanged, or creates
// one. A newly created participant gets cond 0 when the triggering submission
// was flagged similar, otherwise conditions alternate by arrival order via
// (order % 2) + 1. Concurrent first contacts race on the worker_id unique
// constraint; the loser re-reads the winning record.
func (s *ParticipantService) GetOrCreate(workerID string, similar bool) (*model.Participant, error) {
	p, err := s.Repo.FindByWorkerID(workerID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	count, err := s.Repo.Count()
	if err != nil {
		return nil, err
	}
	newOrder := int(count) + 1

	cond := (newOrder % 2) + 1
	if similar {
		cond = 0
	}

	p = &model.Participant{
		WorkerID:         workerID,
		ParticipantOrder: newOrder,
		Cond:             cond,
	}

	if err := s.Repo.Create(p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.Repo.FindByWorkerID(workerID)
		}
		return nil, err
	}

	return p, nil
}
