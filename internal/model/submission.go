package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission is one worker's answer for one logical study day. The composite
// unique index on (worker_id, day_idx) is the authority for the
// one-submission-per-worker-per-day rule. ScoreA, ScoreB and Feedback are
// written later by the grading flow.
// swagger:model Submission
type Submission struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	WorkerID       string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_worker_day" json:"workerId"`
	DayIdx         int       `gorm:"not null;uniqueIndex:idx_worker_day;index" json:"dayIdx"`
	TaskNumber     *int      `json:"taskNumber"`
	Answer         string    `gorm:"type:text;not null" json:"answer"`
	RtMs           *int      `json:"rtMs"`
	ScoreA         *int      `json:"scoreA"`
	ScoreB         *int      `json:"scoreB"`
	Feedback       *string   `gorm:"type:text" json:"feedback"`
	CompletionCode string    `gorm:"type:varchar(16);not null" json:"completionCode"`
	SubmittedAt    time.Time `gorm:"autoCreateTime;index" json:"submittedAt"`

	Participant *Participant `gorm:"foreignKey:WorkerID;references:WorkerID" json:"participant,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (s *Submission) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}
