package model

import "time"

// Participant is created lazily on a worker's first submission and never
// deleted. Cond is assigned exactly once at creation: 0 marks a flagged
// (colluding) worker, 1 and 2 are the normal alternating groups.
// swagger:model Participant
type Participant struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	WorkerID         string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"workerId"`
	ParticipantOrder int       `gorm:"not null" json:"participantOrder"`
	Cond             int       `gorm:"not null" json:"cond"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (Participant) TableName() string {
	return "participants"
}
