package model

import "time"

// AccessLog records that a worker opened a study page. The unique index on
// (worker_id, path) makes logging idempotent server-side instead of trusting
// client-held "already logged" state.
// swagger:model AccessLog
type AccessLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	WorkerID  string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_worker_path" json:"workerId"`
	Path      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_worker_path" json:"path"`
	CreatedAt time.Time `json:"createdAt"`
}

func (AccessLog) TableName() string {
	return "access_logs"
}
