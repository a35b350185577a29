package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin can log in to the dashboard, inspect submissions and run grading.
// swagger:model Admin
type Admin struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"` // bcrypt hash
	Name      string    `gorm:"type:varchar(100)" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Admin) TableName() string {
	return "admins"
}

func (a *Admin) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}
