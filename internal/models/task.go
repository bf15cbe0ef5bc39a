package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	ID          uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(255);not null;index" json:"name"`
	Description *string    `gorm:"type:text" json:"description"`
	Deadline    *Date      `gorm:"type:date" json:"deadline"`
	Complete    bool       `gorm:"not null;default:false" json:"complete"`
	OwnerID     *uuid.UUID `gorm:"type:varchar(36);index" json:"owner_id"`
	ProjectID   *uuid.UUID `gorm:"type:varchar(36);index" json:"project_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BeforeCreate assigns the id and stamps both timestamps truncated to the
// minute. Later updates write full-precision updated_at.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := tx.Statement.DB.NowFunc().Truncate(time.Minute)
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}
	return nil
}
