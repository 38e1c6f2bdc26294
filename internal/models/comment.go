package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment represents a comment on a task, owned by its author.
type Comment struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Text        string    `json:"text" gorm:"not null"`
	TaskID      uuid.UUID `json:"task_id" gorm:"not null;type:uuid;index:idx_comments_task"`
	CreatedByID uuid.UUID `json:"created_by_id" gorm:"not null;type:uuid"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"not null"`

	// Foreign Key Relations
	Task      *Task `json:"task,omitempty" gorm:"foreignKey:TaskID"`
	CreatedBy *User `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
