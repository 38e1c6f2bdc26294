package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notification represents a message delivered to a user, e.g. when a task
// is assigned to them. Data carries the structured payload (task id, actor).
type Notification struct {
	ID        uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid"`
	UserID    uuid.UUID      `json:"user_id" gorm:"not null;type:uuid;index:idx_notifications_user"`
	Message   string         `json:"message" gorm:"not null"`
	Read      bool           `json:"read" gorm:"not null;default:false"`
	Data      datatypes.JSON `json:"data,omitempty"`
	CreatedAt time.Time      `json:"created_at" gorm:"not null"`

	// Foreign Key Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
