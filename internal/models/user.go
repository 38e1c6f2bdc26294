package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an identity in the system. Users are provisioned by the
// external identity provider; this service only reads and references them.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name      string    `json:"name" gorm:"not null;index:idx_users_name"`
	Email     string    `json:"email" gorm:"not null;uniqueIndex:idx_users_email"`
	Image     *string   `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`

	// One-to-Many Relations
	CreatedTasks  []*Task         `json:"created_tasks,omitempty" gorm:"foreignKey:CreatedByID"`
	AssignedTasks []*Task         `json:"assigned_tasks,omitempty" gorm:"foreignKey:AssignedToID"`
	Notifications []*Notification `json:"notifications,omitempty" gorm:"foreignKey:UserID"`

	// Many-to-Many Relations
	MemberProjects []*Project `json:"member_projects,omitempty" gorm:"many2many:project_members"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
