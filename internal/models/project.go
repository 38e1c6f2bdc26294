package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project represents a project in the system. The creator is fixed at
// creation time and is not implicitly part of the member set.
type Project struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name        string    `json:"name" gorm:"not null"`
	Description *string   `json:"description,omitempty"`
	CreatedByID uuid.UUID `json:"created_by_id" gorm:"not null;type:uuid;index:idx_projects_created_by"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"not null"`

	// Foreign Key Relations
	CreatedBy *User `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`

	// One-to-Many Relations
	Tasks []*Task `json:"tasks,omitempty" gorm:"foreignKey:ProjectID"`

	// Many-to-Many Relations
	Members []*User `json:"members,omitempty" gorm:"many2many:project_members"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
