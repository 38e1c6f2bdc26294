package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskStatus represents the status of a task
type TaskStatus string

const (
	TaskStatusTODO       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// Valid reports whether s is one of the three known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTODO, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// Valid reports whether p is one of the three known priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task represents a task in the system. A task may exist without a project;
// the creator is fixed at creation time, the assignee is re-pointable.
type Task struct {
	ID           uuid.UUID    `json:"id" gorm:"primaryKey;type:uuid"`
	Title        string       `json:"title" gorm:"not null"`
	Description  *string      `json:"description,omitempty"`
	Status       TaskStatus   `json:"status" gorm:"not null;type:varchar(20);index:idx_tasks_status"`
	Priority     TaskPriority `json:"priority" gorm:"not null;type:varchar(10)"`
	Deadline     *time.Time   `json:"deadline,omitempty"`
	CreatedByID  uuid.UUID    `json:"created_by_id" gorm:"not null;type:uuid;index:idx_tasks_created_by"`
	AssignedToID *uuid.UUID   `json:"assigned_to_id,omitempty" gorm:"type:uuid;index:idx_tasks_assigned_to"`
	ProjectID    *uuid.UUID   `json:"project_id,omitempty" gorm:"type:uuid;index:idx_tasks_project"`
	CreatedAt    time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time    `json:"updated_at" gorm:"not null"`

	// Foreign Key Relations
	CreatedBy  *User    `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	AssignedTo *User    `json:"assigned_to,omitempty" gorm:"foreignKey:AssignedToID"`
	Project    *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`

	// One-to-Many Relations
	Comments []*Comment `json:"comments,omitempty" gorm:"foreignKey:TaskID"`

	// Many-to-Many Relations
	Tags []*Tag `json:"tags,omitempty" gorm:"many2many:task_tags"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = TaskStatusTODO
	}
	if t.Priority == "" {
		t.Priority = TaskPriorityMedium
	}
	return nil
}
