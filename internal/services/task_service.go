package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kutbudev/taskboard/internal/apperr"
	"github.com/kutbudev/taskboard/internal/logging"
	"github.com/kutbudev/taskboard/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultPageSize is the take value used when a caller passes none.
const DefaultPageSize = 10

// TaskService owns Task entities, their relationships and lifecycle.
type TaskService struct {
	db *gorm.DB
}

// NewTaskService creates a TaskService backed by db.
func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// CreateTaskInput carries the fields for creating a task. A task may be
// created without a project.
type CreateTaskInput struct {
	Title        string
	Description  *string
	Priority     models.TaskPriority
	Status       models.TaskStatus
	Deadline     *time.Time
	AssignedToID *uuid.UUID
	TagIDs       []uuid.UUID
	ProjectID    *uuid.UUID
}

// TaskPatch is a partial update. Nil fields are left untouched. TagIDs uses
// additive semantics: a non-nil slice appends new tag links and never
// removes existing ones, so an empty slice is a no-op. Contrast with
// ProjectPatch.MemberIDs, which replaces.
type TaskPatch struct {
	Title        *string
	Description  *string
	Priority     *models.TaskPriority
	Status       *models.TaskStatus
	Deadline     *time.Time
	AssignedToID *uuid.UUID
	TagIDs       *[]uuid.UUID
	ProjectID    *uuid.UUID
}

// taskPreload attaches the full relation set used by list and detail reads.
func taskPreload(db *gorm.DB) *gorm.DB {
	return db.
		Preload("CreatedBy").
		Preload("AssignedTo").
		Preload("Tags").
		Preload("Comments").
		Preload("Project")
}

// Create creates a task reported by the actor. Referenced assignee, project
// and tags must resolve. Assigning to someone other than the actor records
// a notification for them.
func (s *TaskService) Create(ctx context.Context, actor uuid.UUID, in CreateTaskInput) (*models.Task, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation("task title is required")
	}
	if in.Priority == "" {
		in.Priority = models.TaskPriorityMedium
	}
	if !in.Priority.Valid() {
		return nil, apperr.Validation("unknown priority %q", in.Priority)
	}
	if in.Status == "" {
		in.Status = models.TaskStatusTODO
	}
	if !in.Status.Valid() {
		return nil, apperr.Validation("unknown status %q", in.Status)
	}

	db := s.db.WithContext(ctx)
	if in.AssignedToID != nil {
		if err := db.First(&models.User{}, "id = ?", *in.AssignedToID).Error; err != nil {
			return nil, translate("find assignee", "user", in.AssignedToID.String(), err)
		}
	}
	if in.ProjectID != nil {
		if err := db.First(&models.Project{}, "id = ?", *in.ProjectID).Error; err != nil {
			return nil, translate("find project", "project", in.ProjectID.String(), err)
		}
	}
	tags, err := loadTags(db, in.TagIDs)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:        in.Title,
		Description:  in.Description,
		Status:       in.Status,
		Priority:     in.Priority,
		Deadline:     in.Deadline,
		CreatedByID:  actor,
		AssignedToID: in.AssignedToID,
		ProjectID:    in.ProjectID,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Create(task).Error; err != nil {
			return apperr.Store("create task", err)
		}
		if len(tags) > 0 {
			if err := tx.Model(task).Association("Tags").Append(tags); err != nil {
				return apperr.Store("connect task tags", err)
			}
		}
		if task.AssignedToID != nil && *task.AssignedToID != actor {
			if err := notifyAssignment(tx, task, actor); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.WithFields(logrus.Fields{
		"entity": "task",
		"id":     task.ID,
		"actor":  actor,
	}).Info("task created")

	return s.GetByID(ctx, actor, task.ID)
}

// GetAll returns tasks where the actor is creator or assignee, newest first.
func (s *TaskService) GetAll(ctx context.Context, actor uuid.UUID) ([]*models.Task, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var tasks []*models.Task
	err := taskPreload(s.db.WithContext(ctx)).
		Where("created_by_id = ? OR assigned_to_id = ?", actor, actor).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, apperr.Store("list tasks", err)
	}
	return tasks, nil
}

// GetByID returns one task with creator, assignee, project, tags and
// comments attached.
func (s *TaskService) GetByID(ctx context.Context, actor, id uuid.UUID) (*models.Task, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var task models.Task
	err := taskPreload(s.db.WithContext(ctx)).First(&task, "id = ?", id).Error
	if err != nil {
		return nil, translate("find task", "task", id.String(), err)
	}
	return &task, nil
}

// GetAssignedToUser returns a page of tasks assigned to userID, newest
// first. skip below zero is clamped, take at or below zero falls back to
// DefaultPageSize.
func (s *TaskService) GetAssignedToUser(ctx context.Context, actor, userID uuid.UUID, skip, take int) ([]*models.Task, error) {
	return s.pageByUser(ctx, actor, "assigned_to_id", userID, skip, take)
}

// GetReportedByUser returns a page of tasks created by userID, newest first.
func (s *TaskService) GetReportedByUser(ctx context.Context, actor, userID uuid.UUID, skip, take int) ([]*models.Task, error) {
	return s.pageByUser(ctx, actor, "created_by_id", userID, skip, take)
}

func (s *TaskService) pageByUser(ctx context.Context, actor uuid.UUID, column string, userID uuid.UUID, skip, take int) ([]*models.Task, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if skip < 0 {
		skip = 0
	}
	if take <= 0 {
		take = DefaultPageSize
	}
	var tasks []*models.Task
	err := taskPreload(s.db.WithContext(ctx)).
		Where(fmt.Sprintf("%s = ?", column), userID).
		Order("created_at DESC").
		Offset(skip).
		Limit(take).
		Find(&tasks).Error
	if err != nil {
		return nil, apperr.Store("page tasks", err)
	}
	return tasks, nil
}

// GetByProjectID returns every task of a project, newest first, with
// comment authors attached. Project-less tasks never appear here.
func (s *TaskService) GetByProjectID(ctx context.Context, actor, projectID uuid.UUID) ([]*models.Task, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var tasks []*models.Task
	err := taskPreload(s.db.WithContext(ctx)).
		Preload("Comments.CreatedBy").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, apperr.Store("list project tasks", err)
	}
	return tasks, nil
}

// Update applies a partial update. Assignee and project are re-pointed only
// when the corresponding id is supplied. Tag ids append, never replace.
// Status moves freely between the three states; DONE tasks can be reopened.
func (s *TaskService) Update(ctx context.Context, actor, id uuid.UUID, patch TaskPatch) (*models.Task, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, apperr.Validation("task title cannot be empty")
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, apperr.Validation("unknown priority %q", *patch.Priority)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, apperr.Validation("unknown status %q", *patch.Status)
	}

	db := s.db.WithContext(ctx)
	var task models.Task
	if err := db.First(&task, "id = ?", id).Error; err != nil {
		return nil, translate("find task", "task", id.String(), err)
	}

	if patch.AssignedToID != nil {
		if err := db.First(&models.User{}, "id = ?", *patch.AssignedToID).Error; err != nil {
			return nil, translate("find assignee", "user", patch.AssignedToID.String(), err)
		}
	}
	if patch.ProjectID != nil {
		if err := db.First(&models.Project{}, "id = ?", *patch.ProjectID).Error; err != nil {
			return nil, translate("find project", "project", patch.ProjectID.String(), err)
		}
	}
	var tags []*models.Tag
	if patch.TagIDs != nil {
		var err error
		tags, err = loadTags(db, *patch.TagIDs)
		if err != nil {
			return nil, err
		}
	}

	reassigned := patch.AssignedToID != nil &&
		(task.AssignedToID == nil || *task.AssignedToID != *patch.AssignedToID)

	err := db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{}
		if patch.Title != nil {
			updates["title"] = *patch.Title
		}
		if patch.Description != nil {
			updates["description"] = *patch.Description
		}
		if patch.Priority != nil {
			updates["priority"] = *patch.Priority
		}
		if patch.Status != nil {
			updates["status"] = *patch.Status
		}
		if patch.Deadline != nil {
			updates["deadline"] = *patch.Deadline
		}
		if patch.AssignedToID != nil {
			updates["assigned_to_id"] = *patch.AssignedToID
		}
		if patch.ProjectID != nil {
			updates["project_id"] = *patch.ProjectID
		}
		if len(updates) > 0 {
			if err := tx.Model(&task).Updates(updates).Error; err != nil {
				return apperr.Store("update task", err)
			}
		}
		if len(tags) > 0 {
			if err := tx.Model(&task).Association("Tags").Append(tags); err != nil {
				return apperr.Store("connect task tags", err)
			}
		}
		if reassigned && *patch.AssignedToID != actor {
			task.AssignedToID = patch.AssignedToID
			if err := notifyAssignment(tx, &task, actor); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.WithFields(logrus.Fields{
		"entity": "task",
		"id":     id,
		"actor":  actor,
	}).Info("task updated")

	return s.GetByID(ctx, actor, id)
}

// Delete hard-deletes a task along with its comments and tag links.
func (s *TaskService) Delete(ctx context.Context, actor, id uuid.UUID) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)
	var task models.Task
	if err := db.First(&task, "id = ?", id).Error; err != nil {
		return translate("find task", "task", id.String(), err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return apperr.Store("delete task comments", err)
		}
		if err := tx.Model(&task).Association("Tags").Clear(); err != nil {
			return apperr.Store("clear task tags", err)
		}
		if err := tx.Delete(&task).Error; err != nil {
			return apperr.Store("delete task", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logging.Logger.WithFields(logrus.Fields{
		"entity": "task",
		"id":     id,
		"actor":  actor,
	}).Info("task deleted")

	return nil
}

// AddComment attaches a comment authored by the actor to a task.
func (s *TaskService) AddComment(ctx context.Context, actor, taskID uuid.UUID, text string) (*models.Comment, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperr.Validation("comment text is required")
	}

	db := s.db.WithContext(ctx)
	var task models.Task
	if err := db.First(&task, "id = ?", taskID).Error; err != nil {
		return nil, translate("find task", "task", taskID.String(), err)
	}

	comment := &models.Comment{
		Text:        text,
		TaskID:      task.ID,
		CreatedByID: actor,
	}
	if err := db.Create(comment).Error; err != nil {
		return nil, apperr.Store("create comment", err)
	}
	if err := db.Preload("CreatedBy").First(comment, "id = ?", comment.ID).Error; err != nil {
		return nil, apperr.Store("reload comment", err)
	}
	return comment, nil
}

// notifyAssignment records a notification for the task's assignee.
func notifyAssignment(tx *gorm.DB, task *models.Task, actor uuid.UUID) error {
	payload, err := json.Marshal(map[string]string{
		"task_id":  task.ID.String(),
		"actor_id": actor.String(),
	})
	if err != nil {
		return apperr.Store("encode notification payload", err)
	}
	n := &models.Notification{
		UserID:  *task.AssignedToID,
		Message: fmt.Sprintf("You were assigned the task %q", task.Title),
		Data:    datatypes.JSON(payload),
	}
	if err := tx.Create(n).Error; err != nil {
		return apperr.Store("create notification", err)
	}
	return nil
}
