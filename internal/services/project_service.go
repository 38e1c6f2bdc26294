package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kutbudev/taskboard/internal/apperr"
	"github.com/kutbudev/taskboard/internal/logging"
	"github.com/kutbudev/taskboard/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ProjectService owns Project entities and their membership.
type ProjectService struct {
	db *gorm.DB
}

// NewProjectService creates a ProjectService backed by db.
func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

// CreateProjectInput carries the fields for creating a project.
type CreateProjectInput struct {
	Name        string
	Description *string
	MemberIDs   []uuid.UUID
}

// ProjectPatch is a partial update. Nil fields are left untouched.
// MemberIDs uses replace semantics: a non-nil slice becomes the entire
// member set, so an empty slice empties it.
type ProjectPatch struct {
	Name        *string
	Description *string
	MemberIDs   *[]uuid.UUID
}

// Create creates a project owned by the actor, connecting the given members
// if any. The creator is not implicitly added to the member set.
func (s *ProjectService) Create(ctx context.Context, actor uuid.UUID, in CreateProjectInput) (*models.Project, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation("project name is required")
	}

	db := s.db.WithContext(ctx)
	members, err := loadUsers(db, in.MemberIDs)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        in.Name,
		Description: in.Description,
		CreatedByID: actor,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members").Create(project).Error; err != nil {
			return apperr.Store("create project", err)
		}
		if len(members) > 0 {
			if err := tx.Model(project).Association("Members").Append(members); err != nil {
				return apperr.Store("connect project members", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.WithFields(logrus.Fields{
		"entity": "project",
		"id":     project.ID,
		"actor":  actor,
	}).Info("project created")

	return s.GetByID(ctx, actor, project.ID)
}

// AddMember looks up a user by email and adds them to the project's member
// set. Re-adding an existing member is a no-op, not an error: the join table
// carries a composite primary key and the append upserts.
func (s *ProjectService) AddMember(ctx context.Context, actor, projectID uuid.UUID, email string) (*models.Project, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(email) == "" {
		return nil, apperr.Validation("email is required")
	}

	db := s.db.WithContext(ctx)
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate("find user by email", "user", email, err)
	}

	var project models.Project
	if err := db.First(&project, "id = ?", projectID).Error; err != nil {
		return nil, translate("find project", "project", projectID.String(), err)
	}

	if err := db.Model(&project).Association("Members").Append(&user); err != nil {
		return nil, apperr.Store("add project member", err)
	}

	logging.Logger.WithFields(logrus.Fields{
		"entity": "project",
		"id":     projectID,
		"member": user.ID,
		"actor":  actor,
	}).Info("project member added")

	return s.GetByID(ctx, actor, projectID)
}

// GetAll returns all projects with members and tasks attached.
func (s *ProjectService) GetAll(ctx context.Context, actor uuid.UUID) ([]*models.Project, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var projects []*models.Project
	err := s.db.WithContext(ctx).
		Preload("Members").
		Preload("Tasks").
		Find(&projects).Error
	if err != nil {
		return nil, apperr.Store("list projects", err)
	}
	return projects, nil
}

// GetByID returns one project with members and tasks, the tasks further
// carrying their comments and tags.
func (s *ProjectService) GetByID(ctx context.Context, actor, id uuid.UUID) (*models.Project, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var project models.Project
	err := s.db.WithContext(ctx).
		Preload("Members").
		Preload("Tasks").
		Preload("Tasks.Comments").
		Preload("Tasks.Tags").
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, translate("find project", "project", id.String(), err)
	}
	return &project, nil
}

// Update applies a partial update. A non-nil MemberIDs replaces the entire
// member set; contrast with TaskService.Update, where tag ids are additive.
func (s *ProjectService) Update(ctx context.Context, actor, id uuid.UUID, patch ProjectPatch) (*models.Project, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, apperr.Validation("project name cannot be empty")
	}

	db := s.db.WithContext(ctx)
	var project models.Project
	if err := db.First(&project, "id = ?", id).Error; err != nil {
		return nil, translate("find project", "project", id.String(), err)
	}

	var members []*models.User
	if patch.MemberIDs != nil {
		var err error
		members, err = loadUsers(db, *patch.MemberIDs)
		if err != nil {
			return nil, err
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{}
		if patch.Name != nil {
			updates["name"] = *patch.Name
		}
		if patch.Description != nil {
			updates["description"] = *patch.Description
		}
		if len(updates) > 0 {
			if err := tx.Model(&project).Updates(updates).Error; err != nil {
				return apperr.Store("update project", err)
			}
		}
		if patch.MemberIDs != nil {
			assoc := tx.Model(&project).Association("Members")
			if len(members) == 0 {
				if err := assoc.Clear(); err != nil {
					return apperr.Store("clear project members", err)
				}
			} else if err := assoc.Replace(members); err != nil {
				return apperr.Store("replace project members", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.WithFields(logrus.Fields{
		"entity": "project",
		"id":     id,
		"actor":  actor,
	}).Info("project updated")

	return s.GetByID(ctx, actor, id)
}

// Delete hard-deletes a project. Membership rows are cleared and the
// project's tasks are orphaned (project unset), never deleted with it.
func (s *ProjectService) Delete(ctx context.Context, actor, id uuid.UUID) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)
	var project models.Project
	if err := db.First(&project, "id = ?", id).Error; err != nil {
		return translate("find project", "project", id.String(), err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&project).Association("Members").Clear(); err != nil {
			return apperr.Store("clear project members", err)
		}
		if err := tx.Model(&models.Task{}).Where("project_id = ?", id).
			Update("project_id", nil).Error; err != nil {
			return apperr.Store("orphan project tasks", err)
		}
		if err := tx.Delete(&project).Error; err != nil {
			return apperr.Store("delete project", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logging.Logger.WithFields(logrus.Fields{
		"entity": "project",
		"id":     id,
		"actor":  actor,
	}).Info("project deleted")

	return nil
}
