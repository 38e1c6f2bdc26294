package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kutbudev/taskboard/internal/apperr"
	"github.com/kutbudev/taskboard/internal/models"
	"gorm.io/gorm"
)

// directoryFields is the read-mostly projection served by listing and
// search: identity only, no relations.
var directoryFields = []string{"id", "name", "email", "image", "created_at", "updated_at"}

// UserService is the read-mostly directory over User entities. Users are
// created by the external identity provider, never here.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a UserService backed by db.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetAll returns every user in directory shape, ordered by name.
func (s *UserService) GetAll(ctx context.Context, actor uuid.UUID) ([]*models.User, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var users []*models.User
	err := s.db.WithContext(ctx).
		Select(directoryFields).
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		return nil, apperr.Store("list users", err)
	}
	return users, nil
}

// GetByID returns one user with their created tasks, assigned tasks and
// notifications attached.
func (s *UserService) GetByID(ctx context.Context, actor, id uuid.UUID) (*models.User, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var user models.User
	err := s.db.WithContext(ctx).
		Preload("CreatedTasks").
		Preload("AssignedTasks").
		Preload("Notifications").
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, translate("find user", "user", id.String(), err)
	}
	return &user, nil
}

// GetCurrent returns the acting identity in the GetByID shape.
func (s *UserService) GetCurrent(ctx context.Context, actor uuid.UUID) (*models.User, error) {
	return s.GetByID(ctx, actor, actor)
}

// Search matches users whose name or email contains the query,
// case-insensitively. LOWER/LIKE keeps the predicate portable across the
// Postgres and sqlite dialects.
func (s *UserService) Search(ctx context.Context, actor uuid.UUID, query string) ([]*models.User, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return nil, apperr.Validation("search query is required")
	}
	pattern := "%" + strings.ToLower(query) + "%"
	var users []*models.User
	err := s.db.WithContext(ctx).
		Select(directoryFields).
		Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).
		Find(&users).Error
	if err != nil {
		return nil, apperr.Store("search users", err)
	}
	return users, nil
}

// GetNotifications returns the actor's notifications, newest first.
func (s *UserService) GetNotifications(ctx context.Context, actor uuid.UUID) ([]*models.Notification, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var notifications []*models.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", actor).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, apperr.Store("list notifications", err)
	}
	return notifications, nil
}

// MarkNotificationRead marks one of the actor's notifications as read.
// Another user's notification is indistinguishable from a missing one.
func (s *UserService) MarkNotificationRead(ctx context.Context, actor, id uuid.UUID) (*models.Notification, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var notification models.Notification
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, actor).
		First(&notification).Error
	if err != nil {
		return nil, translate("find notification", "notification", id.String(), err)
	}
	if err := s.db.WithContext(ctx).Model(&notification).Update("read", true).Error; err != nil {
		return nil, apperr.Store("mark notification read", err)
	}
	return &notification, nil
}
