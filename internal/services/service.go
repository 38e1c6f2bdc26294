// Package services holds the project, task and user directory services.
// Every operation takes the acting identity explicitly; nothing is read
// from ambient state. All entity state lives in the store, consulted fresh
// per call.
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kutbudev/taskboard/internal/apperr"
	"github.com/kutbudev/taskboard/internal/models"
	"gorm.io/gorm"
)

// requireActor enforces the uniform authentication rule: operations without
// an acting identity fail before touching the store.
func requireActor(actor uuid.UUID) error {
	if actor == uuid.Nil {
		return apperr.Unauthenticated()
	}
	return nil
}

// translate maps a store error to the taxonomy: record-not-found becomes a
// NotFoundError for the named entity, anything else is a StoreError.
func translate(op, entity, ref string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity, ref)
	}
	return apperr.Store(op, err)
}

// loadUsers resolves a set of user ids, failing with NotFoundError when any
// id does not resolve.
func loadUsers(db *gorm.DB, ids []uuid.UUID) ([]*models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []*models.User
	if err := db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, apperr.Store("load users", err)
	}
	if len(users) != len(dedupe(ids)) {
		return nil, apperr.NotFound("user", missingRef(ids, users))
	}
	return users, nil
}

// loadTags resolves a set of tag ids, failing with NotFoundError when any
// id does not resolve.
func loadTags(db *gorm.DB, ids []uuid.UUID) ([]*models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []*models.Tag
	if err := db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, apperr.Store("load tags", err)
	}
	found := make(map[uuid.UUID]bool, len(tags))
	for _, t := range tags {
		found[t.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, apperr.NotFound("tag", id.String())
		}
	}
	return tags, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func missingRef(ids []uuid.UUID, users []*models.User) string {
	found := make(map[uuid.UUID]bool, len(users))
	for _, u := range users {
		found[u.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return id.String()
		}
	}
	return fmt.Sprintf("%d of %d ids", len(ids)-len(users), len(ids))
}
