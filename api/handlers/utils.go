package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kutbudev/taskboard/internal/apperr"
	"github.com/kutbudev/taskboard/internal/models"
)

// NormalizePriority converts the single-character priority aliases to their
// long form, so the API accepts both "H" and "HIGH". Unknown values pass
// through and are rejected by service validation.
func NormalizePriority(p string) models.TaskPriority {
	switch p {
	case "H":
		return models.TaskPriorityHigh
	case "M":
		return models.TaskPriorityMedium
	case "L":
		return models.TaskPriorityLow
	default:
		return models.TaskPriority(p)
	}
}

// respondError maps the error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperr.IsValidation(err):
		status = http.StatusBadRequest
	case apperr.IsAuthentication(err):
		status = http.StatusUnauthorized
	case apperr.IsNotFound(err):
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// parseIDParam reads a uuid path parameter, answering 400 on garbage.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
