package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kutbudev/taskboard/api/middleware"
	"github.com/kutbudev/taskboard/internal/services"
)

// UserHandler serves the user directory routes.
type UserHandler struct {
	users *services.UserService
}

// NewUserHandler creates a UserHandler over the user directory service.
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List retrieves all users in directory shape, ordered by name.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.GetAll(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// Get retrieves a single user with their tasks and notifications.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetCurrent retrieves the acting identity's own record.
func (h *UserHandler) GetCurrent(c *gin.Context) {
	user, err := h.users.GetCurrent(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Search matches users by name or email, case-insensitively.
func (h *UserHandler) Search(c *gin.Context) {
	users, err := h.users.Search(c.Request.Context(), middleware.Actor(c), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// ListNotifications retrieves the acting identity's notifications.
func (h *UserHandler) ListNotifications(c *gin.Context) {
	notifications, err := h.users.GetNotifications(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead marks one of the acting identity's notifications as
// read.
func (h *UserHandler) MarkNotificationRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	notification, err := h.users.MarkNotificationRead(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, notification)
}
