package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kutbudev/taskboard/api/middleware"
	"github.com/kutbudev/taskboard/internal/models"
	"github.com/kutbudev/taskboard/internal/services"
)

// TaskHandler serves the task routes, including the per-user and
// per-project task listings.
type TaskHandler struct {
	tasks *services.TaskService
}

// NewTaskHandler creates a TaskHandler over the task service.
func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// CreateTaskInput DTO for creating a new task. project_id is optional: a
// task may exist without a project.
type CreateTaskInput struct {
	Title        string      `json:"title" binding:"required"`
	Description  *string     `json:"description"`
	Priority     string      `json:"priority"`
	Status       string      `json:"status"`
	Deadline     *time.Time  `json:"deadline"`
	AssignedToID *uuid.UUID  `json:"assigned_to_id"`
	TagIDs       []uuid.UUID `json:"tag_ids"`
	ProjectID    *uuid.UUID  `json:"project_id"`
}

// Create creates a new task reported by the acting identity.
func (h *TaskHandler) Create(c *gin.Context) {
	var input CreateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), middleware.Actor(c), services.CreateTaskInput{
		Title:        input.Title,
		Description:  input.Description,
		Priority:     NormalizePriority(input.Priority),
		Status:       models.TaskStatus(input.Status),
		Deadline:     input.Deadline,
		AssignedToID: input.AssignedToID,
		TagIDs:       input.TagIDs,
		ProjectID:    input.ProjectID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// List retrieves the tasks where the acting identity is creator or
// assignee, newest first.
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.tasks.GetAll(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// Get retrieves a single task by its ID.
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.tasks.GetByID(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTaskInput DTO for updating a task. A present tag_ids field adds new
// tag links without removing existing ones.
type UpdateTaskInput struct {
	Title        *string      `json:"title"`
	Description  *string      `json:"description"`
	Priority     *string      `json:"priority"`
	Status       *string      `json:"status"`
	Deadline     *time.Time   `json:"deadline"`
	AssignedToID *uuid.UUID   `json:"assigned_to_id"`
	TagIDs       *[]uuid.UUID `json:"tag_ids"`
	ProjectID    *uuid.UUID   `json:"project_id"`
}

// Update applies a partial update to a task.
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := services.TaskPatch{
		Title:        input.Title,
		Description:  input.Description,
		Deadline:     input.Deadline,
		AssignedToID: input.AssignedToID,
		TagIDs:       input.TagIDs,
		ProjectID:    input.ProjectID,
	}
	if input.Priority != nil {
		p := NormalizePriority(*input.Priority)
		patch.Priority = &p
	}
	if input.Status != nil {
		s := models.TaskStatus(*input.Status)
		patch.Status = &s
	}

	task, err := h.tasks.Update(c.Request.Context(), middleware.Actor(c), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Delete hard-deletes a task along with its comments and tag links.
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), middleware.Actor(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// CreateCommentInput DTO for adding a comment to a task
type CreateCommentInput struct {
	Text string `json:"text" binding:"required"`
}

// AddComment attaches a comment authored by the acting identity to a task.
func (h *TaskHandler) AddComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input CreateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.tasks.AddComment(c.Request.Context(), middleware.Actor(c), id, input.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListByProject retrieves all tasks of a project, newest first.
func (h *TaskHandler) ListByProject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tasks, err := h.tasks.GetByProjectID(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// ListAssigned retrieves a page of tasks assigned to a user.
func (h *TaskHandler) ListAssigned(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	skip, take := pageParams(c)
	tasks, err := h.tasks.GetAssignedToUser(c.Request.Context(), middleware.Actor(c), id, skip, take)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// ListReported retrieves a page of tasks created by a user.
func (h *TaskHandler) ListReported(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	skip, take := pageParams(c)
	tasks, err := h.tasks.GetReportedByUser(c.Request.Context(), middleware.Actor(c), id, skip, take)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// pageParams reads skip/take query values; the service clamps them.
func pageParams(c *gin.Context) (int, int) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	take, _ := strconv.Atoi(c.DefaultQuery("take", strconv.Itoa(services.DefaultPageSize)))
	return skip, take
}
