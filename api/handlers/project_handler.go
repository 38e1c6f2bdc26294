package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kutbudev/taskboard/api/middleware"
	"github.com/kutbudev/taskboard/internal/services"
)

// ProjectHandler serves the project routes.
type ProjectHandler struct {
	projects *services.ProjectService
}

// NewProjectHandler creates a ProjectHandler over the project service.
func NewProjectHandler(projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// CreateProjectInput DTO for creating a new project
type CreateProjectInput struct {
	Name        string      `json:"name" binding:"required"`
	Description *string     `json:"description"`
	MemberIDs   []uuid.UUID `json:"member_ids"`
}

// Create creates a new project owned by the acting identity.
func (h *ProjectHandler) Create(c *gin.Context) {
	var input CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projects.Create(c.Request.Context(), middleware.Actor(c), services.CreateProjectInput{
		Name:        input.Name,
		Description: input.Description,
		MemberIDs:   input.MemberIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// AddMemberInput DTO for inviting a member by email
type AddMemberInput struct {
	Email string `json:"email" binding:"required,email"`
}

// AddMember adds the user with the given email to the project's member set.
func (h *ProjectHandler) AddMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input AddMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projects.AddMember(c.Request.Context(), middleware.Actor(c), id, input.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// List retrieves all projects with members and tasks attached.
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projects.GetAll(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

// Get retrieves a single project by its ID.
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projects.GetByID(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// UpdateProjectInput DTO for updating a project. A present member_ids field
// replaces the entire member set.
type UpdateProjectInput struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	MemberIDs   *[]uuid.UUID `json:"member_ids"`
}

// Update applies a partial update to a project.
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projects.Update(c.Request.Context(), middleware.Actor(c), id, services.ProjectPatch{
		Name:        input.Name,
		Description: input.Description,
		MemberIDs:   input.MemberIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// Delete hard-deletes a project; its tasks are orphaned, not removed.
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.projects.Delete(c.Request.Context(), middleware.Actor(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
