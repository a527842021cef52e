package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tracker-backend/internal/board"
	"tracker-backend/internal/dtos"
	"tracker-backend/internal/services"
)

// Dependency injection via constructor, services do the work.
type ApplicationHandler struct {
	Applications *services.ApplicationService
	Profiles     *services.ProfileService
}

func NewApplicationHandler(a *services.ApplicationService, p *services.ProfileService) *ApplicationHandler {
	return &ApplicationHandler{Applications: a, Profiles: p}
}

// List is GET /board/applications?status=&page=&limit=
func (h *ApplicationHandler) List(c *gin.Context) {
	user, ok := currentUser(c, h.Profiles)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	apps, err := h.Applications.List(c.Request.Context(), user.ID, c.Query("status"), page, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// Get is GET /board/applications/:id
func (h *ApplicationHandler) Get(c *gin.Context) {
	user, ok := currentUser(c, h.Profiles)
	if !ok {
		return
	}
	app, err := h.Applications.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// Create is POST /board/applications
func (h *ApplicationHandler) Create(c *gin.Context) {
	user, ok := currentUser(c, h.Profiles)
	if !ok {
		return
	}

	var req dtos.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	app, err := h.Applications.Create(c.Request.Context(), user.ID, &req, user.TrackerConfig.Columns)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// Update is PUT /board/applications/:id (full update)
func (h *ApplicationHandler) Update(c *gin.Context) {
	user, ok := currentUser(c, h.Profiles)
	if !ok {
		return
	}

	var req dtos.UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	app, err := h.Applications.Update(c.Request.Context(), user.ID, c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// PatchStatus is PATCH /board/applications/:id, the status-only transition.
func (h *ApplicationHandler) PatchStatus(c *gin.Context) {
	user, ok := currentUser(c, h.Profiles)
	if !ok {
		return
	}

	var req dtos.StatusPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	app, err := h.Applications.PatchStatus(c.Request.Context(), user.ID, c.Param("id"), req.Status)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// Delete is DELETE /board/applications/:id
func (h *ApplicationHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c, h.Profiles)
	if !ok {
		return
	}
	if err := h.Applications.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application deleted"})
}

// ListByStatus is GET /board/applications/status/:status
func (h *ApplicationHandler) ListByStatus(c *gin.Context) {
	user, ok := currentUser(c, h.Profiles)
	if !ok {
		return
	}
	apps, err := h.Applications.List(c.Request.Context(), user.ID, c.Param("status"), 1, 0)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// Statuses is GET /board/applications/statuses: every distinct raw status
// the user has in storage. Feeds the inline-edit suggestion list.
func (h *ApplicationHandler) Statuses(c *gin.Context) {
	user, ok := currentUser(c, h.Profiles)
	if !ok {
		return
	}
	statuses, err := h.Applications.DistinctStatuses(c.Request.Context(), user.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, statuses)
}

// BoardView is GET /board/view, the reconciled kanban: configured columns in
// order, each with its applications, plus the synthetic Other bucket when any
// status matches no column.
func (h *ApplicationHandler) BoardView(c *gin.Context) {
	user, ok := currentUser(c, h.Profiles)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	apps, err := h.Applications.List(c.Request.Context(), user.ID, "", page, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"buckets": board.Buckets(user.TrackerConfig.Columns, apps),
	})
}
