package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tracker-backend/internal/dtos"
	"tracker-backend/internal/services"
)

type ProfileHandler struct {
	Profiles *services.ProfileService
}

func NewProfileHandler(p *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{Profiles: p}
}

// Get is GET /api/user/profile. The response embeds the board column
// configuration in trackerConfig.
func (h *ProfileHandler) Get(c *gin.Context) {
	user, ok := currentUser(c, h.Profiles)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update is PUT /api/user/profile. Partial: absent fields are left alone.
func (h *ProfileHandler) Update(c *gin.Context) {
	user, ok := currentUser(c, h.Profiles)
	if !ok {
		return
	}

	var req dtos.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	updated, err := h.Profiles.Update(c.Request.Context(), user.ID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
