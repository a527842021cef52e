package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tracker-backend/internal/services"
)

type AnalyticsHandler struct {
	Analytics *services.AnalyticsService
	Profiles  *services.ProfileService
}

func NewAnalyticsHandler(a *services.AnalyticsService, p *services.ProfileService) *AnalyticsHandler {
	return &AnalyticsHandler{Analytics: a, Profiles: p}
}

// Dashboard is GET /api/analytics/dashboard.
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	user, ok := currentUser(c, h.Profiles)
	if !ok {
		return
	}
	dash, err := h.Analytics.Dashboard(c.Request.Context(), user.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}
