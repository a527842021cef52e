package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tracker-backend/internal/auth"
	"tracker-backend/internal/board"
	"tracker-backend/internal/models"
	"tracker-backend/internal/services"
)

// currentUser resolves the local user row for the authenticated session,
// creating it on first login. Writes the error response itself so call sites
// stay one-liners.
func currentUser(c *gin.Context, profiles *services.ProfileService) (*models.User, bool) {
	subject := auth.Subject(c)
	if subject == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid bearer token"})
		return nil, false
	}
	user, err := profiles.GetOrCreate(c.Request.Context(), subject, auth.Email(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user: " + err.Error()})
		return nil, false
	}
	return user, true
}

// writeServiceError maps service errors onto HTTP responses. Validation
// failures keep their specific message so the frontend can show it verbatim.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrApplicationNotFound),
		errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmptyStatus),
		errors.Is(err, board.ErrNoColumns),
		errors.Is(err, board.ErrEmptyTitle),
		errors.Is(err, board.ErrDuplicateTitle),
		errors.Is(err, board.ErrUnknownColor):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// HealthCheck is GET /health.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
