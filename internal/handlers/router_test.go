package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tracker-backend/internal/auth"
	"tracker-backend/internal/models"
	"tracker-backend/internal/services"
)

const testSecret = "test-secret"

// newTestRouter wires the real middleware, handlers and services over an
// in-memory database, mirroring the route table in cmd/api.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("could not open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Application{}); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	applicationService := services.NewApplicationService(db)
	profileService := services.NewProfileService(db)
	analyticsService := services.NewAnalyticsService(db)

	applicationHandler := NewApplicationHandler(applicationService, profileService)
	profileHandler := NewProfileHandler(profileService)
	analyticsHandler := NewAnalyticsHandler(analyticsService, profileService)

	r := gin.New()
	r.GET("/health", HealthCheck)

	requireAuth := auth.RequireAuth(testSecret)

	board := r.Group("/board", requireAuth)
	{
		board.GET("/view", applicationHandler.BoardView)
		board.GET("/applications", applicationHandler.List)
		board.POST("/applications", applicationHandler.Create)
		board.GET("/applications/statuses", applicationHandler.Statuses)
		board.GET("/applications/status/:status", applicationHandler.ListByStatus)
		board.GET("/applications/:id", applicationHandler.Get)
		board.PUT("/applications/:id", applicationHandler.Update)
		board.PATCH("/applications/:id", applicationHandler.PatchStatus)
		board.DELETE("/applications/:id", applicationHandler.Delete)
	}

	api := r.Group("/api", requireAuth)
	{
		api.GET("/user/profile", profileHandler.Get)
		api.PUT("/user/profile", profileHandler.Update)
		api.GET("/analytics/dashboard", analyticsHandler.Dashboard)
	}
	return r
}

func signToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   subject,
		"email": subject + "@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("could not sign token: %v", err)
	}
	return signed
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("could not encode body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
