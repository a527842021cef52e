package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"tracker-backend/internal/board"
	"tracker-backend/internal/models"
)

type AnalyticsService struct {
	DB *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{DB: db}
}

type DashboardSummary struct {
	TotalApplications int            `json:"totalApplications"`
	Interviews        int            `json:"interviews"`
	Offers            int            `json:"offers"`
	StatusCounts      map[string]int `json:"statusCounts"`
}

type ActivityPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type DashboardAnalytics struct {
	Summary        DashboardSummary `json:"summary"`
	RecentActivity []ActivityPoint  `json:"recent_activity"`
}

const activityWindowDays = 14

// Dashboard aggregates the user's applications into the dashboard payload.
// Statuses are free text, so interview/offer counts match on the legacy enum
// form of the status rather than exact strings: any status whose wire form
// contains INTERVIEW or OFFER counts.
func (s *AnalyticsService) Dashboard(ctx context.Context, userID string) (*DashboardAnalytics, error) {
	var apps []models.Application
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load applications: %w", err)
	}

	summary := DashboardSummary{StatusCounts: map[string]int{}}
	byDay := map[string]int{}
	cutoff := time.Now().AddDate(0, 0, -activityWindowDays)

	for _, app := range apps {
		summary.TotalApplications++
		summary.StatusCounts[board.Display(app.Status)]++

		wire := board.Wire(app.Status)
		if strings.Contains(wire, "INTERVIEW") {
			summary.Interviews++
		}
		if strings.Contains(wire, "OFFER") {
			summary.Offers++
		}

		if app.CreatedAt.After(cutoff) {
			byDay[app.CreatedAt.Format("2006-01-02")]++
		}
	}

	activity := make([]ActivityPoint, 0, activityWindowDays)
	for d := 0; d <= activityWindowDays; d++ {
		day := cutoff.AddDate(0, 0, d).Format("2006-01-02")
		if n, ok := byDay[day]; ok {
			activity = append(activity, ActivityPoint{Date: day, Count: n})
		}
	}

	return &DashboardAnalytics{Summary: summary, RecentActivity: activity}, nil
}
