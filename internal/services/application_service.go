package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tracker-backend/internal/board"
	"tracker-backend/internal/dtos"
	"tracker-backend/internal/models"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrEmptyStatus         = errors.New("status must not be empty")
)

type ApplicationService struct {
	DB *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{DB: db}
}

// List returns the user's applications, newest first, optionally filtered by
// status (case-insensitive). Pagination defaults match the frontend: page 1,
// 100 per page.
func (s *ApplicationService) List(ctx context.Context, userID, status string, page, limit int) ([]models.Application, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 100
	}

	q := s.DB.WithContext(ctx).Where("user_id = ?", userID)
	if strings.TrimSpace(status) != "" {
		q = q.Where("LOWER(status) = LOWER(?)", strings.TrimSpace(status))
	}

	var apps []models.Application
	err := q.Order("date_of_application DESC, created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (s *ApplicationService) Get(ctx context.Context, userID, id string) (*models.Application, error) {
	var app models.Application
	err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch application: %w", err)
	}
	return &app, nil
}

func (s *ApplicationService) Create(ctx context.Context, userID string, req *dtos.CreateApplicationRequest, cols []models.ColumnConfig) (*models.Application, error) {
	status := strings.TrimSpace(req.Status)
	if status == "" {
		// New cards land in the first board column.
		if len(cols) == 0 {
			cols = board.DefaultColumns()
		}
		status = cols[0].Title
	}

	custom, err := toJSON(req.CustomFields)
	if err != nil {
		return nil, err
	}

	app := &models.Application{
		ID:                uuid.New().String(),
		UserID:            userID,
		CompanyName:       strings.TrimSpace(req.CompanyName),
		RoleName:          strings.TrimSpace(req.RoleName),
		DateOfApplication: req.DateOfApplication,
		Status:            status,
		JobLink:           req.JobLink,
		JobDescription:    req.JobDescription,
		Tailored:          req.Tailored,
		Referral:          req.Referral,
		CustomFields:      custom,
	}
	if err := s.DB.WithContext(ctx).Create(app).Error; err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return app, nil
}

// Update replaces every mutable field.
func (s *ApplicationService) Update(ctx context.Context, userID, id string, req *dtos.UpdateApplicationRequest) (*models.Application, error) {
	app, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		return nil, ErrEmptyStatus
	}
	custom, err := toJSON(req.CustomFields)
	if err != nil {
		return nil, err
	}

	app.CompanyName = strings.TrimSpace(req.CompanyName)
	app.RoleName = strings.TrimSpace(req.RoleName)
	app.DateOfApplication = req.DateOfApplication
	app.Status = status
	app.JobLink = req.JobLink
	app.JobDescription = req.JobDescription
	app.Tailored = req.Tailored
	app.Referral = req.Referral
	app.CustomFields = custom

	if err := s.DB.WithContext(ctx).Save(app).Error; err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return app, nil
}

// PatchStatus is the status-only partial update behind drag/drop and inline
// edits. An unchanged status is a no-op.
func (s *ApplicationService) PatchStatus(ctx context.Context, userID, id, status string) (*models.Application, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, ErrEmptyStatus
	}

	app, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if app.Status == status {
		return app, nil
	}

	app.Status = status
	if err := s.DB.WithContext(ctx).Model(app).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	return app, nil
}

func (s *ApplicationService) Delete(ctx context.Context, userID, id string) error {
	res := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Application{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete application: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// DistinctStatuses returns every raw status string currently in use by the
// user's applications. Feeds the inline-edit suggestion list.
func (s *ApplicationService) DistinctStatuses(ctx context.Context, userID string) ([]string, error) {
	var statuses []string
	err := s.DB.WithContext(ctx).
		Model(&models.Application{}).
		Where("user_id = ?", userID).
		Distinct().
		Order("status").
		Pluck("status", &statuses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	return statuses, nil
}

func toJSON(m map[string]any) (datatypes.JSON, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode custom fields: %w", err)
	}
	return datatypes.JSON(b), nil
}
