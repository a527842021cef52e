package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tracker-backend/internal/board"
	"tracker-backend/internal/dtos"
	"tracker-backend/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

// GetOrCreate resolves the local user row for an authenticated session,
// creating it on first login. New users start with the default board columns.
func (s *ProfileService) GetOrCreate(ctx context.Context, supabaseUserID, email string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).
		Where("supabase_user_id = ?", supabaseUserID).
		First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	user = models.User{
		ID:             uuid.New().String(),
		SupabaseUserID: supabaseUserID,
		Email:          email,
		TrackerConfig:  models.TrackerConfig{Columns: board.DefaultColumns()},
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Update applies a partial profile update. A tracker config is validated
// before anything is written, so an invalid column set never reaches the
// database.
func (s *ProfileService) Update(ctx context.Context, userID string, req *dtos.UpdateProfileRequest) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if req.TrackerConfig != nil {
		if err := board.ValidateColumns(req.TrackerConfig.Columns); err != nil {
			return nil, err
		}
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.DateOfBirth != nil {
		user.DateOfBirth = *req.DateOfBirth
	}
	if req.Timezone != nil {
		user.Timezone = *req.Timezone
	}
	if req.ProfileData != nil {
		merged, err := mergeProfileData(user.ProfileData, req.ProfileData)
		if err != nil {
			return nil, err
		}
		user.ProfileData = merged
	}
	if req.TrackerConfig != nil {
		user.TrackerConfig = *req.TrackerConfig
	}

	if err := s.DB.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

// mergeProfileData overlays updated top-level keys onto the stored document,
// so a partial profileData update does not wipe unrelated sections.
func mergeProfileData(stored datatypes.JSON, update map[string]any) (datatypes.JSON, error) {
	current := map[string]any{}
	if len(stored) > 0 {
		if err := json.Unmarshal(stored, &current); err != nil {
			return nil, fmt.Errorf("failed to decode stored profile data: %w", err)
		}
	}
	for k, v := range update {
		if v == nil {
			delete(current, k)
			continue
		}
		current[k] = v
	}
	b, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile data: %w", err)
	}
	return datatypes.JSON(b), nil
}
