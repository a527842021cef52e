package dtos

import "tracker-backend/internal/models"

// UpdateProfileRequest is a partial update: nil pointers mean "leave as is".
type UpdateProfileRequest struct {
	FirstName     *string               `json:"firstName"`
	LastName      *string               `json:"lastName"`
	DateOfBirth   *string               `json:"dateOfBirth"`
	Timezone      *string               `json:"timezone"`
	ProfileData   map[string]any        `json:"profileData"`
	TrackerConfig *models.TrackerConfig `json:"trackerConfig"`
}
