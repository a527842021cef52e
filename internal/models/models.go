package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	SupabaseUserID string `gorm:"uniqueIndex;not null" json:"supabaseUserId"`
	Email          string `gorm:"not null" json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	DateOfBirth    string `json:"dateOfBirth,omitempty"`
	Timezone       string `json:"timezone,omitempty"`

	// Free-form profile sections (headline, skills, experience, ...).
	ProfileData datatypes.JSON `gorm:"type:jsonb" json:"profileData,omitempty"`

	// Board configuration. Embedded in the profile record so the
	// frontend reads columns and profile in one round trip.
	TrackerConfig TrackerConfig `gorm:"type:jsonb" json:"trackerConfig"`
}

type Application struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID string `gorm:"index;not null" json:"-"`

	CompanyName       string `gorm:"not null" json:"companyName"`
	RoleName          string `gorm:"not null" json:"roleName"`
	DateOfApplication string `gorm:"not null" json:"dateOfApplication"`

	// Free text, user definable. Never empty, always stored trimmed.
	Status string `gorm:"not null" json:"status"`

	JobLink        string         `json:"jobLink,omitempty"`
	JobDescription string         `gorm:"type:text" json:"jobDescription,omitempty"`
	Tailored       bool           `json:"tailored"`
	Referral       bool           `json:"referral"`
	CustomFields   datatypes.JSON `gorm:"type:jsonb" json:"customFields,omitempty"`
}
