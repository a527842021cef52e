package dtos

// One explicit request type per mutation kind. Nothing here is a loose map:
// the payload shape is the contract.

type CreateApplicationRequest struct {
	CompanyName       string `json:"companyName" binding:"required"`
	RoleName          string `json:"roleName" binding:"required"`
	DateOfApplication string `json:"dateOfApplication" binding:"required"`

	// Optional Fields
	Status         string         `json:"status"` // defaults to the first board column when empty
	JobLink        string         `json:"jobLink"`
	JobDescription string         `json:"jobDescription"`
	Tailored       bool           `json:"tailored"`
	Referral       bool           `json:"referral"`
	CustomFields   map[string]any `json:"customFields"`
}

type UpdateApplicationRequest struct {
	CompanyName       string `json:"companyName" binding:"required"`
	RoleName          string `json:"roleName" binding:"required"`
	DateOfApplication string `json:"dateOfApplication" binding:"required"`
	Status            string `json:"status" binding:"required"`

	JobLink        string         `json:"jobLink"`
	JobDescription string         `json:"jobDescription"`
	Tailored       bool           `json:"tailored"`
	Referral       bool           `json:"referral"`
	CustomFields   map[string]any `json:"customFields"`
}

// StatusPatchRequest is the status-only partial update used by drag/drop and
// inline status edits.
type StatusPatchRequest struct {
	Status string `json:"status" binding:"required"`
}
