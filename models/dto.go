package models

// LoginRequest is the body of POST /api/v1/auth/login.
// Fields are not validated here; an unknown or empty email is simply a failed login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /api/v1/auth/register.
// Only the password length is enforced, by the store.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// CreateComplaintRequest is the body of POST /api/v1/complaints.
// The reporting user comes from the current session, never from the body.
// A lone coordinate is accepted and dropped by the store.
type CreateComplaintRequest struct {
	CategoryID  string   `json:"category_id" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

// UpdateStatusRequest is the body of POST /api/v1/complaints/{id}/status
type UpdateStatusRequest struct {
	Status ComplaintStatus `json:"status" validate:"required,oneof=pending in_progress resolved"`
}

// ComplaintStatsResponse is the dashboard overview payload
type ComplaintStatsResponse struct {
	Counts      StatusCounts      `json:"counts"`
	Percentages StatusPercentages `json:"percentages"`
}

// ErrorResponse is the error envelope for every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
