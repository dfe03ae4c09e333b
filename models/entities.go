package models

import (
	"math"
	"time"
)

// ComplaintStatus represents the possible statuses of a complaint
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "pending"
	StatusInProgress ComplaintStatus = "in_progress"
	StatusResolved   ComplaintStatus = "resolved"
)

// AllStatuses lists every status in dashboard order.
var AllStatuses = []ComplaintStatus{StatusPending, StatusInProgress, StatusResolved}

// Valid reports whether s is one of the three known statuses.
func (s ComplaintStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// Role represents what a profile is allowed to see on the dashboard
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleAdmin   Role = "admin"
)

// Profile represents a user account
type Profile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}

// IsAdmin reports whether the profile may see and triage every complaint.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// Category is a fixed taxonomy entry for classifying complaints
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Complaint represents a single citizen-reported issue.
// Profile and Category are attached at read time and are not persisted.
type Complaint struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	CategoryID  string          `json:"category_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url,omitempty"`
	Latitude    *float64        `json:"latitude,omitempty"`
	Longitude   *float64        `json:"longitude,omitempty"`
	Status      ComplaintStatus `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`

	Profile  *Profile  `json:"profiles,omitempty"`
	Category *Category `json:"categories,omitempty"`
}

// HasLocation reports whether both coordinates are present.
func (c *Complaint) HasLocation() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// Detached returns a copy without the read-time attachments, which is the persisted shape.
func (c Complaint) Detached() Complaint {
	c.Profile = nil
	c.Category = nil
	return c
}

// StatusCounts holds how many complaints are in each status
type StatusCounts struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
	Total      int `json:"total"`
}

// StatusPercentages holds the rounded share of each status, as shown by the distribution bar
type StatusPercentages struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
}

// Cluster groups complaints that fall in the same ~0.01° grid cell.
// Latitude/Longitude are the representative point (the first member).
type Cluster struct {
	Key        string      `json:"key"`
	Latitude   float64     `json:"latitude"`
	Longitude  float64     `json:"longitude"`
	Complaints []Complaint `json:"complaints"`
}

// Size returns the number of complaints in the cluster
func (c Cluster) Size() int {
	return len(c.Complaints)
}

// Percentages returns each status's share of the total, rounded to the nearest whole percent.
// All shares are zero when there are no complaints.
func (c StatusCounts) Percentages() StatusPercentages {
	if c.Total == 0 {
		return StatusPercentages{}
	}
	share := func(n int) int {
		return int(math.Round(float64(n) / float64(c.Total) * 100))
	}
	return StatusPercentages{
		Pending:    share(c.Pending),
		InProgress: share(c.InProgress),
		Resolved:   share(c.Resolved),
	}
}
