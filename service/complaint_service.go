package service

import (
	"context"
	"echocity/models"
	"echocity/observability"
	"echocity/repository"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateComplaintInput carries the raw form input for a new complaint
type CreateComplaintInput struct {
	UserID      string
	CategoryID  string
	Title       string
	Description string
	ImageURL    *string
	Latitude    *float64
	Longitude   *float64
}

// ComplaintService handles complaint listing, submission and status triage
type ComplaintService struct {
	repo       *repository.ComplaintRepository
	profiles   *repository.ProfileRepository
	categories []models.Category
	writeMu    *sync.Mutex // held across every load-modify-save of the collection
	now        func() time.Time
	newID      func() string
	metrics    *observability.Metrics // optional
	logger     *zap.Logger
}

// NewComplaintService creates a new complaint service.
// writeMu is shared with the other writers of the same store; nil gives the service its own.
func NewComplaintService(
	repo *repository.ComplaintRepository,
	profiles *repository.ProfileRepository,
	categories []models.Category,
	writeMu *sync.Mutex,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *ComplaintService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if writeMu == nil {
		writeMu = &sync.Mutex{}
	}
	return &ComplaintService{
		repo:       repo,
		profiles:   profiles,
		categories: append([]models.Category(nil), categories...),
		writeMu:    writeMu,
		now:        time.Now,
		newID:      uuid.NewString,
		metrics:    metrics,
		logger:     logger.Named("complaint"),
	}
}

// ListCategories returns the complaint taxonomy
func (s *ComplaintService) ListCategories() []models.Category {
	return append([]models.Category(nil), s.categories...)
}

// ListComplaints returns complaints in stored order with profile and category attached.
// A non-empty userID keeps only that user's complaints, preserving relative order.
func (s *ComplaintService) ListComplaints(ctx context.Context, userID string) ([]models.Complaint, error) {
	complaints, err := s.repo.LoadAll(ctx)
	if err != nil {
		s.metrics.RecordOperation("list_complaints", "error")
		return nil, fmt.Errorf("failed to get complaints: %w", err)
	}

	if userID != "" {
		filtered := make([]models.Complaint, 0, len(complaints))
		for _, c := range complaints {
			if c.UserID == userID {
				filtered = append(filtered, c)
			}
		}
		complaints = filtered
	}

	if err := s.attach(ctx, complaints); err != nil {
		s.metrics.RecordOperation("list_complaints", "error")
		return nil, err
	}

	s.metrics.RecordOperation("list_complaints", "ok")
	return complaints, nil
}

// ListComplaintsForViewer applies the dashboard rule: admins see everything, citizens their own.
// A nil viewer sees nothing.
func (s *ComplaintService) ListComplaintsForViewer(ctx context.Context, viewer *models.Profile) ([]models.Complaint, error) {
	if viewer == nil {
		return []models.Complaint{}, nil
	}
	if viewer.IsAdmin() {
		return s.ListComplaints(ctx, "")
	}
	return s.ListComplaints(ctx, viewer.ID)
}

// CreateComplaint appends a pending complaint and returns it with profile and category attached.
// Coordinates are kept only when both are supplied.
func (s *ComplaintService) CreateComplaint(ctx context.Context, in CreateComplaintInput) (*models.Complaint, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	complaints, err := s.repo.LoadAll(ctx)
	if err != nil {
		s.metrics.RecordOperation("create_complaint", "error")
		return nil, fmt.Errorf("failed to get complaints: %w", err)
	}

	complaint := models.Complaint{
		ID:          s.newID(),
		UserID:      in.UserID,
		CategoryID:  in.CategoryID,
		Title:       in.Title,
		Description: in.Description,
		Status:      models.StatusPending,
		CreatedAt:   s.now().UTC().Truncate(time.Millisecond),
	}
	if in.ImageURL != nil {
		complaint.ImageURL = *in.ImageURL
	}
	if in.Latitude != nil && in.Longitude != nil {
		lat, lng := *in.Latitude, *in.Longitude
		complaint.Latitude = &lat
		complaint.Longitude = &lng
	}

	complaints = append(complaints, complaint)
	if err := s.repo.SaveAll(ctx, complaints); err != nil {
		s.metrics.RecordOperation("create_complaint", "error")
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}

	created := []models.Complaint{complaint}
	if err := s.attach(ctx, created); err != nil {
		return nil, err
	}

	s.metrics.RecordOperation("create_complaint", "ok")
	s.metrics.RecordComplaintCreated()
	s.logger.Info("complaint created",
		zap.String("complaint_id", complaint.ID),
		zap.String("user_id", complaint.UserID),
		zap.String("category_id", complaint.CategoryID),
		zap.Bool("has_location", complaint.HasLocation()),
	)
	return &created[0], nil
}

// SetComplaintStatus overwrites the status of complaint id and persists the collection.
// Any of the three statuses is accepted regardless of the current one.
// An unknown id is a silent no-op and nothing is written.
func (s *ComplaintService) SetComplaintStatus(ctx context.Context, id string, status models.ComplaintStatus) error {
	if !status.Valid() {
		s.metrics.RecordOperation("set_status", "invalid")
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	complaints, err := s.repo.LoadAll(ctx)
	if err != nil {
		s.metrics.RecordOperation("set_status", "error")
		return fmt.Errorf("failed to get complaints: %w", err)
	}

	idx := -1
	for i := range complaints {
		if complaints[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.metrics.RecordOperation("set_status", "miss")
		s.logger.Debug("status update for unknown complaint ignored", zap.String("complaint_id", id))
		return nil
	}

	oldStatus := complaints[idx].Status
	complaints[idx].Status = status
	if err := s.repo.SaveAll(ctx, complaints); err != nil {
		s.metrics.RecordOperation("set_status", "error")
		return fmt.Errorf("failed to update complaint status: %w", err)
	}

	s.metrics.RecordOperation("set_status", "ok")
	s.metrics.RecordStatusUpdate(status)
	s.logger.Info("complaint status updated",
		zap.String("complaint_id", id),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", string(status)),
	)
	return nil
}

// attach joins each complaint with its profile and category in place.
// A dangling reference leaves the attachment nil.
func (s *ComplaintService) attach(ctx context.Context, complaints []models.Complaint) error {
	profiles, err := s.profiles.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to get profiles: %w", err)
	}

	profileByID := make(map[string]*models.Profile, len(profiles))
	for i := range profiles {
		if _, seen := profileByID[profiles[i].ID]; !seen {
			profileByID[profiles[i].ID] = &profiles[i]
		}
	}
	categoryByID := make(map[string]*models.Category, len(s.categories))
	for i := range s.categories {
		if _, seen := categoryByID[s.categories[i].ID]; !seen {
			cat := s.categories[i]
			categoryByID[cat.ID] = &cat
		}
	}

	for i := range complaints {
		complaints[i].Profile = profileByID[complaints[i].UserID]
		complaints[i].Category = categoryByID[complaints[i].CategoryID]
	}
	return nil
}
