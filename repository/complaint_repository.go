package repository

import (
	"context"
	"echocity/models"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// ComplaintRepository loads and stores the whole complaint collection under one key
type ComplaintRepository struct {
	kv     KeyValueStore
	seed   []models.Complaint
	logger *zap.Logger
}

// NewComplaintRepository creates a complaint repository. seed is served until the first write.
func NewComplaintRepository(kv KeyValueStore, seed []models.Complaint, logger *zap.Logger) *ComplaintRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComplaintRepository{
		kv:     kv,
		seed:   detachAll(seed),
		logger: logger.Named("complaint_repo"),
	}
}

// LoadAll returns every complaint in stored order.
// An absent key yields a copy of the seed set; so does an unparseable blob, which is logged.
func (r *ComplaintRepository) LoadAll(ctx context.Context) ([]models.Complaint, error) {
	raw, found, err := r.kv.Get(ctx, KeyComplaints)
	if err != nil {
		return nil, fmt.Errorf("failed to read complaints: %w", err)
	}
	if !found {
		return r.seedCopy(), nil
	}

	var complaints []models.Complaint
	if err := json.Unmarshal([]byte(raw), &complaints); err != nil {
		r.logger.Warn("stored complaints are corrupt, serving seed set", zap.Error(err))
		return r.seedCopy(), nil
	}
	return complaints, nil
}

// SaveAll replaces the stored collection in a single write
func (r *ComplaintRepository) SaveAll(ctx context.Context, complaints []models.Complaint) error {
	data, err := json.Marshal(detachAll(complaints))
	if err != nil {
		return fmt.Errorf("failed to encode complaints: %w", err)
	}
	if err := r.kv.Set(ctx, KeyComplaints, string(data)); err != nil {
		return fmt.Errorf("failed to store complaints: %w", err)
	}
	return nil
}

func (r *ComplaintRepository) seedCopy() []models.Complaint {
	out := make([]models.Complaint, len(r.seed))
	for i, c := range r.seed {
		if c.Latitude != nil {
			lat := *c.Latitude
			c.Latitude = &lat
		}
		if c.Longitude != nil {
			lng := *c.Longitude
			c.Longitude = &lng
		}
		out[i] = c
	}
	return out
}

func detachAll(complaints []models.Complaint) []models.Complaint {
	out := make([]models.Complaint, len(complaints))
	for i, c := range complaints {
		out[i] = c.Detached()
	}
	return out
}
