package repository

import (
	"context"
	"echocity/models"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ProfileRepository holds the known profiles.
// When persist is true the list lives under the "profiles" key; otherwise
// registrations are kept in process memory and lost on restart.
type ProfileRepository struct {
	kv      KeyValueStore
	persist bool
	writeMu *sync.Mutex // held across load-append-save
	logger  *zap.Logger

	mu     sync.Mutex
	memory []models.Profile
}

// NewProfileRepository creates a profile repository seeded with seed.
// writeMu is shared with the other writers of the same store; nil gives the repository its own.
func NewProfileRepository(kv KeyValueStore, seed []models.Profile, persist bool, writeMu *sync.Mutex, logger *zap.Logger) *ProfileRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	if writeMu == nil {
		writeMu = &sync.Mutex{}
	}
	return &ProfileRepository{
		kv:      kv,
		persist: persist,
		writeMu: writeMu,
		logger:  logger.Named("profile_repo"),
		memory:  append([]models.Profile(nil), seed...),
	}
}

// LoadAll returns every known profile in registration order
func (r *ProfileRepository) LoadAll(ctx context.Context) ([]models.Profile, error) {
	if !r.persist {
		r.mu.Lock()
		defer r.mu.Unlock()
		return append([]models.Profile(nil), r.memory...), nil
	}

	raw, found, err := r.kv.Get(ctx, KeyProfiles)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}
	if !found {
		return r.seedCopy(), nil
	}

	var profiles []models.Profile
	if err := json.Unmarshal([]byte(raw), &profiles); err != nil {
		r.logger.Warn("stored profiles are corrupt, serving seed set", zap.Error(err))
		return r.seedCopy(), nil
	}
	return profiles, nil
}

// FindByEmail returns the first profile with exactly this email, or nil
func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	profiles, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		if profiles[i].Email == email {
			return &profiles[i], nil
		}
	}
	return nil, nil
}

// FindByID returns the profile with this id, or nil
func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	profiles, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		if profiles[i].ID == id {
			return &profiles[i], nil
		}
	}
	return nil, nil
}

// Append adds a newly registered profile
func (r *ProfileRepository) Append(ctx context.Context, profile models.Profile) error {
	if !r.persist {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.memory = append(r.memory, profile)
		return nil
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	profiles, err := r.LoadAll(ctx)
	if err != nil {
		return err
	}
	profiles = append(profiles, profile)

	data, err := json.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("failed to encode profiles: %w", err)
	}
	if err := r.kv.Set(ctx, KeyProfiles, string(data)); err != nil {
		return fmt.Errorf("failed to store profiles: %w", err)
	}
	return nil
}

// seedCopy is only used in persist mode, where memory never changes after construction
func (r *ProfileRepository) seedCopy() []models.Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Profile(nil), r.memory...)
}
