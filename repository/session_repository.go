package repository

import (
	"context"
	"echocity/models"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// SessionRepository reads and writes the current-session pointer
type SessionRepository struct {
	kv     KeyValueStore
	logger *zap.Logger
}

// NewSessionRepository creates a session repository over kv
func NewSessionRepository(kv KeyValueStore, logger *zap.Logger) *SessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionRepository{kv: kv, logger: logger.Named("session")}
}

// GetCurrent returns the profile marked current, or nil when logged out.
// A missing, unreadable or corrupt pointer is reported as nil, never as an error.
func (r *SessionRepository) GetCurrent(ctx context.Context) *models.Profile {
	raw, found, err := r.kv.Get(ctx, KeyCurrentUser)
	if err != nil {
		r.logger.Warn("session read failed", zap.Error(err))
		return nil
	}
	if !found {
		return nil
	}

	var profile models.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		r.logger.Warn("discarding corrupt session pointer", zap.Error(err))
		return nil
	}
	return &profile
}

// SetCurrent overwrites the pointer, or clears it when profile is nil
func (r *SessionRepository) SetCurrent(ctx context.Context, profile *models.Profile) error {
	if profile == nil {
		if err := r.kv.Delete(ctx, KeyCurrentUser); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		return nil
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.kv.Set(ctx, KeyCurrentUser, string(data)); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}
