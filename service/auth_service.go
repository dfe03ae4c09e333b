package service

import (
	"context"
	"echocity/models"
	"echocity/observability"
	"echocity/repository"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// passwordRule is the placeholder credential policy: only the length is ever looked at
const passwordRule = "min=6"

// AuthService handles the session pointer, login and registration.
// Passwords are never stored or compared; see Authenticate.
type AuthService struct {
	sessions *repository.SessionRepository
	profiles *repository.ProfileRepository
	validate *validator.Validate
	newID    func() string
	metrics  *observability.Metrics // optional
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	sessions *repository.SessionRepository,
	profiles *repository.ProfileRepository,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		sessions: sessions,
		profiles: profiles,
		validate: validator.New(),
		newID:    uuid.NewString,
		metrics:  metrics,
		logger:   logger.Named("auth"),
	}
}

// GetCurrentSession returns the logged-in profile, or nil when logged out or the pointer is unreadable
func (s *AuthService) GetCurrentSession(ctx context.Context) *models.Profile {
	return s.sessions.GetCurrent(ctx)
}

// SetCurrentSession overwrites the session pointer, or clears it when profile is nil
func (s *AuthService) SetCurrentSession(ctx context.Context, profile *models.Profile) error {
	return s.sessions.SetCurrent(ctx, profile)
}

// Authenticate logs in the profile with exactly this email.
// Succeeds iff such a profile exists and the password is at least 6 characters long;
// the password's value is not checked. Returns nil, nil on failure with no mutation.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.Profile, error) {
	profile, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		s.metrics.RecordOperation("authenticate", "error")
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}
	if profile == nil || !s.passwordAcceptable(password) {
		s.metrics.RecordOperation("authenticate", "miss")
		s.logger.Debug("login rejected", zap.String("email", email), zap.Bool("known_email", profile != nil))
		return nil, nil
	}

	if err := s.sessions.SetCurrent(ctx, profile); err != nil {
		s.metrics.RecordOperation("authenticate", "error")
		return nil, err
	}

	s.metrics.RecordOperation("authenticate", "ok")
	s.logger.Info("profile logged in", zap.String("profile_id", profile.ID), zap.String("role", string(profile.Role)))
	return profile, nil
}

// Register creates a citizen profile and makes it the current session.
// A password shorter than 6 characters fails with *ValidationError and changes nothing.
// Email uniqueness is not checked.
func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*models.Profile, error) {
	if !s.passwordAcceptable(password) {
		s.metrics.RecordOperation("register", "invalid")
		return nil, &ValidationError{Field: "password", Message: MsgPasswordTooShort}
	}

	profile := models.Profile{
		ID:       s.newID(),
		Email:    email,
		FullName: fullName,
		Role:     models.RoleCitizen,
	}

	if err := s.profiles.Append(ctx, profile); err != nil {
		s.metrics.RecordOperation("register", "error")
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	if err := s.sessions.SetCurrent(ctx, &profile); err != nil {
		s.metrics.RecordOperation("register", "error")
		return nil, err
	}

	s.metrics.RecordOperation("register", "ok")
	s.logger.Info("profile registered", zap.String("profile_id", profile.ID))
	return &profile, nil
}

// Logout clears the session pointer
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.SetCurrent(ctx, nil)
}

// FindProfileByID returns the known profile with this id, or nil
func (s *AuthService) FindProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	return s.profiles.FindByID(ctx, id)
}

func (s *AuthService) passwordAcceptable(password string) bool {
	return s.validate.Var(password, passwordRule) == nil
}
