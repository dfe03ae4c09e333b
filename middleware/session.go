package middleware

import (
	"context"
	"echocity/models"
	"encoding/json"
	"net/http"
)

type contextKey string

const profileKey contextKey = "profile"

// SessionResolver reads the current session and the known profile behind it
type SessionResolver interface {
	GetCurrentSession(ctx context.Context) *models.Profile
	FindProfileByID(ctx context.Context, id string) (*models.Profile, error)
}

// ProfileFromContext returns the session profile placed by RequireSession or RequireAdmin, or nil
func ProfileFromContext(ctx context.Context) *models.Profile {
	profile, _ := ctx.Value(profileKey).(*models.Profile)
	return profile
}

// RequireSession rejects the request with 401 unless a session is active,
// and puts the session profile in the request context.
func RequireSession(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile := sessions.GetCurrentSession(r.Context())
			if profile == nil {
				respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Login required")
				return
			}
			ctx := context.WithValue(r.Context(), profileKey, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// respondWithError sends an error response
func respondWithError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error:   errorType,
		Message: message,
		Code:    statusCode,
	})
}
