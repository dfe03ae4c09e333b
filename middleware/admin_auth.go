package middleware

import (
	"context"
	"net/http"
)

// RequireAdmin lets the request through only when the current session belongs to an admin.
// No session → 401, non-admin → 403. The role comes from the known profile with the
// session's id when one exists, else from the pointer itself.
func RequireAdmin(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile := sessions.GetCurrentSession(r.Context())
			if profile == nil {
				respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Login required")
				return
			}

			known, err := sessions.FindProfileByID(r.Context(), profile.ID)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "Internal error", "Failed to resolve session")
				return
			}
			if known != nil {
				profile = known
			}

			if !profile.IsAdmin() {
				respondWithError(w, http.StatusForbidden, "Forbidden", "Admin access required")
				return
			}

			ctx := context.WithValue(r.Context(), profileKey, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
