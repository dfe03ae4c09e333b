package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"echocity/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	current *models.Profile
	known   map[string]*models.Profile
	findErr error
}

func (f *fakeSessions) GetCurrentSession(context.Context) *models.Profile {
	return f.current
}

func (f *fakeSessions) FindProfileByID(_ context.Context, id string) (*models.Profile, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.known[id], nil
}

func echoProfile(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := ProfileFromContext(r.Context())
		require.NotNil(t, p)
		w.Header().Set("X-Profile", p.ID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireSession(t *testing.T) {
	t.Run("NoSession", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireSession(&fakeSessions{})(echoProfile(t)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Unauthorized","message":"Login required","code":401}`, rec.Body.String())
	})

	t.Run("Session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s := &fakeSessions{current: &models.Profile{ID: "3", Role: models.RoleCitizen}}
		RequireSession(s)(echoProfile(t)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "3", rec.Header().Get("X-Profile"))
	})
}

func TestRequireAdmin(t *testing.T) {
	admin := &models.Profile{ID: "1", Role: models.RoleAdmin}
	citizen := &models.Profile{ID: "2", Role: models.RoleCitizen}

	tests := []struct {
		name     string
		sessions *fakeSessions
		want     int
	}{
		{"NoSession", &fakeSessions{}, http.StatusUnauthorized},
		{"Citizen", &fakeSessions{current: citizen, known: map[string]*models.Profile{"2": citizen}}, http.StatusForbidden},
		{"Admin", &fakeSessions{current: admin, known: map[string]*models.Profile{"1": admin}}, http.StatusOK},
		{"StalePointerClaimsAdmin", &fakeSessions{
			current: &models.Profile{ID: "2", Role: models.RoleAdmin},
			known:   map[string]*models.Profile{"2": citizen},
		}, http.StatusForbidden},
		{"UnknownProfileFallsBackToPointer", &fakeSessions{current: admin}, http.StatusOK},
		{"LookupError", &fakeSessions{current: admin, findErr: errors.New("down")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RequireAdmin(tt.sessions)(echoProfile(t)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestProfileFromContext_Empty(t *testing.T) {
	assert.Nil(t, ProfileFromContext(context.Background()))
}
