package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"echocity/models"
	"echocity/observability"
	"echocity/repository"
	"echocity/seed"
	"echocity/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	metrics := observability.NewMetrics()
	store := service.NewRecordStore(repository.NewMemoryKV(), seed.Default(), service.StoreOptions{
		Metrics:         metrics,
		PersistProfiles: true,
	})
	return SetupRoutes(store, metrics, nil)
}

func do(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func ids(complaints []models.Complaint) []string {
	out := make([]string, 0, len(complaints))
	for _, c := range complaints {
		out = append(out, c.ID)
	}
	return out
}

func login(t *testing.T, router http.Handler, email string) {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/api/v1/auth/login", models.LoginRequest{Email: email, Password: "secret1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestSessionLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/v1/session", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	login(t, router, "john@example.com")

	rec = do(t, router, http.MethodGet, "/api/v1/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", decode[models.Profile](t, rec).ID)

	rec = do(t, router, http.MethodPost, "/api/v1/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/session", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogin_Rejected(t *testing.T) {
	router := newTestRouter(t)

	for _, body := range []models.LoginRequest{
		{Email: "john@example.com", Password: "12345"},
		{Email: "nobody@example.com", Password: "secret1"},
	} {
		rec := do(t, router, http.MethodPost, "/api/v1/auth/login", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, service.MsgInvalidCredentials, decode[models.ErrorResponse](t, rec).Message)
	}

	rec := do(t, router, http.MethodPost, "/api/v1/auth/login", models.LoginRequest{Password: "secret1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "an empty email is a failed login, not a malformed request")
	assert.Equal(t, service.MsgInvalidCredentials, decode[models.ErrorResponse](t, rec).Message)

	rec = do(t, router, http.MethodGet, "/api/v1/session", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegister(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/v1/auth/register",
		models.RegisterRequest{Email: "new@example.com", Password: "abc", FullName: "New"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.MsgPasswordTooShort, decode[models.ErrorResponse](t, rec).Message)

	rec = do(t, router, http.MethodPost, "/api/v1/auth/register",
		models.RegisterRequest{Password: "abc"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.MsgPasswordTooShort, decode[models.ErrorResponse](t, rec).Message)

	rec = do(t, router, http.MethodPost, "/api/v1/auth/register",
		models.RegisterRequest{Email: "new@example.com", Password: "abcdef", FullName: "New"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[models.Profile](t, rec)
	assert.Equal(t, models.RoleCitizen, created.Role)
	assert.NotEmpty(t, created.ID)

	rec = do(t, router, http.MethodGet, "/api/v1/session", nil)
	assert.Equal(t, created.ID, decode[models.Profile](t, rec).ID)
}

func TestCreateComplaint(t *testing.T) {
	router := newTestRouter(t)

	body := map[string]interface{}{
		"category_id": "1",
		"title":       "Cracked sidewalk",
		"description": "Near the library",
		"latitude":    40.7,
	}

	rec := do(t, router, http.MethodPost, "/api/v1/complaints", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	login(t, router, "john@example.com")

	rec = do(t, router, http.MethodPost, "/api/v1/complaints", map[string]interface{}{"category_id": "1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/complaints", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.Complaint](t, rec)
	assert.Equal(t, "2", created.UserID)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Nil(t, created.Latitude, "a lone coordinate is dropped")
	require.NotNil(t, created.Profile)
	assert.Equal(t, "John Doe", created.Profile.FullName)
	require.NotNil(t, created.Category)
	assert.Equal(t, "Roads & Infrastructure", created.Category.Name)

	rec = do(t, router, http.MethodGet, "/api/v1/complaints/mine", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"1", "4", created.ID}, ids(decode[[]models.Complaint](t, rec)))

	rec = do(t, router, http.MethodGet, "/api/v1/complaints?user_id=2", nil)
	assert.Equal(t, []string{"1", "4", created.ID}, ids(decode[[]models.Complaint](t, rec)))
}

func TestMyComplaints_AdminSeesAll(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/v1/complaints/mine", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	login(t, router, "admin@echocity.com")
	rec = do(t, router, http.MethodGet, "/api/v1/complaints/mine", nil)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, ids(decode[[]models.Complaint](t, rec)))
}

func TestUpdateComplaintStatus(t *testing.T) {
	router := newTestRouter(t)
	resolved := models.UpdateStatusRequest{Status: models.StatusResolved}

	rec := do(t, router, http.MethodPost, "/api/v1/complaints/1/status", resolved)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	login(t, router, "john@example.com")
	rec = do(t, router, http.MethodPost, "/api/v1/complaints/1/status", resolved)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	login(t, router, "admin@echocity.com")
	rec = do(t, router, http.MethodPost, "/api/v1/complaints/1/status", resolved)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/complaints/1/status", map[string]string{"status": "closed"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/complaints/does-not-exist/status", resolved)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/complaints?status=resolved", nil)
	assert.Equal(t, []string{"1", "3"}, ids(decode[[]models.Complaint](t, rec)))
}

func TestStatsAndClusters(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/v1/complaints/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[models.ComplaintStatsResponse](t, rec)
	assert.Equal(t, models.StatusCounts{Pending: 3, InProgress: 2, Resolved: 1, Total: 6}, stats.Counts)
	assert.Equal(t, models.StatusPercentages{Pending: 50, InProgress: 33, Resolved: 17}, stats.Percentages)

	rec = do(t, router, http.MethodGet, "/api/v1/complaints/stats?category_id=all&status=pending", nil)
	stats = decode[models.ComplaintStatsResponse](t, rec)
	assert.Equal(t, 3, stats.Counts.Total)
	assert.Equal(t, 100, stats.Percentages.Pending)

	rec = do(t, router, http.MethodGet, "/api/v1/complaints/clusters", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	clusters := decode[[]models.Cluster](t, rec)
	require.Len(t, clusters, 5)
	assert.Equal(t, "4075_-7399", clusters[1].Key)
	assert.Equal(t, []string{"2", "6"}, ids(clusters[1].Complaints))

	rec = do(t, router, http.MethodGet, "/api/v1/complaints/clusters?category_id=7", nil)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCategories(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Category](t, rec), 8)
}

func TestHealthAndMetrics(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	login(t, router, "john@example.com")

	rec = do(t, router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `echocity_store_operations_total{operation="authenticate",result="ok"} 1`)
}
