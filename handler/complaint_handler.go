package handler

import (
	"echocity/middleware"
	"echocity/models"
	"echocity/service"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ComplaintHandler handles complaint-related HTTP requests
type ComplaintHandler struct {
	service  *service.ComplaintService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(complaintService *service.ComplaintService, logger *zap.Logger) *ComplaintHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComplaintHandler{
		service:  complaintService,
		validate: validator.New(),
		logger:   logger.Named("complaint_handler"),
	}
}

// GetCategories handles GET /api/v1/categories
func (h *ComplaintHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.ListCategories())
}

// ListComplaints handles GET /api/v1/complaints?user_id=&category_id=&status=
func (h *ComplaintHandler) ListComplaints(w http.ResponseWriter, r *http.Request) {
	complaints, ok := h.filteredComplaints(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, complaints)
}

// GetStats handles GET /api/v1/complaints/stats
func (h *ComplaintHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	complaints, ok := h.filteredComplaints(w, r)
	if !ok {
		return
	}
	counts := service.CountByStatus(complaints)
	respondWithJSON(w, http.StatusOK, models.ComplaintStatsResponse{
		Counts:      counts,
		Percentages: counts.Percentages(),
	})
}

// GetClusters handles GET /api/v1/complaints/clusters
func (h *ComplaintHandler) GetClusters(w http.ResponseWriter, r *http.Request) {
	complaints, ok := h.filteredComplaints(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, service.ClusterComplaints(complaints))
}

// GetMyComplaints handles GET /api/v1/complaints/mine (dashboard view; requires a session)
func (h *ComplaintHandler) GetMyComplaints(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.ProfileFromContext(r.Context())

	complaints, err := h.service.ListComplaintsForViewer(r.Context(), viewer)
	if err != nil {
		h.logger.Error("failed to list dashboard complaints", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal error", "Failed to get complaints")
		return
	}
	respondWithJSON(w, http.StatusOK, complaints)
}

// CreateComplaint handles POST /api/v1/complaints (requires a session)
func (h *ComplaintHandler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	reporter := middleware.ProfileFromContext(r.Context())
	if reporter == nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Login required")
		return
	}

	var req models.CreateComplaintRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	complaint, err := h.service.CreateComplaint(r.Context(), service.CreateComplaintInput{
		UserID:      reporter.ID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		h.logger.Error("failed to create complaint", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal error", "Failed to create complaint")
		return
	}

	respondWithJSON(w, http.StatusCreated, complaint)
}

// UpdateComplaintStatus handles POST /api/v1/complaints/{id}/status (requires an admin session).
// An unknown id is accepted and changes nothing.
func (h *ComplaintHandler) UpdateComplaintStatus(w http.ResponseWriter, r *http.Request) {
	complaintID := mux.Vars(r)["id"]

	var req models.UpdateStatusRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	if err := h.service.SetComplaintStatus(r.Context(), complaintID, req.Status); err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			respondWithError(w, http.StatusBadRequest, "Validation error", err.Error())
			return
		}
		h.logger.Error("failed to update complaint status", zap.String("complaint_id", complaintID), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal error", "Failed to update status")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// filteredComplaints loads complaints and applies the user_id, category_id and status query filters
func (h *ComplaintHandler) filteredComplaints(w http.ResponseWriter, r *http.Request) ([]models.Complaint, bool) {
	q := r.URL.Query()

	complaints, err := h.service.ListComplaints(r.Context(), q.Get("user_id"))
	if err != nil {
		h.logger.Error("failed to list complaints", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal error", "Failed to get complaints")
		return nil, false
	}

	return service.FilterComplaints(complaints, service.ComplaintFilter{
		CategoryID: q.Get("category_id"),
		Status:     models.ComplaintStatus(q.Get("status")),
	}), true
}
