package routes

import (
	"echocity/handler"
	"echocity/middleware"
	"echocity/observability"
	"echocity/service"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRoutes configures all API routes
func SetupRoutes(store *service.RecordStore, metrics *observability.Metrics, logger *zap.Logger) *mux.Router {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := mux.NewRouter()
	router.Use(observability.RequestLogger(logger.Named("http")))

	// Initialize handlers
	authHandler := handler.NewAuthHandler(store.Auth, logger)
	complaintHandler := handler.NewComplaintHandler(store.Complaints, logger)

	requireSession := middleware.RequireSession(store.Auth)
	requireAdmin := middleware.RequireAdmin(store.Auth)

	// API v1 routes
	apiV1 := router.PathPrefix("/api/v1").Subrouter()

	apiV1.HandleFunc("/session", authHandler.GetSession).Methods("GET")
	apiV1.HandleFunc("/categories", complaintHandler.GetCategories).Methods("GET")

	// Auth routes (public)
	auth := apiV1.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")
	auth.HandleFunc("/register", authHandler.Register).Methods("POST")
	auth.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	// Complaint routes
	complaints := apiV1.PathPrefix("/complaints").Subrouter()

	// GET /api/v1/complaints - map/list view, optional user_id, category_id, status filters (PUBLIC)
	complaints.HandleFunc("", complaintHandler.ListComplaints).Methods("GET")
	complaints.HandleFunc("/stats", complaintHandler.GetStats).Methods("GET")
	complaints.HandleFunc("/clusters", complaintHandler.GetClusters).Methods("GET")

	// POST /api/v1/complaints - submit a complaint as the session user (REQUIRES SESSION)
	complaints.Handle("", requireSession(http.HandlerFunc(complaintHandler.CreateComplaint))).Methods("POST")
	complaints.Handle("/mine", requireSession(http.HandlerFunc(complaintHandler.GetMyComplaints))).Methods("GET")

	// POST /api/v1/complaints/{id}/status - triage (REQUIRES ADMIN SESSION)
	complaints.Handle("/{id}/status", requireAdmin(http.HandlerFunc(complaintHandler.UpdateComplaintStatus))).Methods("POST")

	// Prometheus scrape endpoint
	if metrics != nil {
		router.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})).Methods("GET")
	}

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	return router
}
