package service

import (
	"echocity/observability"
	"echocity/repository"
	"echocity/seed"
	"sync"

	"go.uber.org/zap"
)

// StoreOptions tunes a RecordStore. The zero value is usable.
type StoreOptions struct {
	Logger  *zap.Logger            // nil → no-op logger
	Metrics *observability.Metrics // nil → no metrics
	// PersistProfiles keeps registrations under the "profiles" key so they survive a restart.
	// When false they live in process memory only.
	PersistProfiles bool
}

// RecordStore is the single authority over profiles, complaints and the session pointer.
// Construct one per process. Writes within the process are serialized; separate processes
// sharing a backend are not coordinated.
type RecordStore struct {
	Auth       *AuthService
	Complaints *ComplaintService

	writeMu sync.Mutex
}

// NewRecordStore wires the repositories and services over kv, starting from data
func NewRecordStore(kv repository.KeyValueStore, data seed.Data, opts StoreOptions) *RecordStore {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	data = data.Clone()

	store := &RecordStore{}

	sessions := repository.NewSessionRepository(kv, logger)
	profiles := repository.NewProfileRepository(kv, data.Profiles, opts.PersistProfiles, &store.writeMu, logger)
	complaints := repository.NewComplaintRepository(kv, data.Complaints, logger)

	store.Auth = NewAuthService(sessions, profiles, opts.Metrics, logger)
	store.Complaints = NewComplaintService(complaints, profiles, data.Categories, &store.writeMu, opts.Metrics, logger)
	return store
}
