package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"echocity/models"
	"echocity/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowKV widens the gap between a read and the write that follows it
type slowKV struct {
	*repository.MemoryKV
	delay time.Duration
}

func (s *slowKV) Get(ctx context.Context, key string) (string, bool, error) {
	time.Sleep(s.delay)
	return s.MemoryKV.Get(ctx, key)
}

func TestCreateComplaint_ConcurrentCallsAllPersist(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &slowKV{MemoryKV: repository.NewMemoryKV(), delay: time.Millisecond}, true)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.Complaints.CreateComplaint(ctx, CreateComplaintInput{
				UserID:      "2",
				CategoryID:  "1",
				Title:       fmt.Sprintf("pothole %d", i),
				Description: "d",
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	all, err := store.Complaints.ListComplaints(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 6+n)
}

func TestSetStatusAndCreate_DoNotOverwriteEachOther(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &slowKV{MemoryKV: repository.NewMemoryKV(), delay: time.Millisecond}, true)

	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := store.Complaints.CreateComplaint(ctx, CreateComplaintInput{UserID: "3", CategoryID: "2", Title: "t", Description: "d"})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Complaints.SetComplaintStatus(ctx, "1", models.StatusResolved))
		}()
	}
	wg.Wait()

	all, err := store.Complaints.ListComplaints(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 6+n)
	assert.Equal(t, models.StatusResolved, all[0].Status)
}

func TestRegister_ConcurrentCallsAllPersist(t *testing.T) {
	ctx := context.Background()
	kv := &slowKV{MemoryKV: repository.NewMemoryKV(), delay: time.Millisecond}
	store := newTestStore(t, kv, true)

	const n = 15
	var wg sync.WaitGroup
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := store.Auth.Register(ctx, fmt.Sprintf("user%d@example.com", i), "secret1", "User")
			if assert.NoError(t, err) {
				ids[i] = p.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		p, err := store.Auth.FindProfileByID(ctx, id)
		require.NoError(t, err)
		assert.NotNil(t, p, "profile %s was lost", id)
	}
}
