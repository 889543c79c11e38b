package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tire-advisor/app/models"
)

// fakeFetcher is a scriptable Fetcher that counts calls.
type fakeFetcher struct {
	mu      sync.Mutex
	records []models.TireRecord
	err     error
	delay   time.Duration
	calls   atomic.Int32
}

func (f *fakeFetcher) Fetch(ctx context.Context) ([]models.TireRecord, error) {
	f.calls.Add(1)
	f.mu.Lock()
	records, err, delay := f.records, f.err, f.delay
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (f *fakeFetcher) set(records []models.TireRecord, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records, f.err = records, err
}

func someRecords(pattern string) []models.TireRecord {
	return []models.TireRecord{{Brand: "TOYO", Pattern: pattern, SizeCode: "205/55R16"}}
}

func TestStoreServesFreshGeneration(t *testing.T) {
	fetcher := &fakeFetcher{records: someRecords("PROXES CF2")}
	store := NewStore(fetcher, time.Minute, zap.NewNop())

	first, err := store.Records(context.Background())
	require.NoError(t, err)
	second, err := store.Records(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), fetcher.calls.Load(), "fresh generation must not refetch")
}

func TestStoreRefreshesAfterTTL(t *testing.T) {
	fetcher := &fakeFetcher{records: someRecords("PROXES CF2")}
	store := NewStore(fetcher, 10*time.Millisecond, zap.NewNop())

	_, err := store.Records(context.Background())
	require.NoError(t, err)

	fetcher.set(someRecords("PROXES Sport 2"), nil)
	time.Sleep(20 * time.Millisecond)

	records, err := store.Records(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "PROXES Sport 2", records[0].Pattern)
	assert.Equal(t, int32(2), fetcher.calls.Load())
}

func TestStoreServesStaleOnRefreshFailure(t *testing.T) {
	fetcher := &fakeFetcher{records: someRecords("PROXES CF2")}
	store := NewStore(fetcher, 10*time.Millisecond, zap.NewNop())

	_, err := store.Records(context.Background())
	require.NoError(t, err)

	fetcher.set(nil, errors.New("feed offline"))
	time.Sleep(20 * time.Millisecond)

	records, err := store.Records(context.Background())
	require.NoError(t, err, "stale generation must absorb the refresh failure")
	assert.Equal(t, "PROXES CF2", records[0].Pattern)
}

func TestStoreErrorsWithoutAnyGeneration(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("feed offline")}
	store := NewStore(fetcher, time.Minute, zap.NewNop())

	_, err := store.Records(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrDataSource))
}

func TestStoreInvalidateForcesRefetch(t *testing.T) {
	fetcher := &fakeFetcher{records: someRecords("PROXES CF2")}
	store := NewStore(fetcher, time.Minute, zap.NewNop())

	_, err := store.Records(context.Background())
	require.NoError(t, err)

	store.Invalidate()

	_, err = store.Records(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), fetcher.calls.Load())
}

func TestStoreCollapsesConcurrentRefreshes(t *testing.T) {
	fetcher := &fakeFetcher{records: someRecords("PROXES CF2"), delay: 50 * time.Millisecond}
	store := NewStore(fetcher, time.Minute, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			records, err := store.Records(context.Background())
			assert.NoError(t, err)
			assert.Len(t, records, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), fetcher.calls.Load(), "concurrent cold reads must share one fetch")
}

func TestStoreStats(t *testing.T) {
	fetcher := &fakeFetcher{records: someRecords("PROXES CF2")}
	store := NewStore(fetcher, time.Minute, zap.NewNop())

	stats := store.Stats()
	assert.Equal(t, false, stats["loaded"])

	_, err := store.Records(context.Background())
	require.NoError(t, err)

	stats = store.Stats()
	assert.Equal(t, true, stats["loaded"])
	assert.Equal(t, 1, stats["records"])
	assert.Equal(t, 60, stats["ttl_seconds"])
}
