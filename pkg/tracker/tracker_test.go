package tracker

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/feed"
	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/transit"
	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/tripstore"
)

// memoryStore implements TripStore with the same full-replace and
// empty-input-guard semantics as the MongoDB store.
type memoryStore struct {
	mu           sync.Mutex
	records      []transit.TripRecord
	replaceCalls int
}

func (m *memoryStore) ReplaceAll(ctx context.Context, records []transit.TripRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.replaceCalls++
	if len(records) == 0 {
		return nil
	}

	m.records = append([]transit.TripRecord{}, records...)
	return nil
}

func (m *memoryStore) IsEmpty(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records) == 0, nil
}

func (m *memoryStore) Query(ctx context.Context, filter tripstore.Filter) ([]transit.TripRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matches []transit.TripRecord
	for _, record := range m.records {
		if filter.RouteID != "" && !strings.Contains(strings.ToLower(record.RouteID), strings.ToLower(filter.RouteID)) {
			continue
		}
		if filter.RouteType != nil && record.RouteType != *filter.RouteType {
			continue
		}
		matches = append(matches, record)
	}

	return matches, nil
}

func (m *memoryStore) ByRouteID(ctx context.Context, routeID string) ([]transit.TripRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matches []transit.TripRecord
	for _, record := range m.records {
		if record.RouteID == routeID {
			matches = append(matches, record)
		}
	}
	return matches, nil
}

func (m *memoryStore) ByTripID(ctx context.Context, tripID string) ([]transit.TripRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matches []transit.TripRecord
	for _, record := range m.records {
		if record.TripID == tripID {
			matches = append(matches, record)
		}
	}
	return matches, nil
}

func (m *memoryStore) ByDocumentID(ctx context.Context, id string) (*transit.TripRecord, error) {
	return nil, nil
}

type fakeFetcher struct {
	mu       sync.Mutex
	fetches  atomic.Int64
	snapshot *feed.Snapshot
	err      error
	block    chan struct{}
}

func (f *fakeFetcher) FetchSnapshot(ctx context.Context) (*feed.Snapshot, error) {
	f.fetches.Add(1)
	if f.block != nil {
		<-f.block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot, nil
}

func singleTripSnapshot() *feed.Snapshot {
	return &feed.Snapshot{
		Header: feed.Header{Timestamp: "1700000000"},
		Entities: []feed.Entity{
			{TripUpdate: &feed.TripUpdate{Trip: feed.TripDescriptor{TripID: "T1", RouteID: "145"}}},
		},
	}
}

func TestQueryTripsLazyRefresh(t *testing.T) {
	store := &memoryStore{}
	fetcher := &fakeFetcher{snapshot: singleTripSnapshot()}
	transitTracker := New(referenceStore(), fetcher, store)

	// Empty cache: exactly one refresh before the filter is evaluated
	records, err := transitTracker.QueryTrips(context.Background(), tripstore.Filter{})
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, int64(1), fetcher.fetches.Load())

	// Populated cache: zero further refreshes
	_, err = transitTracker.QueryTrips(context.Background(), tripstore.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), fetcher.fetches.Load())
}

func TestQueryTripsLazyRefreshFailure(t *testing.T) {
	store := &memoryStore{}
	fetchErr := &transit.FeedFetchError{URL: "http://feed", StatusCode: 503, Err: assert.AnError}
	fetcher := &fakeFetcher{err: fetchErr}
	transitTracker := New(referenceStore(), fetcher, store)

	// The refresh failure propagates; no silent empty result
	_, err := transitTracker.QueryTrips(context.Background(), tripstore.Filter{})
	require.Error(t, err)

	var feedErr *transit.FeedFetchError
	assert.ErrorAs(t, err, &feedErr)
}

func TestRefreshReplacesGeneration(t *testing.T) {
	store := &memoryStore{}
	fetcher := &fakeFetcher{snapshot: singleTripSnapshot()}
	transitTracker := New(referenceStore(), fetcher, store)

	require.NoError(t, transitTracker.Refresh(context.Background()))
	require.NoError(t, transitTracker.Refresh(context.Background()))

	// Two identical refreshes leave one generation, no accumulation
	records, err := store.Query(context.Background(), tripstore.Filter{})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRefreshEmptySnapshotKeepsCache(t *testing.T) {
	store := &memoryStore{}
	fetcher := &fakeFetcher{snapshot: singleTripSnapshot()}
	transitTracker := New(referenceStore(), fetcher, store)

	require.NoError(t, transitTracker.Refresh(context.Background()))

	// A transient empty feed must not wipe the healthy cache
	fetcher.mu.Lock()
	fetcher.snapshot = &feed.Snapshot{Header: feed.Header{Timestamp: "1700000600"}}
	fetcher.mu.Unlock()

	require.NoError(t, transitTracker.Refresh(context.Background()))

	empty, err := store.IsEmpty(context.Background())
	require.NoError(t, err)
	assert.False(t, empty)
}

func TestRefreshSingleFlight(t *testing.T) {
	store := &memoryStore{}
	fetcher := &fakeFetcher{snapshot: singleTripSnapshot(), block: make(chan struct{})}
	transitTracker := New(referenceStore(), fetcher, store)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = transitTracker.Refresh(context.Background())
		}()
	}

	// Let every goroutine reach the in-flight refresh before releasing it
	time.Sleep(50 * time.Millisecond)
	close(fetcher.block)
	wg.Wait()

	assert.Equal(t, int64(1), fetcher.fetches.Load())
	assert.Equal(t, 1, store.replaceCalls)
}

func TestTripsByRouteID(t *testing.T) {
	store := &memoryStore{}
	fetcher := &fakeFetcher{snapshot: singleTripSnapshot()}
	transitTracker := New(referenceStore(), fetcher, store)

	require.NoError(t, transitTracker.Refresh(context.Background()))

	records, err := transitTracker.TripsByRouteID(context.Background(), "145")
	require.NoError(t, err)
	assert.Len(t, records, 1)

	records, err = transitTracker.TripsByRouteID(context.Background(), "146")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestListStopNames(t *testing.T) {
	transitTracker := New(referenceStore(), &fakeFetcher{}, &memoryStore{})

	assert.Equal(t, []string{"Heuston Station", "Merrion Square"}, transitTracker.ListStopNames())
}

func TestFilterComposition(t *testing.T) {
	store := &memoryStore{
		records: []transit.TripRecord{
			{TripID: "T1", RouteID: "145", RouteType: 3},
			{TripID: "T2", RouteID: "145", RouteType: 0},
			{TripID: "T3", RouteID: "46A", RouteType: 3},
		},
	}
	transitTracker := New(referenceStore(), &fakeFetcher{}, store)

	routeType := 3
	records, err := transitTracker.QueryTrips(context.Background(), tripstore.Filter{
		RouteID:   "145",
		RouteType: &routeType,
	})
	require.NoError(t, err)

	// AND semantics: only the record matching both predicates
	require.Len(t, records, 1)
	assert.Equal(t, "T1", records[0].TripID)
}
