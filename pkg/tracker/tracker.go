// Package tracker coordinates the ingestion pipeline: it fetches realtime
// snapshots, normalises them against the static reference data and swaps
// the queryable cache, and answers filtered reads with lazy population.
package tracker

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/config"
	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/feed"
	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/staticref"
	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/transit"
	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/tripstore"
)

// TripStore is the slice of the document store the tracker needs.
// *tripstore.Store implements it.
type TripStore interface {
	ReplaceAll(ctx context.Context, records []transit.TripRecord) error
	IsEmpty(ctx context.Context) (bool, error)
	Query(ctx context.Context, filter tripstore.Filter) ([]transit.TripRecord, error)
	ByRouteID(ctx context.Context, routeID string) ([]transit.TripRecord, error)
	ByTripID(ctx context.Context, tripID string) ([]transit.TripRecord, error)
	ByDocumentID(ctx context.Context, id string) (*transit.TripRecord, error)
}

// SnapshotFetcher is the slice of the feed fetcher the tracker needs.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context) (*feed.Snapshot, error)
}

type Tracker struct {
	Static  *staticref.Store
	Fetcher SnapshotFetcher
	Store   TripStore

	refreshGroup singleflight.Group
}

func New(static *staticref.Store, fetcher SnapshotFetcher, store TripStore) *Tracker {
	return &Tracker{
		Static:  static,
		Fetcher: fetcher,
		Store:   store,
	}
}

// NewFromConfig ensures the static reference data is on disk, loads it and
// wires the tracker against the live feed endpoint and MongoDB store.
func NewFromConfig(ctx context.Context, cfg *config.Config) (*Tracker, error) {
	if err := staticref.EnsureStaticData(ctx, cfg.Static.BundleURL, cfg.Static.DataDir); err != nil {
		return nil, err
	}

	static, err := staticref.Load(cfg.Static.DataDir)
	if err != nil {
		return nil, err
	}

	fetcher := feed.NewFetcher(cfg.Realtime.FeedURL, cfg.Realtime.APIKey, cfg.RealtimeTimeout())

	return New(static, fetcher, tripstore.NewStore()), nil
}

// Refresh performs one fetch → normalise → replace cycle. Concurrent
// callers share a single in-flight refresh, so two lazy-empty queries
// racing cannot trigger duplicate external fetches or duplicate
// delete/insert cycles.
func (t *Tracker) Refresh(ctx context.Context) error {
	_, err, shared := t.refreshGroup.Do("refresh", func() (interface{}, error) {
		return nil, t.refresh(ctx)
	})

	if shared {
		log.Debug().Msg("Joined in-flight refresh")
	}

	return err
}

func (t *Tracker) refresh(ctx context.Context) error {
	snapshot, err := t.Fetcher.FetchSnapshot(ctx)
	if err != nil {
		return err
	}

	records := Normalise(snapshot, t.Static)

	return t.Store.ReplaceAll(ctx, records)
}

// QueryTrips evaluates the filter against the cache, populating it first if
// it is empty. A failed lazy refresh fails the query; an empty result is
// never silently substituted for a refresh error.
func (t *Tracker) QueryTrips(ctx context.Context, filter tripstore.Filter) ([]transit.TripRecord, error) {
	empty, err := t.Store.IsEmpty(ctx)
	if err != nil {
		return nil, err
	}

	if empty {
		log.Info().Msg("Trip cache empty, refreshing before query")
		if err := t.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	return t.Store.Query(ctx, filter)
}

// TripsByRouteID returns cached records with an exactly matching route_id.
func (t *Tracker) TripsByRouteID(ctx context.Context, routeID string) ([]transit.TripRecord, error) {
	return t.Store.ByRouteID(ctx, routeID)
}

// TripsByTripID returns cached records with an exactly matching trip_id.
func (t *Tracker) TripsByTripID(ctx context.Context, tripID string) ([]transit.TripRecord, error) {
	return t.Store.ByTripID(ctx, tripID)
}

// TripByID returns the cached record with the given document id, or nil.
func (t *Tracker) TripByID(ctx context.Context, id string) (*transit.TripRecord, error) {
	return t.Store.ByDocumentID(ctx, id)
}

// ListStopNames returns every stop name known to the static reference data.
func (t *Tracker) ListStopNames() []string {
	return t.Static.StopNames()
}
