// Package staticref maintains the static GTFS reference dataset: the stop
// and route lookup tables used to enrich realtime trip updates. The tables
// are built once from the downloaded bundle and never mutated afterwards,
// so lookups are safe from any goroutine.
package staticref

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"

	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/transit"
)

const (
	stopsFileName  = "stops.txt"
	routesFileName = "routes.txt"
)

// Store holds the immutable stop and route lookup tables.
type Store struct {
	stops  map[string]string
	routes map[string]transit.RouteDetails
}

// NewStore builds a Store directly from already-populated lookup tables.
func NewStore(stops map[string]string, routes map[string]transit.RouteDetails) *Store {
	return &Store{
		stops:  stops,
		routes: routes,
	}
}

// Load reads stops.txt and routes.txt from dataDir and builds the lookup
// tables. Call EnsureStaticData first to guarantee the files exist.
func Load(dataDir string) (*Store, error) {
	var stopsRaw, routesRaw []byte
	var stopsErr, routesErr error

	var wg conc.WaitGroup
	wg.Go(func() {
		stopsRaw, stopsErr = os.ReadFile(filepath.Join(dataDir, stopsFileName))
	})
	wg.Go(func() {
		routesRaw, routesErr = os.ReadFile(filepath.Join(dataDir, routesFileName))
	})
	wg.Wait()

	if stopsErr != nil {
		return nil, &transit.DataAcquisitionError{Stage: "verify", Err: stopsErr}
	}
	if routesErr != nil {
		return nil, &transit.DataAcquisitionError{Stage: "verify", Err: routesErr}
	}

	store := &Store{
		stops:  loadStops(parseTable(string(stopsRaw))),
		routes: loadRoutes(parseTable(string(routesRaw))),
	}

	log.Info().
		Int("stops", len(store.stops)).
		Int("routes", len(store.routes)).
		Msg("Loaded static reference data")

	return store, nil
}

// LookupStopName returns the stop name for a stop id, or the
// transit.UnknownStopName fallback when the id is not in the table.
func (s *Store) LookupStopName(stopID string) string {
	if name, exists := s.stops[stopID]; exists {
		return name
	}

	log.Debug().Str("stop", stopID).Msg("Unknown stop id, using fallback name")
	return transit.UnknownStopName
}

// LookupRouteDetails returns the route details for a route id. Unmatched
// ids get the deliberate fallback {type: Bus, shortName: id, longName: ""}
// rather than an error, as downstream consumers always expect a populated
// route_type.
func (s *Store) LookupRouteDetails(routeID string) transit.RouteDetails {
	if details, exists := s.routes[routeID]; exists {
		return details
	}

	log.Debug().Str("route", routeID).Msg("Unknown route id, using fallback details")
	return transit.RouteDetails{
		Type:      transit.DefaultRouteType,
		ShortName: routeID,
		LongName:  "",
	}
}

// StopNames returns every known stop name, sorted.
func (s *Store) StopNames() []string {
	names := make([]string, 0, len(s.stops))
	for _, name := range s.stops {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// StopCount returns the number of loaded stops.
func (s *Store) StopCount() int {
	return len(s.stops)
}

// RouteCount returns the number of loaded routes.
func (s *Store) RouteCount() int {
	return len(s.routes)
}

func (s *Store) String() string {
	return fmt.Sprintf("staticref.Store{stops: %d, routes: %d}", len(s.stops), len(s.routes))
}
