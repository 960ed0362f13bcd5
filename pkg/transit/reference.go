package transit

// RouteDetails is one entry of the static routes lookup table and the
// denormalised route information attached to a TripRecord during
// normalisation. The stops table is a plain stop_id to stop_name mapping.
type RouteDetails struct {
	Type      int
	ShortName string
	LongName  string
}

// Fallback policy for reference lookups that miss. Downstream consumers
// always expect a populated route_type and stop_name, so lookups return
// these defaults instead of errors.
const (
	// DefaultRouteType is GTFS route_type 3 ("Bus").
	DefaultRouteType = 3

	UnknownStopName = "Unknown Stop"
)
