package transit

// TripRecord is the canonical cached representation of one realtime trip
// update, enriched with static reference data. Every record in the
// transport_data collection belongs to a single fetch generation; the whole
// set is replaced in bulk on refresh and individual records are never
// updated in place.
type TripRecord struct {
	TripID string `json:"trip_id" bson:"trip_id" groups:"basic"`

	StartTime            string `json:"start_time,omitempty" bson:"start_time,omitempty" groups:"detailed"`
	StartDate            string `json:"start_date,omitempty" bson:"start_date,omitempty" groups:"detailed"`
	ScheduleRelationship string `json:"schedule_relationship,omitempty" bson:"schedule_relationship,omitempty" groups:"detailed"`

	RouteID        string `json:"route_id" bson:"route_id" groups:"basic"`
	RouteType      int    `json:"route_type" bson:"route_type" groups:"basic"`
	RouteShortName string `json:"route_short_name" bson:"route_short_name" groups:"basic"`
	RouteLongName  string `json:"route_long_name" bson:"route_long_name" groups:"basic"`

	DirectionID int `json:"direction_id" bson:"direction_id" groups:"detailed"`

	// Stops keeps the feed-provided stop_sequence order, not re-sorted.
	Stops []StopTimeUpdate `json:"stops" bson:"stops" groups:"detailed"`

	VehicleID string `json:"vehicle_id,omitempty" bson:"vehicle_id,omitempty" groups:"detailed"`

	// Timestamp is the snapshot header timestamp, shared by every record
	// produced from the same fetch.
	Timestamp string `json:"timestamp" bson:"timestamp" groups:"basic"`
}

// StopTimeUpdate is one stop's realtime delay within a TripRecord. The stop
// name is denormalised from the static reference data at normalisation time.
type StopTimeUpdate struct {
	StopSequence         int    `json:"stop_sequence" bson:"stop_sequence" groups:"detailed"`
	StopID               string `json:"stop_id" bson:"stop_id" groups:"detailed"`
	StopName             string `json:"stop_name" bson:"stop_name" groups:"detailed"`
	ArrivalDelay         *int   `json:"arrival_delay" bson:"arrival_delay" groups:"detailed"`
	ScheduleRelationship string `json:"schedule_relationship,omitempty" bson:"schedule_relationship,omitempty" groups:"detailed"`
}

// RouteTypeName maps a GTFS route_type to its human readable transport mode.
func RouteTypeName(routeType int) string {
	switch routeType {
	case 0:
		return "Tram"
	case 1:
		return "Subway"
	case 2:
		return "Rail"
	case 3:
		return "Bus"
	case 4:
		return "Ferry"
	case 5:
		return "Cable Car"
	case 6:
		return "Gondola"
	case 7:
		return "Funicular"
	default:
		return "Other"
	}
}
