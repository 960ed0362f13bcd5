// Package feed retrieves realtime trip update snapshots from the transit
// provider's GTFS-R endpoint.
package feed

import (
	"encoding/json"
	"strconv"
)

// Snapshot is one fetched response from the realtime provider: a header
// timestamp plus a list of entities.
type Snapshot struct {
	Header   Header   `json:"header"`
	Entities []Entity `json:"entity"`
}

type Header struct {
	GtfsRealtimeVersion string       `json:"gtfs_realtime_version"`
	Timestamp           FlexibleText `json:"timestamp"`
}

type Entity struct {
	ID         string          `json:"id"`
	TripUpdate *TripUpdate     `json:"trip_update"`
	Vehicle    *VehiclePayload `json:"vehicle"`
}

type TripUpdate struct {
	Trip            TripDescriptor   `json:"trip"`
	StopTimeUpdates []StopTimeUpdate `json:"stop_time_update"`
	Vehicle         *VehiclePayload  `json:"vehicle"`
	Timestamp       FlexibleText     `json:"timestamp"`
}

type TripDescriptor struct {
	TripID               string       `json:"trip_id"`
	StartTime            string       `json:"start_time"`
	StartDate            string       `json:"start_date"`
	ScheduleRelationship string       `json:"schedule_relationship"`
	RouteID              string       `json:"route_id"`
	DirectionID          FlexibleText `json:"direction_id"`
}

type StopTimeUpdate struct {
	StopSequence         int            `json:"stop_sequence"`
	StopID               string         `json:"stop_id"`
	Arrival              *StopTimeEvent `json:"arrival"`
	Departure            *StopTimeEvent `json:"departure"`
	ScheduleRelationship string         `json:"schedule_relationship"`
}

type StopTimeEvent struct {
	Delay *int   `json:"delay"`
	Time  string `json:"time"`
}

type VehiclePayload struct {
	ID string `json:"id"`
}

// FlexibleText is a string-valued field the provider sometimes renders as a
// JSON number instead.
type FlexibleText string

func (t *FlexibleText) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*t = FlexibleText(value)
		return nil
	}

	var value json.Number
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*t = FlexibleText(value.String())
	return nil
}

func (t FlexibleText) String() string {
	return string(t)
}

// Int returns the numeric value of the field, or 0 when empty or
// non-numeric.
func (t FlexibleText) Int() int {
	value, err := strconv.Atoi(string(t))
	if err != nil {
		return 0
	}
	return value
}
