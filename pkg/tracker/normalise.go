package tracker

import (
	"github.com/rs/zerolog/log"

	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/feed"
	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/staticref"
	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/transit"
)

// Normalise converts raw feed entities into canonical trip records,
// enriched from the static reference data and stamped with the snapshot
// header timestamp. Entities without a trip_id are dropped; that is a
// per-entity skip, not a pipeline failure. Output order follows the feed's
// entity order.
func Normalise(snapshot *feed.Snapshot, static *staticref.Store) []transit.TripRecord {
	timestamp := snapshot.Header.Timestamp.String()

	var records []transit.TripRecord
	dropped := 0

	for index, entity := range snapshot.Entities {
		tripUpdate := entity.TripUpdate
		if tripUpdate == nil || tripUpdate.Trip.TripID == "" {
			dropped++
			log.Debug().Int("entity", index).Str("id", entity.ID).Msg("Skipping entity without trip id")
			continue
		}

		trip := tripUpdate.Trip
		routeDetails := static.LookupRouteDetails(trip.RouteID)

		record := transit.TripRecord{
			TripID:               trip.TripID,
			StartTime:            trip.StartTime,
			StartDate:            trip.StartDate,
			ScheduleRelationship: trip.ScheduleRelationship,
			RouteID:              trip.RouteID,
			RouteType:            routeDetails.Type,
			RouteShortName:       routeDetails.ShortName,
			RouteLongName:        routeDetails.LongName,
			DirectionID:          trip.DirectionID.Int(),
			Stops:                normaliseStops(tripUpdate.StopTimeUpdates, static),
			VehicleID:            vehicleID(entity),
			Timestamp:            timestamp,
		}

		records = append(records, record)
	}

	log.Info().
		Int("records", len(records)).
		Int("dropped", dropped).
		Str("timestamp", timestamp).
		Msg("Normalised realtime snapshot")

	return records
}

// normaliseStops keeps the feed-provided stop_sequence order; stops are not
// re-sorted.
func normaliseStops(updates []feed.StopTimeUpdate, static *staticref.Store) []transit.StopTimeUpdate {
	stops := make([]transit.StopTimeUpdate, 0, len(updates))

	for _, update := range updates {
		stop := transit.StopTimeUpdate{
			StopSequence:         update.StopSequence,
			StopID:               update.StopID,
			StopName:             static.LookupStopName(update.StopID),
			ScheduleRelationship: update.ScheduleRelationship,
		}

		if update.Arrival != nil && update.Arrival.Delay != nil {
			delay := *update.Arrival.Delay
			stop.ArrivalDelay = &delay
		}

		stops = append(stops, stop)
	}

	return stops
}

func vehicleID(entity feed.Entity) string {
	if entity.TripUpdate != nil && entity.TripUpdate.Vehicle != nil {
		return entity.TripUpdate.Vehicle.ID
	}
	if entity.Vehicle != nil {
		return entity.Vehicle.ID
	}

	return ""
}
