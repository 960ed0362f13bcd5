package feed

import (
	"strconv"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// decodeProtobufSnapshot maps a binary GTFS-RT FeedMessage onto the same
// snapshot shape the JSON rendering produces, so the normaliser only ever
// sees one format.
func decodeProtobufSnapshot(body []byte) (*Snapshot, error) {
	feedMessage := gtfs.FeedMessage{}
	if err := proto.Unmarshal(body, &feedMessage); err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		Header: Header{
			GtfsRealtimeVersion: feedMessage.GetHeader().GetGtfsRealtimeVersion(),
			Timestamp:           FlexibleText(strconv.FormatUint(feedMessage.GetHeader().GetTimestamp(), 10)),
		},
	}

	for _, entity := range feedMessage.GetEntity() {
		converted := Entity{
			ID: entity.GetId(),
		}

		if vehiclePosition := entity.GetVehicle(); vehiclePosition != nil {
			converted.Vehicle = &VehiclePayload{
				ID: vehiclePosition.GetVehicle().GetId(),
			}
		}

		if tripUpdate := entity.GetTripUpdate(); tripUpdate != nil {
			trip := tripUpdate.GetTrip()

			convertedUpdate := &TripUpdate{
				Trip: TripDescriptor{
					TripID:               trip.GetTripId(),
					StartTime:            trip.GetStartTime(),
					StartDate:            trip.GetStartDate(),
					ScheduleRelationship: trip.GetScheduleRelationship().String(),
					RouteID:              trip.GetRouteId(),
					DirectionID:          FlexibleText(strconv.FormatUint(uint64(trip.GetDirectionId()), 10)),
				},
				Timestamp: FlexibleText(strconv.FormatUint(tripUpdate.GetTimestamp(), 10)),
			}

			if vehicle := tripUpdate.GetVehicle(); vehicle != nil {
				convertedUpdate.Vehicle = &VehiclePayload{
					ID: vehicle.GetId(),
				}
			}

			for _, stopTimeUpdate := range tripUpdate.GetStopTimeUpdate() {
				convertedStop := StopTimeUpdate{
					StopSequence:         int(stopTimeUpdate.GetStopSequence()),
					StopID:               stopTimeUpdate.GetStopId(),
					ScheduleRelationship: stopTimeUpdate.GetScheduleRelationship().String(),
				}

				if arrival := stopTimeUpdate.GetArrival(); arrival != nil {
					if arrival.Delay != nil {
						delay := int(arrival.GetDelay())
						convertedStop.Arrival = &StopTimeEvent{Delay: &delay}
					} else {
						convertedStop.Arrival = &StopTimeEvent{}
					}
				}

				if departure := stopTimeUpdate.GetDeparture(); departure != nil {
					if departure.Delay != nil {
						delay := int(departure.GetDelay())
						convertedStop.Departure = &StopTimeEvent{Delay: &delay}
					} else {
						convertedStop.Departure = &StopTimeEvent{}
					}
				}

				convertedUpdate.StopTimeUpdates = append(convertedUpdate.StopTimeUpdates, convertedStop)
			}

			converted.TripUpdate = convertedUpdate
		}

		snapshot.Entities = append(snapshot.Entities, converted)
	}

	return snapshot, nil
}
