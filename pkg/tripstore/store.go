// Package tripstore persists normalised trip records in MongoDB under
// full-replace semantics: each refresh deletes the previous generation and
// inserts the new one, and records are never patched individually.
package tripstore

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/database"
	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/transit"
)

const collectionName = "transport_data"

type Store struct {
	collection *mongo.Collection
}

func NewStore() *Store {
	return &Store{
		collection: database.GetCollection(collectionName),
	}
}

// ReplaceAll deletes every cached record then inserts the new set. An empty
// input set skips the replace entirely so a transient empty feed cannot
// wipe a healthy cache (staleness is preferred over emptiness).
//
// Delete and insert are two separate calls with no cross-call transaction;
// a reader racing between them can observe a transiently empty store. The
// window is bounded by the single-flight guard in the tracker.
func (s *Store) ReplaceAll(ctx context.Context, records []transit.TripRecord) error {
	if len(records) == 0 {
		log.Warn().Msg("Skipping cache replace for empty record set")
		return nil
	}

	if _, err := s.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return &transit.CacheWriteError{Operation: "delete", Err: err}
	}

	documents := make([]interface{}, len(records))
	for i, record := range records {
		documents[i] = record
	}

	if _, err := s.collection.InsertMany(ctx, documents); err != nil {
		return &transit.CacheWriteError{Operation: "insert", Err: err}
	}

	log.Info().Int("records", len(records)).Msg("Replaced trip cache")

	return nil
}

// IsEmpty reports whether the cache currently holds no records.
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	count, err := s.collection.EstimatedDocumentCount(ctx)
	if err != nil {
		return false, &transit.QueryError{Err: err}
	}

	return count == 0, nil
}

// Query evaluates a filter against the cached records.
func (s *Store) Query(ctx context.Context, filter Filter) ([]transit.TripRecord, error) {
	return s.find(ctx, filter.Query())
}

// ByRouteID returns all records whose route_id equals routeID.
func (s *Store) ByRouteID(ctx context.Context, routeID string) ([]transit.TripRecord, error) {
	return s.find(ctx, bson.M{"route_id": routeID})
}

// ByTripID returns all records whose trip_id equals tripID.
func (s *Store) ByTripID(ctx context.Context, tripID string) ([]transit.TripRecord, error) {
	return s.find(ctx, bson.M{"trip_id": tripID})
}

// ByDocumentID looks a record up by its hex document id. A missing or
// malformed id yields (nil, nil); callers translate that to not-found.
func (s *Store) ByDocumentID(ctx context.Context, id string) (*transit.TripRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var record transit.TripRecord
	err = s.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, &transit.QueryError{Err: err}
	}

	return &record, nil
}

func (s *Store) find(ctx context.Context, query bson.M) ([]transit.TripRecord, error) {
	cursor, err := s.collection.Find(ctx, query)
	if err != nil {
		return nil, &transit.QueryError{Err: err}
	}
	defer cursor.Close(ctx)

	records := []transit.TripRecord{}
	for cursor.Next(ctx) {
		var record transit.TripRecord
		if err := cursor.Decode(&record); err != nil {
			log.Error().Err(err).Msg("Failed to decode trip record")
			continue
		}

		records = append(records, record)
	}

	if err := cursor.Err(); err != nil {
		return nil, &transit.QueryError{Err: err}
	}

	return records, nil
}
