package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createIndexes() {
	createTransportDataIndexes()
}

func createTransportDataIndexes() {
	transportDataCollection := GetCollection("transport_data")
	transportDataIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "trip_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "route_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "route_type", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "stops.stop_name", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := transportDataCollection.Indexes().CreateMany(context.Background(), transportDataIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
