package tripstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFilterQueryEmpty(t *testing.T) {
	query := Filter{}.Query()

	assert.Equal(t, bson.M{}, query)
	assert.True(t, Filter{}.IsZero())
}

func TestFilterQueryFreeText(t *testing.T) {
	query := Filter{FreeText: "merrion"}.Query()

	or, exists := query["$or"]
	require.True(t, exists)

	clauses := or.([]bson.M)
	require.Len(t, clauses, 3)

	assert.Equal(t, bson.M{"$regex": "merrion", "$options": "i"}, clauses[0]["route_id"])
	assert.Equal(t, bson.M{"$regex": "merrion", "$options": "i"}, clauses[1]["trip_id"])
	assert.Equal(t, bson.M{"$regex": "merrion", "$options": "i"}, clauses[2]["stops.stop_name"])
}

func TestFilterQueryStopNameExact(t *testing.T) {
	query := Filter{StopName: "Merrion Square"}.Query()

	assert.Equal(t, bson.M{
		"stops.stop_name": bson.M{"$regex": "^Merrion Square$", "$options": "i"},
	}, query)
}

func TestFilterQueryEscapesRegexMetacharacters(t *testing.T) {
	query := Filter{RouteID: "45a."}.Query()

	assert.Equal(t, bson.M{
		"route_id": bson.M{"$regex": `45a\.`, "$options": "i"},
	}, query)
}

func TestFilterQueryAndComposition(t *testing.T) {
	routeType := 3
	query := Filter{RouteID: "145", RouteType: &routeType}.Query()

	and, exists := query["$and"]
	require.True(t, exists)

	clauses := and.([]bson.M)
	require.Len(t, clauses, 2)
	assert.Equal(t, bson.M{"$regex": "145", "$options": "i"}, clauses[0]["route_id"])
	assert.Equal(t, bson.M{"route_type": 3}, clauses[1])
}

func TestFilterQueryFreeTextAndStopName(t *testing.T) {
	// Both supplied: predicates AND together, which can legitimately
	// produce an empty result set
	query := Filter{FreeText: "145", StopName: "Merrion Square"}.Query()

	and, exists := query["$and"]
	require.True(t, exists)
	require.Len(t, and.([]bson.M), 2)
}

func TestReplaceAllEmptyGuard(t *testing.T) {
	// A zero-value store would panic on any collection access; the empty
	// input must short-circuit before touching the database
	store := &Store{}

	require.NoError(t, store.ReplaceAll(context.Background(), nil))
}
