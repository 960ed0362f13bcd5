package tripstore

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
)

// Filter is the query contract over the cached trip records. All supplied
// fields combine with AND semantics. FreeText and StopName are intended to
// be mutually exclusive but may both be supplied, in which case both
// predicates must hold.
type Filter struct {
	// FreeText matches case-insensitively as a substring of route_id,
	// trip_id, or any stop's stop_name (OR across the three).
	FreeText string

	// RouteID is a case-insensitive substring match against route_id.
	RouteID string

	// StopName is a case-insensitive exact match against any stop's
	// stop_name.
	StopName string

	// RouteType is an exact integer match when non-nil.
	RouteType *int
}

// Query builds the MongoDB predicate document for the filter. An empty
// filter produces an empty document, matching everything.
func (f Filter) Query() bson.M {
	var clauses []bson.M

	if f.FreeText != "" {
		pattern := regexp.QuoteMeta(f.FreeText)
		clauses = append(clauses, bson.M{
			"$or": []bson.M{
				{"route_id": bson.M{"$regex": pattern, "$options": "i"}},
				{"trip_id": bson.M{"$regex": pattern, "$options": "i"}},
				{"stops.stop_name": bson.M{"$regex": pattern, "$options": "i"}},
			},
		})
	}

	if f.RouteID != "" {
		clauses = append(clauses, bson.M{
			"route_id": bson.M{"$regex": regexp.QuoteMeta(f.RouteID), "$options": "i"},
		})
	}

	if f.StopName != "" {
		clauses = append(clauses, bson.M{
			"stops.stop_name": bson.M{"$regex": "^" + regexp.QuoteMeta(f.StopName) + "$", "$options": "i"},
		})
	}

	if f.RouteType != nil {
		clauses = append(clauses, bson.M{"route_type": *f.RouteType})
	}

	switch len(clauses) {
	case 0:
		return bson.M{}
	case 1:
		return clauses[0]
	default:
		return bson.M{"$and": clauses}
	}
}

// IsZero reports whether no filter fields are set.
func (f Filter) IsZero() bool {
	return f.FreeText == "" && f.RouteID == "" && f.StopName == "" && f.RouteType == nil
}
