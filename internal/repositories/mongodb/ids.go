package mongodb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Documents written by the earlier desk application are keyed by ObjectId. They map
// onto version 0 UUIDs: bytes 0-5 and 7-12 hold the ObjectId, byte 6 (the version
// nibble) and bytes 13-15 stay zero. The generator here only issues version 7, so
// the two never collide and the mapping runs both ways.

func legacyUUID(oid primitive.ObjectID) uuid.UUID {
	var u uuid.UUID
	copy(u[0:6], oid[0:6])
	copy(u[7:13], oid[6:12])
	return u
}

func legacyObjectID(u uuid.UUID) (primitive.ObjectID, bool) {
	if u == uuid.Nil || u[6] != 0 || u[13] != 0 || u[14] != 0 || u[15] != 0 {
		return primitive.NilObjectID, false
	}
	var oid primitive.ObjectID
	copy(oid[0:6], u[0:6])
	copy(oid[6:12], u[7:13])
	return oid, true
}

// docKey is the stored form of id: an ObjectId for migrated documents, the
// canonical string otherwise.
func docKey(id uuid.UUID) any {
	if oid, ok := legacyObjectID(id); ok {
		return oid
	}
	return id.String()
}

// parseKey reads a key decoded into an interface field.
func parseKey(v any) (uuid.UUID, error) {
	switch k := v.(type) {
	case string:
		return uuid.Parse(k)
	case primitive.ObjectID:
		return legacyUUID(k), nil
	default:
		return uuid.Nil, fmt.Errorf("unsupported key type %T", v)
	}
}

// keyPhases split a listing so migrated documents come before new ones. A plain
// _id sort orders strings before ObjectIds.
var keyPhases = []bson.E{
	{Key: "_id", Value: bson.D{{Key: "$type", Value: "objectId"}}},
	{Key: "_id", Value: bson.D{{Key: "$type", Value: "string"}}},
}

// withPhase returns a copy of filter restricted to one key phase.
func withPhase(filter bson.D, phase bson.E) bson.D {
	out := make(bson.D, 0, len(filter)+1)
	out = append(out, filter...)
	return append(out, phase)
}

// findPhases runs query once per key phase, sorted by _id, and yields the decoded
// documents in that order.
func findPhases[D, M any](ctx context.Context, coll *mongo.Collection, query bson.D, toModel func(D) (M, error), yield func(M, error) bool) {
	for _, phase := range keyPhases {
		filter := withPhase(query, phase)
		cursor, err := coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
		logOp(coll, "find", filter, nil, err)
		if err != nil {
			var zero M
			yield(zero, classify(err))
			return
		}
		if !drainCursor(ctx, cursor, toModel, yield) {
			return
		}
	}
}

func drainCursor[D, M any](ctx context.Context, cursor *mongo.Cursor, toModel func(D) (M, error), yield func(M, error) bool) bool {
	defer cursor.Close(ctx)

	var zero M
	for cursor.Next(ctx) {
		var doc D
		if err := cursor.Decode(&doc); err != nil {
			yield(zero, err)
			return false
		}
		m, err := toModel(doc)
		if !yield(m, err) || err != nil {
			return false
		}
	}
	if err := cursor.Err(); err != nil {
		yield(zero, classify(err))
		return false
	}
	return true
}
