// Package repositories implements the data-access layer over the document
// store. Each resource kind gets one repository with an interface contract,
// so services can be tested against in-memory mocks.
package repositories

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned by single-document lookups that match nothing.
// List and delete operations never return it.
var ErrNotFound = errors.New("document not found")

// ErrInvalidID is returned when a path identifier is not a valid document id.
var ErrInvalidID = errors.New("invalid document identifier")

// objectID parses a hex identifier from the request path.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

// insertedHex renders the generated identifier of a fresh insert.
func insertedHex(res *mongo.InsertOneResult) string {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(res.InsertedID)
}
