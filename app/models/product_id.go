package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductID is a document-store ObjectID that travels as a 24-character hex
// string outside the store.
type ProductID struct {
	oid primitive.ObjectID
}

// NewProductID returns a freshly generated id.
func NewProductID() ProductID {
	return ProductID{oid: primitive.NewObjectID()}
}

// ProductIDFromObjectID wraps an id read back from the driver.
func ProductIDFromObjectID(oid primitive.ObjectID) ProductID {
	return ProductID{oid: oid}
}

// ParseProductID decodes the wire form. Anything other than 24 hex
// characters fails with ErrInvalidIdentifier.
func ParseProductID(s string) (ProductID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return ProductID{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	return ProductID{oid: oid}, nil
}

func (id ProductID) String() string { return id.oid.Hex() }

// ObjectID is the store-native form, for use in filters.
func (id ProductID) ObjectID() primitive.ObjectID { return id.oid }

// IsZero lets bson's omitempty skip unassigned ids.
func (id ProductID) IsZero() bool { return id.oid.IsZero() }

func (id ProductID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

func (id *ProductID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidIdentifier, data)
	}
	parsed, err := ParseProductID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id ProductID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(id.oid)
}

func (id *ProductID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t != bson.TypeObjectID {
		return fmt.Errorf("product id: expected ObjectID, got bson type %s", t)
	}
	oid, ok := bson.RawValue{Type: t, Value: data}.ObjectIDOK()
	if !ok {
		return errors.New("product id: truncated ObjectID")
	}
	id.oid = oid
	return nil
}
