package controllers_test

import "go.mongodb.org/mongo-driver/bson/primitive"

func mustOID(hex string) primitive.ObjectID {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		panic(err)
	}
	return oid
}
