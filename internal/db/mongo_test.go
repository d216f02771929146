package db

import (
	"context"
	"os"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestConnectMongo_BadURI(t *testing.T) {
	os.Setenv("MONGO_URI", "mongodb://bad:uri")
	client, err := ConnectMongo()
	if err == nil {
		t.Error("expected error for bad URI, got nil")
	}
	if client != nil {
		t.Error("expected nil client on error")
	}
}

func TestMongoStore_NilDatabase(t *testing.T) {
	store := &MongoStore{DB: nil}
	ctx := context.Background()

	if _, err := store.Insert(ctx, VehicleCollection, bson.M{}); err == nil {
		t.Error("expected error when database is nil")
	}
	if _, err := store.FindOne(ctx, VehicleCollection, primitive.NewObjectID().Hex()); err == nil {
		t.Error("expected error when database is nil")
	}
	if _, err := store.FindMany(ctx, VehicleCollection, bson.M{}, 0, ""); err == nil {
		t.Error("expected error when database is nil")
	}
	if err := store.Update(ctx, VehicleCollection, primitive.NewObjectID().Hex(), bson.M{}); err == nil {
		t.Error("expected error when database is nil")
	}
}

func TestMongoStore_ValidID(t *testing.T) {
	store := &MongoStore{}
	if !store.ValidID(primitive.NewObjectID().Hex()) {
		t.Error("expected hex ObjectID to be valid")
	}
	if store.ValidID("not-an-object-id") {
		t.Error("expected malformed id to be invalid")
	}
}
