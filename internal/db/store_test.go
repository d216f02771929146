package db

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSerialize_ObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	owner := primitive.NewObjectID()
	doc := bson.M{"_id": oid, "vin": "WBA123", "owner_id": owner}

	out := Serialize(doc)

	if out["id"] != oid.Hex() {
		t.Errorf("expected id %q, got %v", oid.Hex(), out["id"])
	}
	if _, ok := out["_id"]; ok {
		t.Error("expected _id to be removed from serialized doc")
	}
	if out["owner_id"] != owner.Hex() {
		t.Errorf("expected nested ObjectID to be rendered as hex, got %v", out["owner_id"])
	}
	if out["vin"] != "WBA123" {
		t.Errorf("expected vin to pass through, got %v", out["vin"])
	}
}

func TestSerialize_StringID(t *testing.T) {
	doc := bson.M{"_id": "mem-id", "name": "engine"}
	out := Serialize(doc)
	if out["id"] != "mem-id" {
		t.Errorf("expected id %q, got %v", "mem-id", out["id"])
	}
	if _, ok := out["_id"]; ok {
		t.Error("expected _id to be removed from serialized doc")
	}
}

func TestSerialize_Nil(t *testing.T) {
	if Serialize(nil) != nil {
		t.Error("expected nil for nil doc")
	}
}
