package validators

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestErrorClassifiers(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		exists, nocmd  bool
		notImplemented bool
	}{
		{name: "nil", err: nil},
		{name: "namespace exists code", err: mongo.CommandError{Code: 48, Message: "Collection already exists"}, exists: true},
		{name: "namespace exists text", err: errors.New("namespace exists"), exists: true},
		{name: "no such command", err: mongo.CommandError{Code: 59, Message: "no such command: 'collMod'"}, nocmd: true},
		{name: "not implemented", err: mongo.CommandError{Code: 115, Message: "feature not supported"}, notImplemented: true},
		{name: "other", err: errors.New("connection reset")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNamespaceExistsErr(tt.err); got != tt.exists {
				t.Errorf("isNamespaceExistsErr = %v, want %v", got, tt.exists)
			}
			if got := isNoSuchCommand(tt.err); got != tt.nocmd {
				t.Errorf("isNoSuchCommand = %v, want %v", got, tt.nocmd)
			}
			if got := isNotImplemented(tt.err); got != tt.notImplemented {
				t.Errorf("isNotImplemented = %v, want %v", got, tt.notImplemented)
			}
		})
	}
}

func TestAuditEventsSchema_RequiredFields(t *testing.T) {
	schema, ok := auditEventsSchema()["$jsonSchema"].(bson.M)
	if !ok {
		t.Fatal("missing $jsonSchema")
	}
	required, _ := schema["required"].(bson.A)
	want := map[string]bool{"timestamp": true, "category": true, "event_type": true, "success": true}
	if len(required) != len(want) {
		t.Fatalf("required = %v", required)
	}
	for _, f := range required {
		if !want[f.(string)] {
			t.Errorf("unexpected required field %v", f)
		}
	}
}
