package app

import (
	"context"
	"testing"

	"github.com/chordline/backend/internal/services/bands"
)

func TestNew_DefaultsToMemoryStores(t *testing.T) {
	application := New(Stores{}, nil)

	created, err := application.Bands.Create(context.Background(), "user-1", bands.CreateInput{Name: "The Vipers"})
	if err != nil {
		t.Fatalf("create band: %v", err)
	}

	list, err := application.Bands.ListForUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list bands: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("expected the created band visible, got %+v", list)
	}

	// All service families share the same default store.
	members, err := application.Bands.ListMembers(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("expected creator membership, got %d", len(members))
	}
}
