package venues

import (
	"context"
	"testing"

	"github.com/chordline/backend/internal/apperr"
	"github.com/chordline/backend/internal/storage/memory"
)

func TestService_CreateAndList(t *testing.T) {
	svc := New(memory.New(), nil)

	lat := 40.7128
	created, err := svc.Create(context.Background(), "band-1", CreateInput{
		Name:     "The Basement",
		City:     "New York",
		Latitude: &lat,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.BandID != "band-1" {
		t.Fatalf("expected band-1, got %s", created.BandID)
	}
	if created.Latitude == nil || *created.Latitude != lat {
		t.Fatalf("expected latitude preserved, got %v", created.Latitude)
	}

	if _, err := svc.Create(context.Background(), "band-1", CreateInput{Name: "Apollo Hall"}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	list, err := svc.ListForBand(context.Background(), "band-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Apollo Hall" || list[1].Name != "The Basement" {
		t.Fatalf("expected venues ordered by name, got %+v", list)
	}
}

// Band references are accepted without existence checks; any opaque
// string scopes a venue.
func TestService_CreatePermissiveBandRef(t *testing.T) {
	svc := New(memory.New(), nil)

	created, err := svc.Create(context.Background(), "never-created-band", CreateInput{Name: "Somewhere"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := svc.ListForBand(context.Background(), "never-created-band")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("expected the created venue, got %+v", list)
	}
}

func TestService_CreateValidation(t *testing.T) {
	svc := New(memory.New(), nil)

	_, err := svc.Create(context.Background(), "band-1", CreateInput{})
	if !apperr.IsCode(err, apperr.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
