package events

import (
	"context"
	"testing"
	"time"

	"github.com/chordline/backend/internal/apperr"
	"github.com/chordline/backend/internal/domain/event"
	"github.com/chordline/backend/internal/storage/memory"
)

func TestService_CreateDefaults(t *testing.T) {
	svc := New(memory.New(), nil)

	created, err := svc.Create(context.Background(), "band-1", "user-1", CreateInput{
		Title:    "Friday Show",
		StartsAt: "2026-09-18T20:00:00Z",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Type != event.TypeShow {
		t.Fatalf("expected default type SHOW, got %s", created.Type)
	}
	if created.Status != event.StatusDraft {
		t.Fatalf("expected default status DRAFT, got %s", created.Status)
	}
	if created.CreatedByID != "user-1" {
		t.Fatalf("expected creator user-1, got %s", created.CreatedByID)
	}
	want := time.Date(2026, 9, 18, 20, 0, 0, 0, time.UTC)
	if !created.StartsAt.Equal(want) {
		t.Fatalf("expected startsAt %v, got %v", want, created.StartsAt)
	}
	if !created.EndsAt.IsZero() {
		t.Fatalf("expected zero endsAt, got %v", created.EndsAt)
	}
}

func TestService_CreateOptionalInstants(t *testing.T) {
	svc := New(memory.New(), nil)

	created, err := svc.Create(context.Background(), "band-1", "user-1", CreateInput{
		Title:    "Rehearsal",
		Type:     "REHEARSAL",
		StartsAt: "2026-09-18T18:00:00Z",
		EndsAt:   "2026-09-18T21:00:00Z",
		DoorTime: "2026-09-18T17:30:00Z",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.EndsAt.IsZero() || created.DoorTime.IsZero() {
		t.Fatalf("expected optional instants parsed, got %+v", created)
	}
	if !created.RSVPDeadline.IsZero() {
		t.Fatalf("expected zero rsvpDeadline")
	}
}

func TestService_CreateValidation(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"missing title", CreateInput{StartsAt: "2026-09-18T20:00:00Z"}},
		{"missing startsAt", CreateInput{Title: "Show"}},
		{"bad startsAt", CreateInput{Title: "Show", StartsAt: "tomorrow"}},
		{"bad endsAt", CreateInput{Title: "Show", StartsAt: "2026-09-18T20:00:00Z", EndsAt: "later"}},
		{"unknown type", CreateInput{Title: "Show", StartsAt: "2026-09-18T20:00:00Z", Type: "FESTIVAL"}},
		{"unknown status", CreateInput{Title: "Show", StartsAt: "2026-09-18T20:00:00Z", Status: "PENDING"}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, "band-1", "user-1", tc.in); !apperr.IsCode(err, apperr.CodeValidation) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestService_ListOrderedByStart(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	for _, in := range []CreateInput{
		{Title: "Later", StartsAt: "2026-10-01T20:00:00Z"},
		{Title: "Sooner", StartsAt: "2026-09-01T20:00:00Z"},
	} {
		if _, err := svc.Create(ctx, "band-1", "user-1", in); err != nil {
			t.Fatalf("create %s: %v", in.Title, err)
		}
	}

	list, err := svc.ListForBand(ctx, "band-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Title != "Sooner" || list[1].Title != "Later" {
		t.Fatalf("expected events ordered by start time, got %+v", list)
	}
}

// An event may reference a venue that was never created.
func TestService_CreatePermissiveVenueRef(t *testing.T) {
	svc := New(memory.New(), nil)

	created, err := svc.Create(context.Background(), "band-1", "user-1", CreateInput{
		Title:    "Show",
		StartsAt: "2026-09-18T20:00:00Z",
		VenueID:  "no-such-venue",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.VenueID != "no-such-venue" {
		t.Fatalf("expected venue reference stored as given, got %q", created.VenueID)
	}
}
