package setlists

import (
	"context"
	"testing"

	"github.com/chordline/backend/internal/apperr"
	"github.com/chordline/backend/internal/domain/setlist"
	"github.com/chordline/backend/internal/storage/memory"
)

func TestService_CreateDefaultsVisibility(t *testing.T) {
	svc := New(memory.New(), nil)

	created, err := svc.Create(context.Background(), "band-1", "user-1", CreateInput{Title: "Main Set"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Visibility != setlist.VisibilityBand {
		t.Fatalf("expected default visibility BAND, got %s", created.Visibility)
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("expected id %s, got %s", created.ID, got.ID)
	}
}

func TestService_GetNotFound(t *testing.T) {
	svc := New(memory.New(), nil)

	_, err := svc.Get(context.Background(), "nope")
	if !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestService_AddSongAppends(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	sl, err := svc.Create(ctx, "band-1", "user-1", CreateInput{Title: "Main Set"})
	if err != nil {
		t.Fatalf("create setlist: %v", err)
	}

	for i, title := range []string{"Opener", "Middle", "Closer"} {
		song, err := svc.AddSong(ctx, sl.ID, SongInput{Title: title})
		if err != nil {
			t.Fatalf("add %s: %v", title, err)
		}
		if song.Position != i {
			t.Fatalf("expected %s at position %d, got %d", title, i, song.Position)
		}
	}

	// Explicit positions bypass the append default.
	explicit := 10
	song, err := svc.AddSong(ctx, sl.ID, SongInput{Title: "Encore", Position: &explicit})
	if err != nil {
		t.Fatalf("add encore: %v", err)
	}
	if song.Position != 10 {
		t.Fatalf("expected explicit position 10, got %d", song.Position)
	}

	songs, err := svc.ListSongs(ctx, sl.ID)
	if err != nil {
		t.Fatalf("list songs: %v", err)
	}
	if len(songs) != 4 {
		t.Fatalf("expected 4 songs, got %d", len(songs))
	}
	for i := 1; i < len(songs); i++ {
		if songs[i-1].Position > songs[i].Position {
			t.Fatalf("songs not ordered by position: %+v", songs)
		}
	}
}

func TestService_AddSongValidation(t *testing.T) {
	svc := New(memory.New(), nil)

	_, err := svc.AddSong(context.Background(), "sl-1", SongInput{})
	if !apperr.IsCode(err, apperr.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestService_AttachToEventUpsert(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	first, err := svc.AttachToEvent(ctx, "event-1", AttachInput{SetlistID: "sl-1"})
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if first.Position != 0 {
		t.Fatalf("expected default position 0, got %d", first.Position)
	}

	pos := 3
	second, err := svc.AttachToEvent(ctx, "event-1", AttachInput{SetlistID: "sl-1", Position: &pos})
	if err != nil {
		t.Fatalf("re-attach: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the same link row, got %s and %s", first.ID, second.ID)
	}
	if second.Position != 3 {
		t.Fatalf("expected position updated to 3, got %d", second.Position)
	}

	// A different pair creates a new link.
	other, err := svc.AttachToEvent(ctx, "event-2", AttachInput{SetlistID: "sl-1"})
	if err != nil {
		t.Fatalf("attach other event: %v", err)
	}
	if other.ID == first.ID {
		t.Fatalf("expected a distinct link for a distinct pair")
	}
}

func TestService_AttachValidation(t *testing.T) {
	svc := New(memory.New(), nil)

	_, err := svc.AttachToEvent(context.Background(), "event-1", AttachInput{})
	if !apperr.IsCode(err, apperr.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
