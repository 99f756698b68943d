// Package setlists manages setlists, their songs and event links.
package setlists

import (
	"context"
	"errors"
	"strings"

	"github.com/chordline/backend/internal/apperr"
	"github.com/chordline/backend/internal/domain/setlist"
	"github.com/chordline/backend/internal/metrics"
	"github.com/chordline/backend/internal/storage"
	"github.com/chordline/backend/pkg/logger"
)

// Service manages setlists.
type Service struct {
	store storage.SetlistStore
	log   *logger.Logger
}

// New constructs a setlist service.
func New(store storage.SetlistStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("setlists")
	}
	return &Service{store: store, log: log}
}

// CreateInput carries the caller-supplied setlist fields.
type CreateInput struct {
	Title       string
	Description string
	Visibility  string
}

var validVisibilities = map[setlist.Visibility]bool{
	setlist.VisibilityPrivate: true,
	setlist.VisibilityBand:    true,
	setlist.VisibilityPublic:  true,
}

// Create creates a setlist under bandID with createdById = userID.
func (s *Service) Create(ctx context.Context, bandID, userID string, in CreateInput) (setlist.Setlist, error) {
	if strings.TrimSpace(in.Title) == "" {
		return setlist.Setlist{}, apperr.Validation("title is required")
	}
	visibility := setlist.Visibility(in.Visibility)
	if visibility == "" {
		visibility = setlist.VisibilityBand
	}
	if !validVisibilities[visibility] {
		return setlist.Setlist{}, apperr.Validation("unsupported visibility %q", in.Visibility)
	}

	created, err := s.store.CreateSetlist(ctx, setlist.Setlist{
		BandID:      bandID,
		CreatedByID: userID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Visibility:  visibility,
	})
	if err != nil {
		return setlist.Setlist{}, err
	}

	metrics.RecordEntityWrite("setlist", "create")
	s.log.WithField("setlist_id", created.ID).
		WithField("band_id", bandID).
		Info("setlist created")
	return created, nil
}

// Get returns a single setlist by id.
func (s *Service) Get(ctx context.Context, id string) (setlist.Setlist, error) {
	sl, err := s.store.GetSetlist(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return setlist.Setlist{}, apperr.NotFound("setlist %s not found", id)
	}
	if err != nil {
		return setlist.Setlist{}, err
	}
	return sl, nil
}

// ListForBand returns the setlists of a band, most recently updated first.
func (s *Service) ListForBand(ctx context.Context, bandID string) ([]setlist.Setlist, error) {
	return s.store.ListSetlistsForBand(ctx, bandID)
}

// SongInput carries the caller-supplied song fields. A nil Position
// means append at the end of the setlist.
type SongInput struct {
	Title        string
	Artist       string
	KeySignature string
	Tempo        *int
	Position     *int
	DurationSec  *int
	Notes        string
}

// AddSong appends or inserts a song into a setlist.
func (s *Service) AddSong(ctx context.Context, setlistID string, in SongInput) (setlist.Song, error) {
	if strings.TrimSpace(in.Title) == "" {
		return setlist.Song{}, apperr.Validation("title is required")
	}

	song, err := s.store.AddSong(ctx, setlist.Song{
		SetlistID:    setlistID,
		Title:        strings.TrimSpace(in.Title),
		Artist:       in.Artist,
		KeySignature: in.KeySignature,
		Tempo:        in.Tempo,
		DurationSec:  in.DurationSec,
		Notes:        in.Notes,
	}, in.Position)
	if err != nil {
		return setlist.Song{}, err
	}

	metrics.RecordEntityWrite("setlist_song", "create")
	s.log.WithField("song_id", song.ID).
		WithField("setlist_id", setlistID).
		Info("song added")
	return song, nil
}

// ListSongs returns the songs of a setlist, ordered by position.
func (s *Service) ListSongs(ctx context.Context, setlistID string) ([]setlist.Song, error) {
	return s.store.ListSongs(ctx, setlistID)
}

// AttachInput names the setlist to link to an event.
type AttachInput struct {
	SetlistID string
	Position  *int
}

// AttachToEvent links a setlist to an event. Attaching the same pair
// again updates the position of the existing link.
func (s *Service) AttachToEvent(ctx context.Context, eventID string, in AttachInput) (setlist.EventLink, error) {
	if in.SetlistID == "" {
		return setlist.EventLink{}, apperr.Validation("setlistId is required")
	}

	position := 0
	if in.Position != nil {
		position = *in.Position
	}
	link, err := s.store.UpsertEventLink(ctx, setlist.EventLink{
		EventID:   eventID,
		SetlistID: in.SetlistID,
		Position:  position,
	})
	if err != nil {
		return setlist.EventLink{}, err
	}

	metrics.RecordEntityWrite("event_setlist", "upsert")
	s.log.WithField("event_id", eventID).
		WithField("setlist_id", in.SetlistID).
		Info("setlist attached to event")
	return link, nil
}
