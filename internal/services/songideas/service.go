// Package songideas manages a band's captured song ideas.
package songideas

import (
	"context"
	"errors"
	"strings"

	"github.com/chordline/backend/internal/apperr"
	"github.com/chordline/backend/internal/domain/songidea"
	"github.com/chordline/backend/internal/metrics"
	"github.com/chordline/backend/internal/storage"
	"github.com/chordline/backend/pkg/logger"
)

// Service manages song ideas.
type Service struct {
	store storage.SongIdeaStore
	log   *logger.Logger
}

// New constructs a song idea service.
func New(store storage.SongIdeaStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("songideas")
	}
	return &Service{store: store, log: log}
}

var validStatuses = map[songidea.Status]bool{
	songidea.StatusDraft:    true,
	songidea.StatusShared:   true,
	songidea.StatusArchived: true,
}

// CreateInput carries the caller-supplied song idea fields.
type CreateInput struct {
	Title  string
	Body   string
	Tags   []string
	Status string
}

// Create creates a song idea under bandID authored by userID. Creating
// with status SHARED stamps sharedAt immediately.
func (s *Service) Create(ctx context.Context, bandID, userID string, in CreateInput) (songidea.Idea, error) {
	if strings.TrimSpace(in.Title) == "" {
		return songidea.Idea{}, apperr.Validation("title is required")
	}
	status := songidea.Status(in.Status)
	if status == "" {
		status = songidea.StatusDraft
	}
	if !validStatuses[status] {
		return songidea.Idea{}, apperr.Validation("unsupported status %q", in.Status)
	}

	created, err := s.store.CreateSongIdea(ctx, songidea.Idea{
		BandID:   bandID,
		AuthorID: userID,
		Title:    strings.TrimSpace(in.Title),
		Body:     in.Body,
		Tags:     in.Tags,
		Status:   status,
	})
	if err != nil {
		return songidea.Idea{}, err
	}

	metrics.RecordEntityWrite("song_idea", "create")
	s.log.WithField("song_idea_id", created.ID).
		WithField("band_id", bandID).
		Info("song idea created")
	return created, nil
}

// ListForBand returns the song ideas of a band, most recently updated first.
func (s *Service) ListForBand(ctx context.Context, bandID string) ([]songidea.Idea, error) {
	return s.store.ListSongIdeasForBand(ctx, bandID)
}

// UpdateStatus transitions a song idea to the given status. Any
// transition is permitted; sharedAt is stamped on every transition to
// SHARED and preserved through other transitions.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (songidea.Idea, error) {
	next := songidea.Status(status)
	if !validStatuses[next] {
		return songidea.Idea{}, apperr.Validation("unsupported status %q", status)
	}

	updated, err := s.store.UpdateSongIdeaStatus(ctx, id, next)
	if errors.Is(err, storage.ErrNotFound) {
		return songidea.Idea{}, apperr.NotFound("song idea %s not found", id)
	}
	if err != nil {
		return songidea.Idea{}, err
	}

	metrics.RecordEntityWrite("song_idea", "update_status")
	s.log.WithField("song_idea_id", id).
		WithField("status", status).
		Info("song idea status updated")
	return updated, nil
}
