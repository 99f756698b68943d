// Package bands manages bands and their memberships.
package bands

import (
	"context"
	"strings"

	"github.com/chordline/backend/internal/apperr"
	"github.com/chordline/backend/internal/domain/band"
	"github.com/chordline/backend/internal/metrics"
	"github.com/chordline/backend/internal/storage"
	"github.com/chordline/backend/pkg/logger"
)

// Service manages band records and membership visibility.
type Service struct {
	store storage.BandStore
	log   *logger.Logger
}

// New constructs a band service.
func New(store storage.BandStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("bands")
	}
	return &Service{store: store, log: log}
}

// CreateInput carries the caller-supplied band fields.
type CreateInput struct {
	Name        string
	Description string
	Genre       string
}

// Create creates a band owned by userID. The creator becomes the band's
// LEADER/ACTIVE member in the same transaction.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (band.Band, error) {
	if strings.TrimSpace(in.Name) == "" {
		return band.Band{}, apperr.Validation("name is required")
	}

	created, err := s.store.CreateBand(ctx, band.Band{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Genre:       in.Genre,
		CreatedByID: userID,
		Status:      band.StatusActive,
	})
	if err != nil {
		return band.Band{}, err
	}

	metrics.RecordEntityWrite("band", "create")
	s.log.WithField("band_id", created.ID).
		WithField("user_id", userID).
		Info("band created")
	return created, nil
}

// ListForUser returns the bands visible to userID, ordered by name.
// An empty user id yields an empty list.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]band.Band, error) {
	if userID == "" {
		return []band.Band{}, nil
	}
	return s.store.ListBandsForUser(ctx, userID)
}

// ListMembers returns the membership records of a band.
func (s *Service) ListMembers(ctx context.Context, bandID string) ([]band.Member, error) {
	return s.store.ListMembers(ctx, bandID)
}
