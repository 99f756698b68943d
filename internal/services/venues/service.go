// Package venues manages venue records scoped to a band.
package venues

import (
	"context"
	"strings"

	"github.com/chordline/backend/internal/apperr"
	"github.com/chordline/backend/internal/domain/venue"
	"github.com/chordline/backend/internal/metrics"
	"github.com/chordline/backend/internal/storage"
	"github.com/chordline/backend/pkg/logger"
)

// Service manages venues.
type Service struct {
	store storage.VenueStore
	log   *logger.Logger
}

// New constructs a venue service.
func New(store storage.VenueStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("venues")
	}
	return &Service{store: store, log: log}
}

// CreateInput carries the caller-supplied venue fields.
type CreateInput struct {
	Name         string
	Description  string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
	Latitude     *float64
	Longitude    *float64
	PlaceID      string
}

// Create creates a venue under bandID. The band reference is accepted
// without an existence check.
func (s *Service) Create(ctx context.Context, bandID string, in CreateInput) (venue.Venue, error) {
	if strings.TrimSpace(in.Name) == "" {
		return venue.Venue{}, apperr.Validation("name is required")
	}

	created, err := s.store.CreateVenue(ctx, venue.Venue{
		BandID:       bandID,
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		City:         in.City,
		State:        in.State,
		PostalCode:   in.PostalCode,
		Country:      in.Country,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		PlaceID:      in.PlaceID,
	})
	if err != nil {
		return venue.Venue{}, err
	}

	metrics.RecordEntityWrite("venue", "create")
	s.log.WithField("venue_id", created.ID).
		WithField("band_id", bandID).
		Info("venue created")
	return created, nil
}

// ListForBand returns the venues of a band, ordered by name.
func (s *Service) ListForBand(ctx context.Context, bandID string) ([]venue.Venue, error) {
	return s.store.ListVenuesForBand(ctx, bandID)
}
