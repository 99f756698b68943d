// Package events manages scheduled band events.
package events

import (
	"context"
	"strings"
	"time"

	"github.com/chordline/backend/internal/apperr"
	"github.com/chordline/backend/internal/domain/event"
	"github.com/chordline/backend/internal/metrics"
	"github.com/chordline/backend/internal/storage"
	"github.com/chordline/backend/pkg/logger"
)

// Service manages events.
type Service struct {
	store storage.EventStore
	log   *logger.Logger
}

// New constructs an event service.
func New(store storage.EventStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("events")
	}
	return &Service{store: store, log: log}
}

// CreateInput carries the caller-supplied event fields. Instants arrive
// as RFC 3339 strings and are parsed here.
type CreateInput struct {
	Title        string
	Description  string
	Type         string
	Status       string
	VenueID      string
	LocationName string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
	Latitude     *float64
	Longitude    *float64
	StartsAt     string
	EndsAt       string
	DoorTime     string
	RSVPDeadline string
	Notes        string
}

var validTypes = map[event.Type]bool{
	event.TypeShow:      true,
	event.TypeRehearsal: true,
	event.TypeMeeting:   true,
	event.TypeOther:     true,
}

var validStatuses = map[event.Status]bool{
	event.StatusDraft:     true,
	event.StatusPublished: true,
	event.StatusCancelled: true,
}

// Create creates an event under bandID with createdById = userID.
// The band and venue references are accepted without existence checks.
func (s *Service) Create(ctx context.Context, bandID, userID string, in CreateInput) (event.Event, error) {
	if strings.TrimSpace(in.Title) == "" {
		return event.Event{}, apperr.Validation("title is required")
	}

	startsAt, err := parseInstant("startsAt", in.StartsAt, true)
	if err != nil {
		return event.Event{}, err
	}
	endsAt, err := parseInstant("endsAt", in.EndsAt, false)
	if err != nil {
		return event.Event{}, err
	}
	doorTime, err := parseInstant("doorTime", in.DoorTime, false)
	if err != nil {
		return event.Event{}, err
	}
	rsvpDeadline, err := parseInstant("rsvpDeadline", in.RSVPDeadline, false)
	if err != nil {
		return event.Event{}, err
	}

	typ := event.Type(in.Type)
	if typ == "" {
		typ = event.TypeShow
	}
	if !validTypes[typ] {
		return event.Event{}, apperr.Validation("unsupported event type %q", in.Type)
	}
	status := event.Status(in.Status)
	if status == "" {
		status = event.StatusDraft
	}
	if !validStatuses[status] {
		return event.Event{}, apperr.Validation("unsupported event status %q", in.Status)
	}

	created, err := s.store.CreateEvent(ctx, event.Event{
		BandID:       bandID,
		CreatedByID:  userID,
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Type:         typ,
		Status:       status,
		VenueID:      in.VenueID,
		LocationName: in.LocationName,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		City:         in.City,
		State:        in.State,
		PostalCode:   in.PostalCode,
		Country:      in.Country,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		StartsAt:     startsAt,
		EndsAt:       endsAt,
		DoorTime:     doorTime,
		RSVPDeadline: rsvpDeadline,
		Notes:        in.Notes,
	})
	if err != nil {
		return event.Event{}, err
	}

	metrics.RecordEntityWrite("event", "create")
	s.log.WithField("event_id", created.ID).
		WithField("band_id", bandID).
		Info("event created")
	return created, nil
}

// ListForBand returns the events of a band, ordered by start time.
func (s *Service) ListForBand(ctx context.Context, bandID string) ([]event.Event, error) {
	return s.store.ListEventsForBand(ctx, bandID)
}

func parseInstant(field, value string, required bool) (time.Time, error) {
	if value == "" {
		if required {
			return time.Time{}, apperr.Validation("%s is required", field)
		}
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, apperr.Validation("%s must be an RFC 3339 instant", field)
	}
	return t.UTC(), nil
}
