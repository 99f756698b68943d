// Package app wires stores and services into one application value.
package app

import (
	"github.com/chordline/backend/internal/services/bands"
	"github.com/chordline/backend/internal/services/earnings"
	"github.com/chordline/backend/internal/services/events"
	"github.com/chordline/backend/internal/services/notifications"
	"github.com/chordline/backend/internal/services/setlists"
	"github.com/chordline/backend/internal/services/songideas"
	"github.com/chordline/backend/internal/services/users"
	"github.com/chordline/backend/internal/services/venues"
	"github.com/chordline/backend/internal/storage"
	"github.com/chordline/backend/internal/storage/memory"
	"github.com/chordline/backend/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to
// the in-memory implementation.
type Stores struct {
	Bands         storage.BandStore
	Venues        storage.VenueStore
	Events        storage.EventStore
	Setlists      storage.SetlistStore
	SongIdeas     storage.SongIdeaStore
	Earnings      storage.EarningStore
	Notifications storage.NotificationStore
	Users         storage.UserStore
}

// Application ties the domain services together.
type Application struct {
	log *logger.Logger

	Bands         *bands.Service
	Venues        *venues.Service
	Events        *events.Service
	Setlists      *setlists.Service
	SongIdeas     *songideas.Service
	Earnings      *earnings.Service
	Notifications *notifications.Service
	Users         *users.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, log *logger.Logger) *Application {
	if log == nil {
		log = logger.NewDefault("app")
	}

	mem := memory.New()
	if stores.Bands == nil {
		stores.Bands = mem
	}
	if stores.Venues == nil {
		stores.Venues = mem
	}
	if stores.Events == nil {
		stores.Events = mem
	}
	if stores.Setlists == nil {
		stores.Setlists = mem
	}
	if stores.SongIdeas == nil {
		stores.SongIdeas = mem
	}
	if stores.Earnings == nil {
		stores.Earnings = mem
	}
	if stores.Notifications == nil {
		stores.Notifications = mem
	}
	if stores.Users == nil {
		stores.Users = mem
	}

	return &Application{
		log:           log,
		Bands:         bands.New(stores.Bands, log),
		Venues:        venues.New(stores.Venues, log),
		Events:        events.New(stores.Events, log),
		Setlists:      setlists.New(stores.Setlists, log),
		SongIdeas:     songideas.New(stores.SongIdeas, log),
		Earnings:      earnings.New(stores.Earnings, log),
		Notifications: notifications.New(stores.Notifications, log),
		Users:         users.New(stores.Users, log),
	}
}
