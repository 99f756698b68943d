// Package storage defines the persistence contracts the domain services
// depend on. Implementations live in storage/memory and storage/postgres.
package storage

import (
	"context"
	"errors"

	"github.com/chordline/backend/internal/domain/band"
	"github.com/chordline/backend/internal/domain/earning"
	"github.com/chordline/backend/internal/domain/event"
	"github.com/chordline/backend/internal/domain/notification"
	"github.com/chordline/backend/internal/domain/setlist"
	"github.com/chordline/backend/internal/domain/songidea"
	"github.com/chordline/backend/internal/domain/user"
	"github.com/chordline/backend/internal/domain/venue"
)

// ErrNotFound is returned when an operation targets a row that does not
// exist. Listing operations never return it; they return empty slices.
var ErrNotFound = errors.New("not found")

// BandStore persists bands and their members.
type BandStore interface {
	// CreateBand stores the band and, in the same transaction, one
	// LEADER/ACTIVE member for b.CreatedByID.
	CreateBand(ctx context.Context, b band.Band) (band.Band, error)
	// ListBandsForUser returns bands where the user holds an ACTIVE or
	// INVITED membership, ordered by band name ascending.
	ListBandsForUser(ctx context.Context, userID string) ([]band.Band, error)
	// ListMembers returns members of a band ordered by joined time.
	ListMembers(ctx context.Context, bandID string) ([]band.Member, error)
}

// VenueStore persists venues.
type VenueStore interface {
	CreateVenue(ctx context.Context, v venue.Venue) (venue.Venue, error)
	ListVenuesForBand(ctx context.Context, bandID string) ([]venue.Venue, error)
}

// EventStore persists events.
type EventStore interface {
	CreateEvent(ctx context.Context, e event.Event) (event.Event, error)
	// ListEventsForBand returns events ordered by start time ascending.
	ListEventsForBand(ctx context.Context, bandID string) ([]event.Event, error)
}

// SetlistStore persists setlists, their songs, and event links.
type SetlistStore interface {
	CreateSetlist(ctx context.Context, s setlist.Setlist) (setlist.Setlist, error)
	GetSetlist(ctx context.Context, id string) (setlist.Setlist, error)
	// ListSetlistsForBand returns setlists ordered by updated time descending.
	ListSetlistsForBand(ctx context.Context, bandID string) ([]setlist.Setlist, error)
	// AddSong inserts a song. A nil position appends at the current
	// song count of the setlist, decided atomically with the insert.
	AddSong(ctx context.Context, s setlist.Song, position *int) (setlist.Song, error)
	// ListSongs returns songs ordered by position ascending.
	ListSongs(ctx context.Context, setlistID string) ([]setlist.Song, error)
	// UpsertEventLink creates the (event, setlist) link or updates the
	// position of the existing one. The upsert is atomic with respect
	// to the unique constraint on the pair.
	UpsertEventLink(ctx context.Context, link setlist.EventLink) (setlist.EventLink, error)
}

// SongIdeaStore persists song ideas.
type SongIdeaStore interface {
	CreateSongIdea(ctx context.Context, idea songidea.Idea) (songidea.Idea, error)
	// ListSongIdeasForBand returns ideas ordered by updated time descending.
	ListSongIdeasForBand(ctx context.Context, bandID string) ([]songidea.Idea, error)
	// UpdateSongIdeaStatus sets the status, stamping SharedAt whenever
	// the new status is SHARED and preserving it otherwise.
	UpdateSongIdeaStatus(ctx context.Context, id string, status songidea.Status) (songidea.Idea, error)
}

// EarningStore persists earnings and splits.
type EarningStore interface {
	// CreateEarning stores the earning and any e.Splits in one
	// transaction: all rows visible or none.
	CreateEarning(ctx context.Context, e earning.Earning) (earning.Earning, error)
	// ListEarningsForBand returns earnings ordered by created time descending.
	ListEarningsForBand(ctx context.Context, bandID string) ([]earning.Earning, error)
	// ListSplits returns splits ordered by created time ascending.
	ListSplits(ctx context.Context, earningID string) ([]earning.Split, error)
	// AddSplit inserts a split, returning ErrNotFound when the parent
	// earning does not exist.
	AddSplit(ctx context.Context, s earning.Split) (earning.Split, error)
}

// NotificationStore persists notifications.
type NotificationStore interface {
	CreateNotification(ctx context.Context, n notification.Notification) (notification.Notification, error)
	// ListNotificationsForUser returns up to 100 most recent
	// notifications ordered by created time descending.
	ListNotificationsForUser(ctx context.Context, userID string) ([]notification.Notification, error)
	// MarkNotificationRead sets ReadAt if currently unset, scoped to
	// the recipient. Repeat calls return the row unchanged.
	MarkNotificationRead(ctx context.Context, id, recipientID string) (notification.Notification, error)
}

// UserStore persists users.
type UserStore interface {
	// UpsertUser creates the user on first call and updates email /
	// display name on later calls. Empty Email or DisplayName means
	// "not supplied": on create the email defaults to a placeholder
	// derived from the id, on update the stored value is kept.
	UpsertUser(ctx context.Context, u user.User) (user.User, error)
}
