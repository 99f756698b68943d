// Package memory provides an in-memory implementation of the storage
// interfaces. It is safe for concurrent use and is primarily intended
// for tests and local development.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/chordline/backend/internal/domain/band"
	"github.com/chordline/backend/internal/domain/earning"
	"github.com/chordline/backend/internal/domain/event"
	"github.com/chordline/backend/internal/domain/notification"
	"github.com/chordline/backend/internal/domain/setlist"
	"github.com/chordline/backend/internal/domain/songidea"
	"github.com/chordline/backend/internal/domain/user"
	"github.com/chordline/backend/internal/domain/venue"
	"github.com/chordline/backend/internal/storage"
)

// Store is an in-memory implementation of every storage interface.
type Store struct {
	mu     sync.RWMutex
	nextID int64

	bands         map[string]band.Band
	members       map[string]band.Member
	venues        map[string]venue.Venue
	events        map[string]event.Event
	setlists      map[string]setlist.Setlist
	songs         map[string]setlist.Song
	eventLinks    map[string]setlist.EventLink // keyed by eventID+"\x00"+setlistID
	songIdeas     map[string]songidea.Idea
	earnings      map[string]earning.Earning
	splits        map[string]earning.Split
	notifications map[string]notification.Notification
	users         map[string]user.User
}

var _ storage.BandStore = (*Store)(nil)
var _ storage.VenueStore = (*Store)(nil)
var _ storage.EventStore = (*Store)(nil)
var _ storage.SetlistStore = (*Store)(nil)
var _ storage.SongIdeaStore = (*Store)(nil)
var _ storage.EarningStore = (*Store)(nil)
var _ storage.NotificationStore = (*Store)(nil)
var _ storage.UserStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextID:        1,
		bands:         make(map[string]band.Band),
		members:       make(map[string]band.Member),
		venues:        make(map[string]venue.Venue),
		events:        make(map[string]event.Event),
		setlists:      make(map[string]setlist.Setlist),
		songs:         make(map[string]setlist.Song),
		eventLinks:    make(map[string]setlist.EventLink),
		songIdeas:     make(map[string]songidea.Idea),
		earnings:      make(map[string]earning.Earning),
		splits:        make(map[string]earning.Split),
		notifications: make(map[string]notification.Notification),
		users:         make(map[string]user.User),
	}
}

func (s *Store) nextIDLocked() string {
	id := s.nextID
	s.nextID++
	return fmt.Sprintf("%d", id)
}

func linkKey(eventID, setlistID string) string {
	return eventID + "\x00" + setlistID
}

// BandStore implementation ----------------------------------------------------

func (s *Store) CreateBand(_ context.Context, b band.Band) (band.Band, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if b.ID == "" {
		b.ID = s.nextIDLocked()
	}
	if b.Status == "" {
		b.Status = band.StatusActive
	}
	b.CreatedAt = now
	b.UpdatedAt = now
	s.bands[b.ID] = b

	m := band.Member{
		ID:        s.nextIDLocked(),
		BandID:    b.ID,
		UserID:    b.CreatedByID,
		Role:      band.RoleLeader,
		Status:    band.MemberActive,
		JoinedAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.members[m.ID] = m

	return b, nil
}

func (s *Store) ListBandsForUser(_ context.Context, userID string) ([]band.Band, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []band.Band
	for _, m := range s.members {
		if m.UserID != userID {
			continue
		}
		if m.Status != band.MemberActive && m.Status != band.MemberInvited {
			continue
		}
		if b, ok := s.bands[m.BandID]; ok {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *Store) ListMembers(_ context.Context, bandID string) ([]band.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []band.Member
	for _, m := range s.members {
		if m.BandID == bandID {
			result = append(result, m)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].JoinedAt.Before(result[j].JoinedAt) })
	return result, nil
}

// VenueStore implementation ---------------------------------------------------

func (s *Store) CreateVenue(_ context.Context, v venue.Venue) (venue.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if v.ID == "" {
		v.ID = s.nextIDLocked()
	}
	v.CreatedAt = now
	v.UpdatedAt = now
	s.venues[v.ID] = v
	return v, nil
}

func (s *Store) ListVenuesForBand(_ context.Context, bandID string) ([]venue.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []venue.Venue
	for _, v := range s.venues {
		if v.BandID == bandID {
			result = append(result, v)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// EventStore implementation ---------------------------------------------------

func (s *Store) CreateEvent(_ context.Context, e event.Event) (event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if e.ID == "" {
		e.ID = s.nextIDLocked()
	}
	if e.Type == "" {
		e.Type = event.TypeShow
	}
	if e.Status == "" {
		e.Status = event.StatusDraft
	}
	e.CreatedAt = now
	e.UpdatedAt = now
	s.events[e.ID] = e
	return e, nil
}

func (s *Store) ListEventsForBand(_ context.Context, bandID string) ([]event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []event.Event
	for _, e := range s.events {
		if e.BandID == bandID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartsAt.Before(result[j].StartsAt) })
	return result, nil
}

// SetlistStore implementation -------------------------------------------------

func (s *Store) CreateSetlist(_ context.Context, sl setlist.Setlist) (setlist.Setlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if sl.ID == "" {
		sl.ID = s.nextIDLocked()
	}
	if sl.Visibility == "" {
		sl.Visibility = setlist.VisibilityBand
	}
	sl.CreatedAt = now
	sl.UpdatedAt = now
	s.setlists[sl.ID] = sl
	return sl, nil
}

func (s *Store) GetSetlist(_ context.Context, id string) (setlist.Setlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sl, ok := s.setlists[id]
	if !ok {
		return setlist.Setlist{}, storage.ErrNotFound
	}
	return sl, nil
}

func (s *Store) ListSetlistsForBand(_ context.Context, bandID string) ([]setlist.Setlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []setlist.Setlist
	for _, sl := range s.setlists {
		if sl.BandID == bandID {
			result = append(result, sl)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UpdatedAt.After(result[j].UpdatedAt) })
	return result, nil
}

func (s *Store) AddSong(_ context.Context, song setlist.Song, position *int) (setlist.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if song.ID == "" {
		song.ID = s.nextIDLocked()
	}
	if position != nil {
		song.Position = *position
	} else {
		count := 0
		for _, existing := range s.songs {
			if existing.SetlistID == song.SetlistID {
				count++
			}
		}
		song.Position = count
	}
	song.CreatedAt = now
	song.UpdatedAt = now
	s.songs[song.ID] = song
	return song, nil
}

func (s *Store) ListSongs(_ context.Context, setlistID string) ([]setlist.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []setlist.Song
	for _, song := range s.songs {
		if song.SetlistID == setlistID {
			result = append(result, song)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Position < result[j].Position })
	return result, nil
}

func (s *Store) UpsertEventLink(_ context.Context, link setlist.EventLink) (setlist.EventLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := linkKey(link.EventID, link.SetlistID)
	if existing, ok := s.eventLinks[key]; ok {
		existing.Position = link.Position
		s.eventLinks[key] = existing
		return existing, nil
	}
	if link.ID == "" {
		link.ID = s.nextIDLocked()
	}
	s.eventLinks[key] = link
	return link, nil
}

// SongIdeaStore implementation ------------------------------------------------

func (s *Store) CreateSongIdea(_ context.Context, idea songidea.Idea) (songidea.Idea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if idea.ID == "" {
		idea.ID = s.nextIDLocked()
	}
	if idea.Status == "" {
		idea.Status = songidea.StatusDraft
	}
	if idea.Tags == nil {
		idea.Tags = []string{}
	}
	if idea.Status == songidea.StatusShared {
		idea.SharedAt = now
	}
	idea.CreatedAt = now
	idea.UpdatedAt = now
	s.songIdeas[idea.ID] = idea
	return idea, nil
}

func (s *Store) ListSongIdeasForBand(_ context.Context, bandID string) ([]songidea.Idea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []songidea.Idea
	for _, idea := range s.songIdeas {
		if idea.BandID == bandID {
			result = append(result, idea)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UpdatedAt.After(result[j].UpdatedAt) })
	return result, nil
}

func (s *Store) UpdateSongIdeaStatus(_ context.Context, id string, status songidea.Status) (songidea.Idea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idea, ok := s.songIdeas[id]
	if !ok {
		return songidea.Idea{}, storage.ErrNotFound
	}

	now := time.Now().UTC()
	idea.Status = status
	if status == songidea.StatusShared {
		idea.SharedAt = now
	}
	idea.UpdatedAt = now
	s.songIdeas[id] = idea
	return idea, nil
}

// EarningStore implementation -------------------------------------------------

func (s *Store) CreateEarning(_ context.Context, e earning.Earning) (earning.Earning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if e.ID == "" {
		e.ID = s.nextIDLocked()
	}
	if e.Currency == "" {
		e.Currency = "USD"
	}
	e.CreatedAt = now
	e.UpdatedAt = now

	splits := e.Splits
	e.Splits = nil
	s.earnings[e.ID] = e

	stored := e
	for _, sp := range splits {
		sp.ID = s.nextIDLocked()
		sp.EarningID = e.ID
		if sp.Status == "" {
			sp.Status = earning.SplitPending
		}
		sp.CreatedAt = now
		sp.UpdatedAt = now
		s.splits[sp.ID] = sp
		stored.Splits = append(stored.Splits, sp)
	}
	return stored, nil
}

func (s *Store) ListEarningsForBand(_ context.Context, bandID string) ([]earning.Earning, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []earning.Earning
	for _, e := range s.earnings {
		if e.BandID == bandID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (s *Store) ListSplits(_ context.Context, earningID string) ([]earning.Split, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []earning.Split
	for _, sp := range s.splits {
		if sp.EarningID == earningID {
			result = append(result, sp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *Store) AddSplit(_ context.Context, sp earning.Split) (earning.Split, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.earnings[sp.EarningID]; !ok {
		return earning.Split{}, storage.ErrNotFound
	}

	now := time.Now().UTC()
	if sp.ID == "" {
		sp.ID = s.nextIDLocked()
	}
	if sp.Status == "" {
		sp.Status = earning.SplitPending
	}
	sp.CreatedAt = now
	sp.UpdatedAt = now
	s.splits[sp.ID] = sp
	return sp, nil
}

// NotificationStore implementation --------------------------------------------

func (s *Store) CreateNotification(_ context.Context, n notification.Notification) (notification.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if n.ID == "" {
		n.ID = s.nextIDLocked()
	}
	n.CreatedAt = now
	n.UpdatedAt = now
	s.notifications[n.ID] = n
	return n, nil
}

func (s *Store) ListNotificationsForUser(_ context.Context, userID string) ([]notification.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []notification.Notification
	for _, n := range s.notifications {
		if n.RecipientID == userID {
			result = append(result, n)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if len(result) > 100 {
		result = result[:100]
	}
	return result, nil
}

func (s *Store) MarkNotificationRead(_ context.Context, id, recipientID string) (notification.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok || n.RecipientID != recipientID {
		return notification.Notification{}, storage.ErrNotFound
	}

	if n.ReadAt.IsZero() {
		n.ReadAt = time.Now().UTC()
		n.UpdatedAt = n.ReadAt
		s.notifications[id] = n
	}
	return n, nil
}

// UserStore implementation ----------------------------------------------------

func (s *Store) UpsertUser(_ context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	existing, ok := s.users[u.ID]
	if !ok {
		if u.Email == "" {
			u.Email = u.ID + "@chordline.local"
		}
		u.CreatedAt = now
		u.UpdatedAt = now
		s.users[u.ID] = u
		return u, nil
	}

	if u.Email != "" {
		existing.Email = u.Email
	}
	if u.DisplayName != "" {
		existing.DisplayName = u.DisplayName
	}
	if u.ClerkUserID != "" {
		existing.ClerkUserID = u.ClerkUserID
	}
	if u.AvatarURL != "" {
		existing.AvatarURL = u.AvatarURL
	}
	if u.Instrument != "" {
		existing.Instrument = u.Instrument
	}
	if u.PrimaryGenre != "" {
		existing.PrimaryGenre = u.PrimaryGenre
	}
	if u.City != "" {
		existing.City = u.City
	}
	if u.Country != "" {
		existing.Country = u.Country
	}
	existing.UpdatedAt = now
	s.users[u.ID] = existing
	return existing, nil
}
