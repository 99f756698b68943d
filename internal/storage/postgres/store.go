// Package postgres implements the storage interfaces backed by
// PostgreSQL via sqlx. Upserts use ON CONFLICT so concurrent writers
// cannot produce duplicate rows.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

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

// Store implements the storage interfaces backed by PostgreSQL.
type Store struct {
	db *sqlx.DB
}

var _ storage.BandStore = (*Store)(nil)
var _ storage.VenueStore = (*Store)(nil)
var _ storage.EventStore = (*Store)(nil)
var _ storage.SetlistStore = (*Store)(nil)
var _ storage.SongIdeaStore = (*Store)(nil)
var _ storage.EarningStore = (*Store)(nil)
var _ storage.NotificationStore = (*Store)(nil)
var _ storage.UserStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// --- BandStore ---------------------------------------------------------------

type bandRecord struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Genre       sql.NullString `db:"genre"`
	CreatedByID string         `db:"created_by_id"`
	Status      string         `db:"status"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r bandRecord) toDomain() band.Band {
	return band.Band{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description.String,
		Genre:       r.Genre.String,
		CreatedByID: r.CreatedByID,
		Status:      band.Status(r.Status),
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

type memberRecord struct {
	ID        string       `db:"id"`
	BandID    string       `db:"band_id"`
	UserID    string       `db:"user_id"`
	Role      string       `db:"role"`
	Status    string       `db:"status"`
	JoinedAt  time.Time    `db:"joined_at"`
	LeftAt    sql.NullTime `db:"left_at"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
}

func (r memberRecord) toDomain() band.Member {
	return band.Member{
		ID:        r.ID,
		BandID:    r.BandID,
		UserID:    r.UserID,
		Role:      band.MemberRole(r.Role),
		Status:    band.MemberStatus(r.Status),
		JoinedAt:  r.JoinedAt.UTC(),
		LeftAt:    timeOf(r.LeftAt),
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

func (s *Store) CreateBand(ctx context.Context, b band.Band) (band.Band, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = band.StatusActive
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return band.Band{}, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO bands (id, name, description, genre, created_by_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`, b.ID, b.Name, toNullString(b.Description), toNullString(b.Genre), b.CreatedByID, b.Status, now)
	if err != nil {
		return band.Band{}, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO band_members (id, band_id, user_id, role, status, joined_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6, $6)
	`, uuid.NewString(), b.ID, b.CreatedByID, band.RoleLeader, band.MemberActive, now)
	if err != nil {
		return band.Band{}, err
	}

	if err := tx.Commit(); err != nil {
		return band.Band{}, err
	}
	return b, nil
}

func (s *Store) ListBandsForUser(ctx context.Context, userID string) ([]band.Band, error) {
	var records []bandRecord
	err := s.db.SelectContext(ctx, &records, `
		SELECT b.id, b.name, b.description, b.genre, b.created_by_id, b.status, b.created_at, b.updated_at
		FROM bands b
		JOIN band_members m ON m.band_id = b.id
		WHERE m.user_id = $1 AND m.status IN ('ACTIVE', 'INVITED')
		ORDER BY b.name ASC
	`, userID)
	if err != nil {
		return nil, err
	}

	result := make([]band.Band, 0, len(records))
	for _, r := range records {
		result = append(result, r.toDomain())
	}
	return result, nil
}

func (s *Store) ListMembers(ctx context.Context, bandID string) ([]band.Member, error) {
	var records []memberRecord
	err := s.db.SelectContext(ctx, &records, `
		SELECT id, band_id, user_id, role, status, joined_at, left_at, created_at, updated_at
		FROM band_members
		WHERE band_id = $1
		ORDER BY joined_at ASC
	`, bandID)
	if err != nil {
		return nil, err
	}

	result := make([]band.Member, 0, len(records))
	for _, r := range records {
		result = append(result, r.toDomain())
	}
	return result, nil
}

// --- VenueStore --------------------------------------------------------------

type venueRecord struct {
	ID           string          `db:"id"`
	BandID       string          `db:"band_id"`
	Name         string          `db:"name"`
	Description  sql.NullString  `db:"description"`
	AddressLine1 sql.NullString  `db:"address_line1"`
	AddressLine2 sql.NullString  `db:"address_line2"`
	City         sql.NullString  `db:"city"`
	State        sql.NullString  `db:"state"`
	PostalCode   sql.NullString  `db:"postal_code"`
	Country      sql.NullString  `db:"country"`
	Latitude     sql.NullFloat64 `db:"latitude"`
	Longitude    sql.NullFloat64 `db:"longitude"`
	PlaceID      sql.NullString  `db:"place_id"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

func (r venueRecord) toDomain() venue.Venue {
	return venue.Venue{
		ID:           r.ID,
		BandID:       r.BandID,
		Name:         r.Name,
		Description:  r.Description.String,
		AddressLine1: r.AddressLine1.String,
		AddressLine2: r.AddressLine2.String,
		City:         r.City.String,
		State:        r.State.String,
		PostalCode:   r.PostalCode.String,
		Country:      r.Country.String,
		Latitude:     floatOf(r.Latitude),
		Longitude:    floatOf(r.Longitude),
		PlaceID:      r.PlaceID.String,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

func (s *Store) CreateVenue(ctx context.Context, v venue.Venue) (venue.Venue, error) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO venues (id, band_id, name, description, address_line1, address_line2,
			city, state, postal_code, country, latitude, longitude, place_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
	`, v.ID, v.BandID, v.Name, toNullString(v.Description), toNullString(v.AddressLine1),
		toNullString(v.AddressLine2), toNullString(v.City), toNullString(v.State),
		toNullString(v.PostalCode), toNullString(v.Country), v.Latitude, v.Longitude,
		toNullString(v.PlaceID), now)
	if err != nil {
		return venue.Venue{}, err
	}
	return v, nil
}

func (s *Store) ListVenuesForBand(ctx context.Context, bandID string) ([]venue.Venue, error) {
	var records []venueRecord
	err := s.db.SelectContext(ctx, &records, `
		SELECT id, band_id, name, description, address_line1, address_line2,
			city, state, postal_code, country, latitude, longitude, place_id, created_at, updated_at
		FROM venues
		WHERE band_id = $1
		ORDER BY name ASC
	`, bandID)
	if err != nil {
		return nil, err
	}

	result := make([]venue.Venue, 0, len(records))
	for _, r := range records {
		result = append(result, r.toDomain())
	}
	return result, nil
}

// --- EventStore --------------------------------------------------------------

type eventRecord struct {
	ID           string          `db:"id"`
	BandID       string          `db:"band_id"`
	CreatedByID  string          `db:"created_by_id"`
	Title        string          `db:"title"`
	Description  sql.NullString  `db:"description"`
	Type         string          `db:"type"`
	Status       string          `db:"status"`
	VenueID      sql.NullString  `db:"venue_id"`
	LocationName sql.NullString  `db:"location_name"`
	AddressLine1 sql.NullString  `db:"address_line1"`
	AddressLine2 sql.NullString  `db:"address_line2"`
	City         sql.NullString  `db:"city"`
	State        sql.NullString  `db:"state"`
	PostalCode   sql.NullString  `db:"postal_code"`
	Country      sql.NullString  `db:"country"`
	Latitude     sql.NullFloat64 `db:"latitude"`
	Longitude    sql.NullFloat64 `db:"longitude"`
	StartsAt     time.Time       `db:"starts_at"`
	EndsAt       sql.NullTime    `db:"ends_at"`
	DoorTime     sql.NullTime    `db:"door_time"`
	RSVPDeadline sql.NullTime    `db:"rsvp_deadline"`
	Notes        sql.NullString  `db:"notes"`
	CancelledAt  sql.NullTime    `db:"cancelled_at"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

func (r eventRecord) toDomain() event.Event {
	return event.Event{
		ID:           r.ID,
		BandID:       r.BandID,
		CreatedByID:  r.CreatedByID,
		Title:        r.Title,
		Description:  r.Description.String,
		Type:         event.Type(r.Type),
		Status:       event.Status(r.Status),
		VenueID:      r.VenueID.String,
		LocationName: r.LocationName.String,
		AddressLine1: r.AddressLine1.String,
		AddressLine2: r.AddressLine2.String,
		City:         r.City.String,
		State:        r.State.String,
		PostalCode:   r.PostalCode.String,
		Country:      r.Country.String,
		Latitude:     floatOf(r.Latitude),
		Longitude:    floatOf(r.Longitude),
		StartsAt:     r.StartsAt.UTC(),
		EndsAt:       timeOf(r.EndsAt),
		DoorTime:     timeOf(r.DoorTime),
		RSVPDeadline: timeOf(r.RSVPDeadline),
		Notes:        r.Notes.String,
		CancelledAt:  timeOf(r.CancelledAt),
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

func (s *Store) CreateEvent(ctx context.Context, e event.Event) (event.Event, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Type == "" {
		e.Type = event.TypeShow
	}
	if e.Status == "" {
		e.Status = event.StatusDraft
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, band_id, created_by_id, title, description, type, status,
			venue_id, location_name, address_line1, address_line2, city, state, postal_code, country,
			latitude, longitude, starts_at, ends_at, door_time, rsvp_deadline, notes, cancelled_at,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $24)
	`, e.ID, e.BandID, e.CreatedByID, e.Title, toNullString(e.Description), e.Type, e.Status,
		toNullString(e.VenueID), toNullString(e.LocationName), toNullString(e.AddressLine1),
		toNullString(e.AddressLine2), toNullString(e.City), toNullString(e.State),
		toNullString(e.PostalCode), toNullString(e.Country), e.Latitude, e.Longitude,
		e.StartsAt, toNullTime(e.EndsAt), toNullTime(e.DoorTime), toNullTime(e.RSVPDeadline),
		toNullString(e.Notes), toNullTime(e.CancelledAt), now)
	if err != nil {
		return event.Event{}, err
	}
	return e, nil
}

func (s *Store) ListEventsForBand(ctx context.Context, bandID string) ([]event.Event, error) {
	var records []eventRecord
	err := s.db.SelectContext(ctx, &records, `
		SELECT id, band_id, created_by_id, title, description, type, status,
			venue_id, location_name, address_line1, address_line2, city, state, postal_code, country,
			latitude, longitude, starts_at, ends_at, door_time, rsvp_deadline, notes, cancelled_at,
			created_at, updated_at
		FROM events
		WHERE band_id = $1
		ORDER BY starts_at ASC
	`, bandID)
	if err != nil {
		return nil, err
	}

	result := make([]event.Event, 0, len(records))
	for _, r := range records {
		result = append(result, r.toDomain())
	}
	return result, nil
}

// --- SetlistStore ------------------------------------------------------------

type setlistRecord struct {
	ID          string         `db:"id"`
	BandID      string         `db:"band_id"`
	CreatedByID string         `db:"created_by_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Visibility  string         `db:"visibility"`
	ArchivedAt  sql.NullTime   `db:"archived_at"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r setlistRecord) toDomain() setlist.Setlist {
	return setlist.Setlist{
		ID:          r.ID,
		BandID:      r.BandID,
		CreatedByID: r.CreatedByID,
		Title:       r.Title,
		Description: r.Description.String,
		Visibility:  setlist.Visibility(r.Visibility),
		ArchivedAt:  timeOf(r.ArchivedAt),
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

type songRecord struct {
	ID           string         `db:"id"`
	SetlistID    string         `db:"setlist_id"`
	Title        string         `db:"title"`
	Artist       sql.NullString `db:"artist"`
	KeySignature sql.NullString `db:"key_signature"`
	Tempo        sql.NullInt64  `db:"tempo"`
	Position     int            `db:"position"`
	DurationSec  sql.NullInt64  `db:"duration_sec"`
	Notes        sql.NullString `db:"notes"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (r songRecord) toDomain() setlist.Song {
	return setlist.Song{
		ID:           r.ID,
		SetlistID:    r.SetlistID,
		Title:        r.Title,
		Artist:       r.Artist.String,
		KeySignature: r.KeySignature.String,
		Tempo:        intOf(r.Tempo),
		Position:     r.Position,
		DurationSec:  intOf(r.DurationSec),
		Notes:        r.Notes.String,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

func (s *Store) CreateSetlist(ctx context.Context, sl setlist.Setlist) (setlist.Setlist, error) {
	if sl.ID == "" {
		sl.ID = uuid.NewString()
	}
	if sl.Visibility == "" {
		sl.Visibility = setlist.VisibilityBand
	}
	now := time.Now().UTC()
	sl.CreatedAt = now
	sl.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO setlists (id, band_id, created_by_id, title, description, visibility, archived_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`, sl.ID, sl.BandID, sl.CreatedByID, sl.Title, toNullString(sl.Description), sl.Visibility,
		toNullTime(sl.ArchivedAt), now)
	if err != nil {
		return setlist.Setlist{}, err
	}
	return sl, nil
}

func (s *Store) GetSetlist(ctx context.Context, id string) (setlist.Setlist, error) {
	var r setlistRecord
	err := s.db.GetContext(ctx, &r, `
		SELECT id, band_id, created_by_id, title, description, visibility, archived_at, created_at, updated_at
		FROM setlists
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return setlist.Setlist{}, storage.ErrNotFound
	}
	if err != nil {
		return setlist.Setlist{}, err
	}
	return r.toDomain(), nil
}

func (s *Store) ListSetlistsForBand(ctx context.Context, bandID string) ([]setlist.Setlist, error) {
	var records []setlistRecord
	err := s.db.SelectContext(ctx, &records, `
		SELECT id, band_id, created_by_id, title, description, visibility, archived_at, created_at, updated_at
		FROM setlists
		WHERE band_id = $1
		ORDER BY updated_at DESC
	`, bandID)
	if err != nil {
		return nil, err
	}

	result := make([]setlist.Setlist, 0, len(records))
	for _, r := range records {
		result = append(result, r.toDomain())
	}
	return result, nil
}

func (s *Store) AddSong(ctx context.Context, song setlist.Song, position *int) (setlist.Song, error) {
	if song.ID == "" {
		song.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	song.CreatedAt = now
	song.UpdatedAt = now

	// The append position is resolved inside the insert so it stays
	// consistent with the row count at write time.
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO setlist_songs (id, setlist_id, title, artist, key_signature, tempo, position, duration_sec, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6,
			COALESCE($7, (SELECT COUNT(*)::int FROM setlist_songs WHERE setlist_id = $2)),
			$8, $9, $10, $10)
		RETURNING position
	`, song.ID, song.SetlistID, song.Title, toNullString(song.Artist), toNullString(song.KeySignature),
		song.Tempo, position, song.DurationSec, toNullString(song.Notes), now).Scan(&song.Position)
	if err != nil {
		return setlist.Song{}, err
	}
	return song, nil
}

func (s *Store) ListSongs(ctx context.Context, setlistID string) ([]setlist.Song, error) {
	var records []songRecord
	err := s.db.SelectContext(ctx, &records, `
		SELECT id, setlist_id, title, artist, key_signature, tempo, position, duration_sec, notes, created_at, updated_at
		FROM setlist_songs
		WHERE setlist_id = $1
		ORDER BY position ASC
	`, setlistID)
	if err != nil {
		return nil, err
	}

	result := make([]setlist.Song, 0, len(records))
	for _, r := range records {
		result = append(result, r.toDomain())
	}
	return result, nil
}

func (s *Store) UpsertEventLink(ctx context.Context, link setlist.EventLink) (setlist.EventLink, error) {
	if link.ID == "" {
		link.ID = uuid.NewString()
	}

	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO event_setlists (id, event_id, setlist_id, position)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id, setlist_id)
		DO UPDATE SET position = EXCLUDED.position
		RETURNING id, event_id, setlist_id, position
	`, link.ID, link.EventID, link.SetlistID, link.Position).
		Scan(&link.ID, &link.EventID, &link.SetlistID, &link.Position)
	if err != nil {
		return setlist.EventLink{}, err
	}
	return link, nil
}

// --- SongIdeaStore -----------------------------------------------------------

type songIdeaRecord struct {
	ID        string         `db:"id"`
	BandID    string         `db:"band_id"`
	AuthorID  string         `db:"author_id"`
	Title     string         `db:"title"`
	Body      string         `db:"body"`
	Tags      pq.StringArray `db:"tags"`
	Status    string         `db:"status"`
	SharedAt  sql.NullTime   `db:"shared_at"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (r songIdeaRecord) toDomain() songidea.Idea {
	tags := []string(r.Tags)
	if tags == nil {
		tags = []string{}
	}
	return songidea.Idea{
		ID:        r.ID,
		BandID:    r.BandID,
		AuthorID:  r.AuthorID,
		Title:     r.Title,
		Body:      r.Body,
		Tags:      tags,
		Status:    songidea.Status(r.Status),
		SharedAt:  timeOf(r.SharedAt),
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

func (s *Store) CreateSongIdea(ctx context.Context, idea songidea.Idea) (songidea.Idea, error) {
	if idea.ID == "" {
		idea.ID = uuid.NewString()
	}
	if idea.Status == "" {
		idea.Status = songidea.StatusDraft
	}
	if idea.Tags == nil {
		idea.Tags = []string{}
	}
	now := time.Now().UTC()
	if idea.Status == songidea.StatusShared {
		idea.SharedAt = now
	}
	idea.CreatedAt = now
	idea.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO song_ideas (id, band_id, author_id, title, body, tags, status, shared_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	`, idea.ID, idea.BandID, idea.AuthorID, idea.Title, idea.Body, pq.StringArray(idea.Tags),
		idea.Status, toNullTime(idea.SharedAt), now)
	if err != nil {
		return songidea.Idea{}, err
	}
	return idea, nil
}

func (s *Store) ListSongIdeasForBand(ctx context.Context, bandID string) ([]songidea.Idea, error) {
	var records []songIdeaRecord
	err := s.db.SelectContext(ctx, &records, `
		SELECT id, band_id, author_id, title, body, tags, status, shared_at, created_at, updated_at
		FROM song_ideas
		WHERE band_id = $1
		ORDER BY updated_at DESC
	`, bandID)
	if err != nil {
		return nil, err
	}

	result := make([]songidea.Idea, 0, len(records))
	for _, r := range records {
		result = append(result, r.toDomain())
	}
	return result, nil
}

func (s *Store) UpdateSongIdeaStatus(ctx context.Context, id string, status songidea.Status) (songidea.Idea, error) {
	now := time.Now().UTC()

	var r songIdeaRecord
	err := s.db.GetContext(ctx, &r, `
		UPDATE song_ideas
		SET status = $2,
			shared_at = CASE WHEN $2 = 'SHARED' THEN $3 ELSE shared_at END,
			updated_at = $3
		WHERE id = $1
		RETURNING id, band_id, author_id, title, body, tags, status, shared_at, created_at, updated_at
	`, id, status, now)
	if errors.Is(err, sql.ErrNoRows) {
		return songidea.Idea{}, storage.ErrNotFound
	}
	if err != nil {
		return songidea.Idea{}, err
	}
	return r.toDomain(), nil
}

// --- EarningStore ------------------------------------------------------------

type earningRecord struct {
	ID           string          `db:"id"`
	BandID       string          `db:"band_id"`
	EventID      sql.NullString  `db:"event_id"`
	RecordedByID string          `db:"recorded_by_id"`
	TotalAmount  decimal.Decimal `db:"total_amount"`
	Currency     string          `db:"currency"`
	Description  sql.NullString  `db:"description"`
	PaidAt       sql.NullTime    `db:"paid_at"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

func (r earningRecord) toDomain() earning.Earning {
	return earning.Earning{
		ID:           r.ID,
		BandID:       r.BandID,
		EventID:      r.EventID.String,
		RecordedByID: r.RecordedByID,
		TotalAmount:  r.TotalAmount,
		Currency:     r.Currency,
		Description:  r.Description.String,
		PaidAt:       timeOf(r.PaidAt),
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

type splitRecord struct {
	ID        string          `db:"id"`
	EarningID string          `db:"earning_id"`
	MemberID  string          `db:"member_id"`
	Amount    decimal.Decimal `db:"amount"`
	Status    string          `db:"status"`
	PaidAt    sql.NullTime    `db:"paid_at"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

func (r splitRecord) toDomain() earning.Split {
	return earning.Split{
		ID:        r.ID,
		EarningID: r.EarningID,
		MemberID:  r.MemberID,
		Amount:    r.Amount,
		Status:    earning.SplitStatus(r.Status),
		PaidAt:    timeOf(r.PaidAt),
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

func (s *Store) CreateEarning(ctx context.Context, e earning.Earning) (earning.Earning, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Currency == "" {
		e.Currency = "USD"
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return earning.Earning{}, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO earnings (id, band_id, event_id, recorded_by_id, total_amount, currency, description, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	`, e.ID, e.BandID, toNullString(e.EventID), e.RecordedByID, e.TotalAmount, e.Currency,
		toNullString(e.Description), toNullTime(e.PaidAt), now)
	if err != nil {
		return earning.Earning{}, err
	}

	splits := e.Splits
	e.Splits = nil
	for _, sp := range splits {
		sp.ID = uuid.NewString()
		sp.EarningID = e.ID
		if sp.Status == "" {
			sp.Status = earning.SplitPending
		}
		sp.CreatedAt = now
		sp.UpdatedAt = now

		_, err = tx.ExecContext(ctx, `
			INSERT INTO earning_splits (id, earning_id, member_id, amount, status, paid_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		`, sp.ID, sp.EarningID, sp.MemberID, sp.Amount, sp.Status, toNullTime(sp.PaidAt), now)
		if err != nil {
			return earning.Earning{}, err
		}
		e.Splits = append(e.Splits, sp)
	}

	if err := tx.Commit(); err != nil {
		return earning.Earning{}, err
	}
	return e, nil
}

func (s *Store) ListEarningsForBand(ctx context.Context, bandID string) ([]earning.Earning, error) {
	var records []earningRecord
	err := s.db.SelectContext(ctx, &records, `
		SELECT id, band_id, event_id, recorded_by_id, total_amount, currency, description, paid_at, created_at, updated_at
		FROM earnings
		WHERE band_id = $1
		ORDER BY created_at DESC
	`, bandID)
	if err != nil {
		return nil, err
	}

	result := make([]earning.Earning, 0, len(records))
	for _, r := range records {
		result = append(result, r.toDomain())
	}
	return result, nil
}

func (s *Store) ListSplits(ctx context.Context, earningID string) ([]earning.Split, error) {
	var records []splitRecord
	err := s.db.SelectContext(ctx, &records, `
		SELECT id, earning_id, member_id, amount, status, paid_at, created_at, updated_at
		FROM earning_splits
		WHERE earning_id = $1
		ORDER BY created_at ASC
	`, earningID)
	if err != nil {
		return nil, err
	}

	result := make([]earning.Split, 0, len(records))
	for _, r := range records {
		result = append(result, r.toDomain())
	}
	return result, nil
}

func (s *Store) AddSplit(ctx context.Context, sp earning.Split) (earning.Split, error) {
	if sp.ID == "" {
		sp.ID = uuid.NewString()
	}
	if sp.Status == "" {
		sp.Status = earning.SplitPending
	}
	now := time.Now().UTC()
	sp.CreatedAt = now
	sp.UpdatedAt = now

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return earning.Split{}, err
	}
	defer tx.Rollback()

	var exists int
	err = tx.GetContext(ctx, &exists, `SELECT 1 FROM earnings WHERE id = $1`, sp.EarningID)
	if errors.Is(err, sql.ErrNoRows) {
		return earning.Split{}, storage.ErrNotFound
	}
	if err != nil {
		return earning.Split{}, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO earning_splits (id, earning_id, member_id, amount, status, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`, sp.ID, sp.EarningID, sp.MemberID, sp.Amount, sp.Status, toNullTime(sp.PaidAt), now)
	if err != nil {
		return earning.Split{}, err
	}

	if err := tx.Commit(); err != nil {
		return earning.Split{}, err
	}
	return sp, nil
}

// --- NotificationStore -------------------------------------------------------

type notificationRecord struct {
	ID          string       `db:"id"`
	RecipientID string       `db:"recipient_id"`
	Type        string       `db:"type"`
	Title       string       `db:"title"`
	Body        string       `db:"body"`
	Payload     []byte       `db:"payload"`
	ReadAt      sql.NullTime `db:"read_at"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

func (r notificationRecord) toDomain() notification.Notification {
	n := notification.Notification{
		ID:          r.ID,
		RecipientID: r.RecipientID,
		Type:        r.Type,
		Title:       r.Title,
		Body:        r.Body,
		ReadAt:      timeOf(r.ReadAt),
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
	if len(r.Payload) > 0 {
		_ = json.Unmarshal(r.Payload, &n.Payload)
	}
	return n
}

func (s *Store) CreateNotification(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now

	var payload []byte
	if n.Payload != nil {
		var err error
		payload, err = json.Marshal(n.Payload)
		if err != nil {
			return notification.Notification{}, err
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, recipient_id, type, title, body, payload, read_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`, n.ID, n.RecipientID, n.Type, n.Title, n.Body, payload, toNullTime(n.ReadAt), now)
	if err != nil {
		return notification.Notification{}, err
	}
	return n, nil
}

func (s *Store) ListNotificationsForUser(ctx context.Context, userID string) ([]notification.Notification, error) {
	var records []notificationRecord
	err := s.db.SelectContext(ctx, &records, `
		SELECT id, recipient_id, type, title, body, payload, read_at, created_at, updated_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
		LIMIT 100
	`, userID)
	if err != nil {
		return nil, err
	}

	result := make([]notification.Notification, 0, len(records))
	for _, r := range records {
		result = append(result, r.toDomain())
	}
	return result, nil
}

func (s *Store) MarkNotificationRead(ctx context.Context, id, recipientID string) (notification.Notification, error) {
	now := time.Now().UTC()

	var r notificationRecord
	err := s.db.GetContext(ctx, &r, `
		UPDATE notifications
		SET read_at = COALESCE(read_at, $3),
			updated_at = CASE WHEN read_at IS NULL THEN $3 ELSE updated_at END
		WHERE id = $1 AND recipient_id = $2
		RETURNING id, recipient_id, type, title, body, payload, read_at, created_at, updated_at
	`, id, recipientID, now)
	if errors.Is(err, sql.ErrNoRows) {
		return notification.Notification{}, storage.ErrNotFound
	}
	if err != nil {
		return notification.Notification{}, err
	}
	return r.toDomain(), nil
}

// --- UserStore ---------------------------------------------------------------

type userRecord struct {
	ID           string         `db:"id"`
	ClerkUserID  sql.NullString `db:"clerk_user_id"`
	Email        string         `db:"email"`
	DisplayName  sql.NullString `db:"display_name"`
	AvatarURL    sql.NullString `db:"avatar_url"`
	Instrument   sql.NullString `db:"instrument"`
	PrimaryGenre sql.NullString `db:"primary_genre"`
	City         sql.NullString `db:"city"`
	Country      sql.NullString `db:"country"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (r userRecord) toDomain() user.User {
	return user.User{
		ID:           r.ID,
		ClerkUserID:  r.ClerkUserID.String,
		Email:        r.Email,
		DisplayName:  r.DisplayName.String,
		AvatarURL:    r.AvatarURL.String,
		Instrument:   r.Instrument.String,
		PrimaryGenre: r.PrimaryGenre.String,
		City:         r.City.String,
		Country:      r.Country.String,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

func (s *Store) UpsertUser(ctx context.Context, u user.User) (user.User, error) {
	now := time.Now().UTC()

	// A single statement keyed on the primary key keeps concurrent
	// first-login upserts race free. Empty strings mean "not supplied":
	// on insert the email falls back to a placeholder; on update the
	// stored values win.
	var r userRecord
	err := s.db.GetContext(ctx, &r, `
		INSERT INTO users (id, clerk_user_id, email, display_name, avatar_url, instrument, primary_genre, city, country, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), COALESCE(NULLIF($3, ''), $1 || '@chordline.local'), NULLIF($4, ''),
			NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), $10, $10)
		ON CONFLICT (id) DO UPDATE SET
			clerk_user_id = COALESCE(NULLIF($2, ''), users.clerk_user_id),
			email = COALESCE(NULLIF($3, ''), users.email),
			display_name = COALESCE(NULLIF($4, ''), users.display_name),
			avatar_url = COALESCE(NULLIF($5, ''), users.avatar_url),
			instrument = COALESCE(NULLIF($6, ''), users.instrument),
			primary_genre = COALESCE(NULLIF($7, ''), users.primary_genre),
			city = COALESCE(NULLIF($8, ''), users.city),
			country = COALESCE(NULLIF($9, ''), users.country),
			updated_at = $10
		RETURNING id, clerk_user_id, email, display_name, avatar_url, instrument, primary_genre, city, country, created_at, updated_at
	`, u.ID, u.ClerkUserID, u.Email, u.DisplayName, u.AvatarURL, u.Instrument, u.PrimaryGenre, u.City, u.Country, now)
	if err != nil {
		return user.User{}, err
	}
	return r.toDomain(), nil
}

// --- helpers -----------------------------------------------------------------

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func toNullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timeOf(t sql.NullTime) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time.UTC()
}

func floatOf(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

func intOf(i sql.NullInt64) *int {
	if !i.Valid {
		return nil
	}
	v := int(i.Int64)
	return &v
}
