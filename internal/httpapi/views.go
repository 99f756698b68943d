package httpapi

import (
	"time"

	"github.com/chordline/backend/internal/domain/band"
	"github.com/chordline/backend/internal/domain/earning"
	"github.com/chordline/backend/internal/domain/event"
	"github.com/chordline/backend/internal/domain/notification"
	"github.com/chordline/backend/internal/domain/setlist"
	"github.com/chordline/backend/internal/domain/songidea"
	"github.com/chordline/backend/internal/domain/user"
	"github.com/chordline/backend/internal/domain/venue"
)

// API views are the JSON-stable shapes the dashboard consumes. Every
// optional field serializes as an explicit null, timestamps as RFC 3339
// strings, monetary amounts as fixed-2-decimal strings.

type bandView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Genre       *string `json:"genre"`
	CreatedByID string  `json:"createdById"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func toBandView(b band.Band) bandView {
	return bandView{
		ID:          b.ID,
		Name:        b.Name,
		Description: nullable(b.Description),
		Genre:       nullable(b.Genre),
		CreatedByID: b.CreatedByID,
		Status:      string(b.Status),
		CreatedAt:   instant(b.CreatedAt),
		UpdatedAt:   instant(b.UpdatedAt),
	}
}

func toBandViews(bs []band.Band) []bandView {
	views := make([]bandView, 0, len(bs))
	for _, b := range bs {
		views = append(views, toBandView(b))
	}
	return views
}

type memberView struct {
	ID        string  `json:"id"`
	BandID    string  `json:"bandId"`
	UserID    string  `json:"userId"`
	Role      string  `json:"role"`
	Status    string  `json:"status"`
	JoinedAt  string  `json:"joinedAt"`
	LeftAt    *string `json:"leftAt"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

func toMemberViews(ms []band.Member) []memberView {
	views := make([]memberView, 0, len(ms))
	for _, m := range ms {
		views = append(views, memberView{
			ID:        m.ID,
			BandID:    m.BandID,
			UserID:    m.UserID,
			Role:      string(m.Role),
			Status:    string(m.Status),
			JoinedAt:  instant(m.JoinedAt),
			LeftAt:    optInstant(m.LeftAt),
			CreatedAt: instant(m.CreatedAt),
			UpdatedAt: instant(m.UpdatedAt),
		})
	}
	return views
}

type venueView struct {
	ID           string   `json:"id"`
	BandID       string   `json:"bandId"`
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	AddressLine1 *string  `json:"addressLine1"`
	AddressLine2 *string  `json:"addressLine2"`
	City         *string  `json:"city"`
	State        *string  `json:"state"`
	PostalCode   *string  `json:"postalCode"`
	Country      *string  `json:"country"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	PlaceID      *string  `json:"placeId"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

func toVenueView(v venue.Venue) venueView {
	return venueView{
		ID:           v.ID,
		BandID:       v.BandID,
		Name:         v.Name,
		Description:  nullable(v.Description),
		AddressLine1: nullable(v.AddressLine1),
		AddressLine2: nullable(v.AddressLine2),
		City:         nullable(v.City),
		State:        nullable(v.State),
		PostalCode:   nullable(v.PostalCode),
		Country:      nullable(v.Country),
		Latitude:     v.Latitude,
		Longitude:    v.Longitude,
		PlaceID:      nullable(v.PlaceID),
		CreatedAt:    instant(v.CreatedAt),
		UpdatedAt:    instant(v.UpdatedAt),
	}
}

func toVenueViews(vs []venue.Venue) []venueView {
	views := make([]venueView, 0, len(vs))
	for _, v := range vs {
		views = append(views, toVenueView(v))
	}
	return views
}

type eventView struct {
	ID           string   `json:"id"`
	BandID       string   `json:"bandId"`
	CreatedByID  string   `json:"createdById"`
	Title        string   `json:"title"`
	Description  *string  `json:"description"`
	Type         string   `json:"type"`
	Status       string   `json:"status"`
	VenueID      *string  `json:"venueId"`
	LocationName *string  `json:"locationName"`
	AddressLine1 *string  `json:"addressLine1"`
	AddressLine2 *string  `json:"addressLine2"`
	City         *string  `json:"city"`
	State        *string  `json:"state"`
	PostalCode   *string  `json:"postalCode"`
	Country      *string  `json:"country"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	StartsAt     string   `json:"startsAt"`
	EndsAt       *string  `json:"endsAt"`
	DoorTime     *string  `json:"doorTime"`
	RSVPDeadline *string  `json:"rsvpDeadline"`
	Notes        *string  `json:"notes"`
	CancelledAt  *string  `json:"cancelledAt"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

func toEventView(e event.Event) eventView {
	return eventView{
		ID:           e.ID,
		BandID:       e.BandID,
		CreatedByID:  e.CreatedByID,
		Title:        e.Title,
		Description:  nullable(e.Description),
		Type:         string(e.Type),
		Status:       string(e.Status),
		VenueID:      nullable(e.VenueID),
		LocationName: nullable(e.LocationName),
		AddressLine1: nullable(e.AddressLine1),
		AddressLine2: nullable(e.AddressLine2),
		City:         nullable(e.City),
		State:        nullable(e.State),
		PostalCode:   nullable(e.PostalCode),
		Country:      nullable(e.Country),
		Latitude:     e.Latitude,
		Longitude:    e.Longitude,
		StartsAt:     instant(e.StartsAt),
		EndsAt:       optInstant(e.EndsAt),
		DoorTime:     optInstant(e.DoorTime),
		RSVPDeadline: optInstant(e.RSVPDeadline),
		Notes:        nullable(e.Notes),
		CancelledAt:  optInstant(e.CancelledAt),
		CreatedAt:    instant(e.CreatedAt),
		UpdatedAt:    instant(e.UpdatedAt),
	}
}

func toEventViews(es []event.Event) []eventView {
	views := make([]eventView, 0, len(es))
	for _, e := range es {
		views = append(views, toEventView(e))
	}
	return views
}

type setlistView struct {
	ID          string  `json:"id"`
	BandID      string  `json:"bandId"`
	CreatedByID string  `json:"createdById"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Visibility  string  `json:"visibility"`
	ArchivedAt  *string `json:"archivedAt"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func toSetlistView(s setlist.Setlist) setlistView {
	return setlistView{
		ID:          s.ID,
		BandID:      s.BandID,
		CreatedByID: s.CreatedByID,
		Title:       s.Title,
		Description: nullable(s.Description),
		Visibility:  string(s.Visibility),
		ArchivedAt:  optInstant(s.ArchivedAt),
		CreatedAt:   instant(s.CreatedAt),
		UpdatedAt:   instant(s.UpdatedAt),
	}
}

func toSetlistViews(ss []setlist.Setlist) []setlistView {
	views := make([]setlistView, 0, len(ss))
	for _, s := range ss {
		views = append(views, toSetlistView(s))
	}
	return views
}

type songView struct {
	ID           string  `json:"id"`
	SetlistID    string  `json:"setlistId"`
	Title        string  `json:"title"`
	Artist       *string `json:"artist"`
	KeySignature *string `json:"keySignature"`
	Tempo        *int    `json:"tempo"`
	Position     int     `json:"position"`
	DurationSec  *int    `json:"durationSec"`
	Notes        *string `json:"notes"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

func toSongView(s setlist.Song) songView {
	return songView{
		ID:           s.ID,
		SetlistID:    s.SetlistID,
		Title:        s.Title,
		Artist:       nullable(s.Artist),
		KeySignature: nullable(s.KeySignature),
		Tempo:        s.Tempo,
		Position:     s.Position,
		DurationSec:  s.DurationSec,
		Notes:        nullable(s.Notes),
		CreatedAt:    instant(s.CreatedAt),
		UpdatedAt:    instant(s.UpdatedAt),
	}
}

func toSongViews(ss []setlist.Song) []songView {
	views := make([]songView, 0, len(ss))
	for _, s := range ss {
		views = append(views, toSongView(s))
	}
	return views
}

type eventLinkView struct {
	ID        string `json:"id"`
	EventID   string `json:"eventId"`
	SetlistID string `json:"setlistId"`
	Position  int    `json:"position"`
}

func toEventLinkView(l setlist.EventLink) eventLinkView {
	return eventLinkView{ID: l.ID, EventID: l.EventID, SetlistID: l.SetlistID, Position: l.Position}
}

type songIdeaView struct {
	ID        string   `json:"id"`
	BandID    string   `json:"bandId"`
	AuthorID  string   `json:"authorId"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Tags      []string `json:"tags"`
	Status    string   `json:"status"`
	SharedAt  *string  `json:"sharedAt"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

func toSongIdeaView(i songidea.Idea) songIdeaView {
	tags := i.Tags
	if tags == nil {
		tags = []string{}
	}
	return songIdeaView{
		ID:        i.ID,
		BandID:    i.BandID,
		AuthorID:  i.AuthorID,
		Title:     i.Title,
		Body:      i.Body,
		Tags:      tags,
		Status:    string(i.Status),
		SharedAt:  optInstant(i.SharedAt),
		CreatedAt: instant(i.CreatedAt),
		UpdatedAt: instant(i.UpdatedAt),
	}
}

func toSongIdeaViews(is []songidea.Idea) []songIdeaView {
	views := make([]songIdeaView, 0, len(is))
	for _, i := range is {
		views = append(views, toSongIdeaView(i))
	}
	return views
}

type earningView struct {
	ID           string      `json:"id"`
	BandID       string      `json:"bandId"`
	EventID      *string     `json:"eventId"`
	RecordedByID string      `json:"recordedById"`
	TotalAmount  string      `json:"totalAmount"`
	Currency     string      `json:"currency"`
	Description  *string     `json:"description"`
	PaidAt       *string     `json:"paidAt"`
	Splits       []splitView `json:"splits"`
	CreatedAt    string      `json:"createdAt"`
	UpdatedAt    string      `json:"updatedAt"`
}

func toEarningView(e earning.Earning) earningView {
	return earningView{
		ID:           e.ID,
		BandID:       e.BandID,
		EventID:      nullable(e.EventID),
		RecordedByID: e.RecordedByID,
		TotalAmount:  e.TotalAmount.StringFixed(2),
		Currency:     e.Currency,
		Description:  nullable(e.Description),
		PaidAt:       optInstant(e.PaidAt),
		Splits:       toSplitViews(e.Splits),
		CreatedAt:    instant(e.CreatedAt),
		UpdatedAt:    instant(e.UpdatedAt),
	}
}

func toEarningViews(es []earning.Earning) []earningView {
	views := make([]earningView, 0, len(es))
	for _, e := range es {
		views = append(views, toEarningView(e))
	}
	return views
}

type splitView struct {
	ID        string  `json:"id"`
	EarningID string  `json:"earningId"`
	MemberID  string  `json:"memberId"`
	Amount    string  `json:"amount"`
	Status    string  `json:"status"`
	PaidAt    *string `json:"paidAt"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

func toSplitView(s earning.Split) splitView {
	return splitView{
		ID:        s.ID,
		EarningID: s.EarningID,
		MemberID:  s.MemberID,
		Amount:    s.Amount.StringFixed(2),
		Status:    string(s.Status),
		PaidAt:    optInstant(s.PaidAt),
		CreatedAt: instant(s.CreatedAt),
		UpdatedAt: instant(s.UpdatedAt),
	}
}

func toSplitViews(ss []earning.Split) []splitView {
	views := make([]splitView, 0, len(ss))
	for _, s := range ss {
		views = append(views, toSplitView(s))
	}
	return views
}

type notificationView struct {
	ID          string         `json:"id"`
	RecipientID string         `json:"recipientId"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Body        string         `json:"body"`
	Payload     map[string]any `json:"payload"`
	ReadAt      *string        `json:"readAt"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
}

func toNotificationView(n notification.Notification) notificationView {
	return notificationView{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		Type:        n.Type,
		Title:       n.Title,
		Body:        n.Body,
		Payload:     n.Payload,
		ReadAt:      optInstant(n.ReadAt),
		CreatedAt:   instant(n.CreatedAt),
		UpdatedAt:   instant(n.UpdatedAt),
	}
}

func toNotificationViews(ns []notification.Notification) []notificationView {
	views := make([]notificationView, 0, len(ns))
	for _, n := range ns {
		views = append(views, toNotificationView(n))
	}
	return views
}

type userView struct {
	ID           string  `json:"id"`
	ClerkUserID  *string `json:"clerkUserId"`
	Email        string  `json:"email"`
	DisplayName  *string `json:"displayName"`
	AvatarURL    *string `json:"avatarUrl"`
	Instrument   *string `json:"instrument"`
	PrimaryGenre *string `json:"primaryGenre"`
	City         *string `json:"city"`
	Country      *string `json:"country"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

func toUserView(u user.User) userView {
	return userView{
		ID:           u.ID,
		ClerkUserID:  nullable(u.ClerkUserID),
		Email:        u.Email,
		DisplayName:  nullable(u.DisplayName),
		AvatarURL:    nullable(u.AvatarURL),
		Instrument:   nullable(u.Instrument),
		PrimaryGenre: nullable(u.PrimaryGenre),
		City:         nullable(u.City),
		Country:      nullable(u.Country),
		CreatedAt:    instant(u.CreatedAt),
		UpdatedAt:    instant(u.UpdatedAt),
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func instant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func optInstant(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := instant(t)
	return &s
}
