// Package httpapi exposes the REST surface consumed by the dashboard.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chordline/backend/internal/app"
	"github.com/chordline/backend/internal/metrics"
	"github.com/chordline/backend/internal/services/bands"
	"github.com/chordline/backend/internal/services/earnings"
	"github.com/chordline/backend/internal/services/events"
	"github.com/chordline/backend/internal/services/setlists"
	"github.com/chordline/backend/internal/services/songideas"
	"github.com/chordline/backend/internal/services/users"
	"github.com/chordline/backend/internal/services/venues"
)

// Options carries the middleware stack for the router. Nil entries are
// skipped, which the handler tests rely on.
type Options struct {
	Auth      *Authenticator
	CORS      *CORS
	RateLimit *RateLimiter
}

type handler struct {
	app *app.Application
}

// NewHandler returns the router exposing the REST API. All /v1 routes
// require a bearer token; /health and /metrics do not.
func NewHandler(application *app.Application, opts Options) http.Handler {
	h := &handler{app: application}

	r := chi.NewRouter()
	if opts.CORS != nil {
		r.Use(opts.CORS.Handler)
	}
	r.Use(metrics.InstrumentHandler)

	r.Get("/health", h.health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		if opts.Auth != nil {
			r.Use(opts.Auth.Middleware)
		}
		if opts.RateLimit != nil {
			r.Use(opts.RateLimit.Handler)
		}

		r.Get("/bands", h.listBands)
		r.Post("/bands", h.createBand)
		r.Get("/bands/{bandId}/members", h.listMembers)
		r.Get("/bands/{bandId}/venues", h.listVenues)
		r.Post("/bands/{bandId}/venues", h.createVenue)
		r.Get("/bands/{bandId}/events", h.listEvents)
		r.Post("/bands/{bandId}/events", h.createEvent)
		r.Get("/bands/{bandId}/setlists", h.listSetlists)
		r.Post("/bands/{bandId}/setlists", h.createSetlist)
		r.Get("/setlists/{id}", h.getSetlist)
		r.Get("/setlists/{id}/songs", h.listSongs)
		r.Post("/setlists/{id}/songs", h.addSong)
		r.Post("/events/{id}/setlists", h.attachSetlist)
		r.Get("/bands/{bandId}/song-ideas", h.listSongIdeas)
		r.Post("/bands/{bandId}/song-ideas", h.createSongIdea)
		r.Patch("/song-ideas/{id}/status", h.updateSongIdeaStatus)
		r.Get("/bands/{bandId}/earnings", h.listEarnings)
		r.Post("/bands/{bandId}/earnings", h.createEarning)
		r.Get("/earnings/{id}/splits", h.listSplits)
		r.Post("/earnings/{id}/splits", h.addSplit)
		r.Get("/notifications", h.listNotifications)
		r.Post("/notifications/{id}/read", h.markNotificationRead)
		r.Get("/users/me", h.me)
	})

	return r
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- bands -------------------------------------------------------------------

func (h *handler) listBands(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Bands.ListForUser(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBandViews(result))
}

func (h *handler) createBand(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Genre       string `json:"genre"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.app.Bands.Create(r.Context(), UserID(r.Context()), bands.CreateInput{
		Name:        payload.Name,
		Description: payload.Description,
		Genre:       payload.Genre,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBandView(created))
}

func (h *handler) listMembers(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Bands.ListMembers(r.Context(), chi.URLParam(r, "bandId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMemberViews(result))
}

// --- venues ------------------------------------------------------------------

func (h *handler) listVenues(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Venues.ListForBand(r.Context(), chi.URLParam(r, "bandId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVenueViews(result))
}

func (h *handler) createVenue(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name         string   `json:"name"`
		Description  string   `json:"description"`
		AddressLine1 string   `json:"addressLine1"`
		AddressLine2 string   `json:"addressLine2"`
		City         string   `json:"city"`
		State        string   `json:"state"`
		PostalCode   string   `json:"postalCode"`
		Country      string   `json:"country"`
		Latitude     *float64 `json:"latitude"`
		Longitude    *float64 `json:"longitude"`
		PlaceID      string   `json:"placeId"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.app.Venues.Create(r.Context(), chi.URLParam(r, "bandId"), venues.CreateInput{
		Name:         payload.Name,
		Description:  payload.Description,
		AddressLine1: payload.AddressLine1,
		AddressLine2: payload.AddressLine2,
		City:         payload.City,
		State:        payload.State,
		PostalCode:   payload.PostalCode,
		Country:      payload.Country,
		Latitude:     payload.Latitude,
		Longitude:    payload.Longitude,
		PlaceID:      payload.PlaceID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toVenueView(created))
}

// --- events ------------------------------------------------------------------

func (h *handler) listEvents(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Events.ListForBand(r.Context(), chi.URLParam(r, "bandId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventViews(result))
}

func (h *handler) createEvent(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title        string   `json:"title"`
		Description  string   `json:"description"`
		Type         string   `json:"type"`
		Status       string   `json:"status"`
		VenueID      string   `json:"venueId"`
		LocationName string   `json:"locationName"`
		AddressLine1 string   `json:"addressLine1"`
		AddressLine2 string   `json:"addressLine2"`
		City         string   `json:"city"`
		State        string   `json:"state"`
		PostalCode   string   `json:"postalCode"`
		Country      string   `json:"country"`
		Latitude     *float64 `json:"latitude"`
		Longitude    *float64 `json:"longitude"`
		StartsAt     string   `json:"startsAt"`
		EndsAt       string   `json:"endsAt"`
		DoorTime     string   `json:"doorTime"`
		RSVPDeadline string   `json:"rsvpDeadline"`
		Notes        string   `json:"notes"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.app.Events.Create(r.Context(), chi.URLParam(r, "bandId"), UserID(r.Context()), events.CreateInput{
		Title:        payload.Title,
		Description:  payload.Description,
		Type:         payload.Type,
		Status:       payload.Status,
		VenueID:      payload.VenueID,
		LocationName: payload.LocationName,
		AddressLine1: payload.AddressLine1,
		AddressLine2: payload.AddressLine2,
		City:         payload.City,
		State:        payload.State,
		PostalCode:   payload.PostalCode,
		Country:      payload.Country,
		Latitude:     payload.Latitude,
		Longitude:    payload.Longitude,
		StartsAt:     payload.StartsAt,
		EndsAt:       payload.EndsAt,
		DoorTime:     payload.DoorTime,
		RSVPDeadline: payload.RSVPDeadline,
		Notes:        payload.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEventView(created))
}

// --- setlists ----------------------------------------------------------------

func (h *handler) listSetlists(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Setlists.ListForBand(r.Context(), chi.URLParam(r, "bandId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSetlistViews(result))
}

func (h *handler) createSetlist(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Visibility  string `json:"visibility"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.app.Setlists.Create(r.Context(), chi.URLParam(r, "bandId"), UserID(r.Context()), setlists.CreateInput{
		Title:       payload.Title,
		Description: payload.Description,
		Visibility:  payload.Visibility,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSetlistView(created))
}

func (h *handler) getSetlist(w http.ResponseWriter, r *http.Request) {
	sl, err := h.app.Setlists.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSetlistView(sl))
}

func (h *handler) listSongs(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Setlists.ListSongs(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSongViews(result))
}

func (h *handler) addSong(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title        string `json:"title"`
		Artist       string `json:"artist"`
		KeySignature string `json:"keySignature"`
		Tempo        *int   `json:"tempo"`
		Position     *int   `json:"position"`
		DurationSec  *int   `json:"durationSec"`
		Notes        string `json:"notes"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, err)
		return
	}

	song, err := h.app.Setlists.AddSong(r.Context(), chi.URLParam(r, "id"), setlists.SongInput{
		Title:        payload.Title,
		Artist:       payload.Artist,
		KeySignature: payload.KeySignature,
		Tempo:        payload.Tempo,
		Position:     payload.Position,
		DurationSec:  payload.DurationSec,
		Notes:        payload.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSongView(song))
}

func (h *handler) attachSetlist(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SetlistID string `json:"setlistId"`
		Position  *int   `json:"position"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, err)
		return
	}

	link, err := h.app.Setlists.AttachToEvent(r.Context(), chi.URLParam(r, "id"), setlists.AttachInput{
		SetlistID: payload.SetlistID,
		Position:  payload.Position,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEventLinkView(link))
}

// --- song ideas --------------------------------------------------------------

func (h *handler) listSongIdeas(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.SongIdeas.ListForBand(r.Context(), chi.URLParam(r, "bandId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSongIdeaViews(result))
}

func (h *handler) createSongIdea(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title  string   `json:"title"`
		Body   string   `json:"body"`
		Tags   []string `json:"tags"`
		Status string   `json:"status"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.app.SongIdeas.Create(r.Context(), chi.URLParam(r, "bandId"), UserID(r.Context()), songideas.CreateInput{
		Title:  payload.Title,
		Body:   payload.Body,
		Tags:   payload.Tags,
		Status: payload.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSongIdeaView(created))
}

func (h *handler) updateSongIdeaStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.app.SongIdeas.UpdateStatus(r.Context(), chi.URLParam(r, "id"), payload.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSongIdeaView(updated))
}

// --- earnings ----------------------------------------------------------------

func (h *handler) listEarnings(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Earnings.ListForBand(r.Context(), chi.URLParam(r, "bandId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEarningViews(result))
}

type splitPayload struct {
	MemberID string `json:"memberId"`
	Amount   string `json:"amount"`
	Status   string `json:"status"`
}

func (h *handler) createEarning(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		EventID     string         `json:"eventId"`
		TotalAmount string         `json:"totalAmount"`
		Currency    string         `json:"currency"`
		Description string         `json:"description"`
		PaidAt      string         `json:"paidAt"`
		Splits      []splitPayload `json:"splits"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, err)
		return
	}

	splits := make([]earnings.SplitInput, 0, len(payload.Splits))
	for _, sp := range payload.Splits {
		splits = append(splits, earnings.SplitInput(sp))
	}

	created, err := h.app.Earnings.Create(r.Context(), chi.URLParam(r, "bandId"), UserID(r.Context()), earnings.CreateInput{
		EventID:     payload.EventID,
		TotalAmount: payload.TotalAmount,
		Currency:    payload.Currency,
		Description: payload.Description,
		PaidAt:      payload.PaidAt,
		Splits:      splits,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEarningView(created))
}

func (h *handler) listSplits(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Earnings.ListSplits(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSplitViews(result))
}

func (h *handler) addSplit(w http.ResponseWriter, r *http.Request) {
	var payload splitPayload
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.app.Earnings.AddSplit(r.Context(), chi.URLParam(r, "id"), earnings.SplitInput(payload))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSplitView(created))
}

// --- notifications -----------------------------------------------------------

func (h *handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Notifications.ListForUser(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toNotificationViews(result))
}

func (h *handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	updated, err := h.app.Notifications.MarkRead(r.Context(), chi.URLParam(r, "id"), UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toNotificationView(updated))
}

// --- users -------------------------------------------------------------------

func (h *handler) me(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFrom(r.Context())
	u, err := h.app.Users.GetOrCreate(r.Context(), users.UpsertInput{
		ID:          identity.UserID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserView(u))
}
