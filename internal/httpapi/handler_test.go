package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chordline/backend/internal/app"
	"github.com/chordline/backend/internal/services/notifications"
)

const testSecret = "test-secret"

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	application := app.New(app.Stores{}, nil)
	return NewHandler(application, Options{
		Auth: NewAuthenticator(testSecret, nil),
	})
}

func mintToken(t *testing.T, sub, email, name string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	if email != "" {
		claims["email"] = email
	}
	if name != "" {
		claims["name"] = name
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func doRequest(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestHandler_Health(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_AuthRequired(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/v1/bands", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = doRequest(t, h, http.MethodGet, "/v1/bands", "not-a-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", rec.Code)
	}

	wrong, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"}).
		SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	rec = doRequest(t, h, http.MethodGet, "/v1/bands", wrong, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong signature, got %d", rec.Code)
	}
}

func TestHandler_BandLifecycle(t *testing.T) {
	h := newTestHandler(t)
	token := mintToken(t, "user-1", "", "")

	rec := doRequest(t, h, http.MethodPost, "/v1/bands", token, `{"name":"The Vipers","genre":"rock"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Description *string `json:"description"`
		Status      string  `json:"status"`
	}
	decodeBody(t, rec, &created)
	if created.ID == "" || created.Name != "The Vipers" || created.Status != "ACTIVE" {
		t.Fatalf("unexpected band payload: %s", rec.Body.String())
	}
	if created.Description != nil {
		t.Fatalf("expected null description, got %v", *created.Description)
	}
	if !strings.Contains(rec.Body.String(), `"description":null`) {
		t.Fatalf("expected explicit null description in %s", rec.Body.String())
	}

	rec = doRequest(t, h, http.MethodGet, "/v1/bands", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list []map[string]any
	decodeBody(t, rec, &list)
	if len(list) != 1 {
		t.Fatalf("expected one band, got %d", len(list))
	}

	rec = doRequest(t, h, http.MethodGet, "/v1/bands/"+created.ID+"/members", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var members []struct {
		UserID string `json:"userId"`
		Role   string `json:"role"`
	}
	decodeBody(t, rec, &members)
	if len(members) != 1 || members[0].UserID != "user-1" || members[0].Role != "LEADER" {
		t.Fatalf("expected creator as LEADER member, got %s", rec.Body.String())
	}

	// Another user does not see the band.
	other := mintToken(t, "user-2", "", "")
	rec = doRequest(t, h, http.MethodGet, "/v1/bands", other, "")
	decodeBody(t, rec, &list)
	if len(list) != 0 {
		t.Fatalf("expected no bands for another user, got %d", len(list))
	}
}

func TestHandler_ValidationAndNotFound(t *testing.T) {
	h := newTestHandler(t)
	token := mintToken(t, "user-1", "", "")

	rec := doRequest(t, h, http.MethodPost, "/v1/bands", token, `{"name":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty name, got %d", rec.Code)
	}

	rec = doRequest(t, h, http.MethodGet, "/v1/setlists/missing", token, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing setlist, got %d", rec.Code)
	}

	// Listing under an unknown band is empty, never 404.
	rec = doRequest(t, h, http.MethodGet, "/v1/bands/nope/venues", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty list, got %d", rec.Code)
	}
	var list []any
	decodeBody(t, rec, &list)
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
}

func TestHandler_EventCreation(t *testing.T) {
	h := newTestHandler(t)
	token := mintToken(t, "user-1", "", "")

	rec := doRequest(t, h, http.MethodPost, "/v1/bands/band-1/events", token,
		`{"title":"Friday Show","startsAt":"2026-09-18T20:00:00Z"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Type     string  `json:"type"`
		Status   string  `json:"status"`
		StartsAt string  `json:"startsAt"`
		EndsAt   *string `json:"endsAt"`
	}
	decodeBody(t, rec, &created)
	if created.Type != "SHOW" || created.Status != "DRAFT" {
		t.Fatalf("expected SHOW/DRAFT defaults, got %s/%s", created.Type, created.Status)
	}
	if created.StartsAt != "2026-09-18T20:00:00Z" {
		t.Fatalf("expected RFC 3339 startsAt, got %q", created.StartsAt)
	}
	if created.EndsAt != nil {
		t.Fatalf("expected null endsAt, got %v", *created.EndsAt)
	}

	rec = doRequest(t, h, http.MethodPost, "/v1/bands/band-1/events", token,
		`{"title":"Bad","startsAt":"tomorrow"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unparsable instant, got %d", rec.Code)
	}
}

func TestHandler_SetlistSongsAndAttach(t *testing.T) {
	h := newTestHandler(t)
	token := mintToken(t, "user-1", "", "")

	rec := doRequest(t, h, http.MethodPost, "/v1/bands/band-1/setlists", token, `{"title":"Main Set"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var sl struct {
		ID         string `json:"id"`
		Visibility string `json:"visibility"`
	}
	decodeBody(t, rec, &sl)
	if sl.Visibility != "BAND" {
		t.Fatalf("expected default visibility BAND, got %s", sl.Visibility)
	}

	for i, title := range []string{"Opener", "Closer"} {
		rec = doRequest(t, h, http.MethodPost, "/v1/setlists/"+sl.ID+"/songs", token, `{"title":"`+title+`"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 adding %s, got %d", title, rec.Code)
		}
		var song struct {
			Position int `json:"position"`
		}
		decodeBody(t, rec, &song)
		if song.Position != i {
			t.Fatalf("expected position %d for %s, got %d", i, title, song.Position)
		}
	}

	// Attaching the same pair twice updates the position in place.
	rec = doRequest(t, h, http.MethodPost, "/v1/events/event-1/setlists", token, `{"setlistId":"`+sl.ID+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var first struct {
		ID       string `json:"id"`
		Position int    `json:"position"`
	}
	decodeBody(t, rec, &first)

	rec = doRequest(t, h, http.MethodPost, "/v1/events/event-1/setlists", token, `{"setlistId":"`+sl.ID+`","position":5}`)
	var second struct {
		ID       string `json:"id"`
		Position int    `json:"position"`
	}
	decodeBody(t, rec, &second)
	if second.ID != first.ID || second.Position != 5 {
		t.Fatalf("expected upsert of the same link with position 5, got %+v", second)
	}
}

func TestHandler_SongIdeaStatus(t *testing.T) {
	h := newTestHandler(t)
	token := mintToken(t, "user-1", "", "")

	rec := doRequest(t, h, http.MethodPost, "/v1/bands/band-1/song-ideas", token,
		`{"title":"Riff in E","body":"open string chug","tags":["metal"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var idea struct {
		ID       string  `json:"id"`
		Status   string  `json:"status"`
		SharedAt *string `json:"sharedAt"`
	}
	decodeBody(t, rec, &idea)
	if idea.Status != "DRAFT" || idea.SharedAt != nil {
		t.Fatalf("expected unshared draft, got %s", rec.Body.String())
	}

	rec = doRequest(t, h, http.MethodPatch, "/v1/song-ideas/"+idea.ID+"/status", token, `{"status":"SHARED"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	decodeBody(t, rec, &idea)
	if idea.SharedAt == nil {
		t.Fatalf("expected sharedAt stamped, got %s", rec.Body.String())
	}

	rec = doRequest(t, h, http.MethodPatch, "/v1/song-ideas/missing/status", token, `{"status":"SHARED"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandler_EarningsMoneySerialization(t *testing.T) {
	h := newTestHandler(t)
	token := mintToken(t, "user-1", "", "")

	rec := doRequest(t, h, http.MethodPost, "/v1/bands/band-1/earnings", token,
		`{"totalAmount":"150","splits":[{"memberId":"member-1","amount":"75.5"}]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID          string `json:"id"`
		TotalAmount string `json:"totalAmount"`
		Currency    string `json:"currency"`
		Splits      []struct {
			Amount string `json:"amount"`
		} `json:"splits"`
	}
	decodeBody(t, rec, &created)
	if created.TotalAmount != "150.00" {
		t.Fatalf("expected fixed-2 total 150.00, got %q", created.TotalAmount)
	}
	if created.Currency != "USD" {
		t.Fatalf("expected default currency USD, got %q", created.Currency)
	}
	if len(created.Splits) != 1 || created.Splits[0].Amount != "75.50" {
		t.Fatalf("expected fixed-2 split amount 75.50, got %s", rec.Body.String())
	}

	rec = doRequest(t, h, http.MethodPost, "/v1/earnings/missing/splits", token,
		`{"memberId":"member-1","amount":"10.00"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing earning, got %d", rec.Code)
	}
}

func TestHandler_UsersMe(t *testing.T) {
	h := newTestHandler(t)
	token := mintToken(t, "user-1", "ana@example.com", "Ana")

	rec := doRequest(t, h, http.MethodGet, "/v1/users/me", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var u struct {
		ID          string  `json:"id"`
		Email       string  `json:"email"`
		DisplayName *string `json:"displayName"`
	}
	decodeBody(t, rec, &u)
	if u.ID != "user-1" || u.Email != "ana@example.com" {
		t.Fatalf("unexpected user payload: %s", rec.Body.String())
	}
	if u.DisplayName == nil || *u.DisplayName != "Ana" {
		t.Fatalf("expected display name from token, got %s", rec.Body.String())
	}

	// A token without profile claims synthesizes a placeholder email.
	bare := mintToken(t, "user-9", "", "")
	rec = doRequest(t, h, http.MethodGet, "/v1/users/me", bare, "")
	decodeBody(t, rec, &u)
	if u.Email != "user-9@chordline.local" {
		t.Fatalf("expected placeholder email, got %q", u.Email)
	}
}

func TestHandler_NotificationsMarkRead(t *testing.T) {
	application := app.New(app.Stores{}, nil)
	h := NewHandler(application, Options{Auth: NewAuthenticator(testSecret, nil)})
	token := mintToken(t, "user-1", "", "")

	created, err := application.Notifications.Create(context.Background(), notifications.CreateInput{
		RecipientID: "user-1",
		Type:        "EVENT_CREATED",
		Title:       "New show",
		Body:        "Friday Show was scheduled",
	})
	if err != nil {
		t.Fatalf("seed notification: %v", err)
	}

	rec := doRequest(t, h, http.MethodGet, "/v1/notifications", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list []struct {
		ID     string  `json:"id"`
		ReadAt *string `json:"readAt"`
	}
	decodeBody(t, rec, &list)
	if len(list) != 1 || list[0].ReadAt != nil {
		t.Fatalf("expected one unread notification, got %s", rec.Body.String())
	}

	rec = doRequest(t, h, http.MethodPost, "/v1/notifications/"+created.ID+"/read", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var marked struct {
		ReadAt *string `json:"readAt"`
	}
	decodeBody(t, rec, &marked)
	if marked.ReadAt == nil {
		t.Fatalf("expected readAt stamped, got %s", rec.Body.String())
	}

	// Another user cannot mark it.
	other := mintToken(t, "user-2", "", "")
	rec = doRequest(t, h, http.MethodPost, "/v1/notifications/"+created.ID+"/read", other, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrong recipient, got %d", rec.Code)
	}
}
