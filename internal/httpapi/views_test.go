package httpapi

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chordline/backend/internal/domain/earning"
	"github.com/chordline/backend/internal/domain/event"
	"github.com/chordline/backend/internal/domain/songidea"
)

func TestEventViewExplicitNulls(t *testing.T) {
	e := event.Event{
		ID:          "event-1",
		BandID:      "band-1",
		CreatedByID: "user-1",
		Title:       "Show",
		Type:        event.TypeShow,
		Status:      event.StatusDraft,
		StartsAt:    time.Date(2026, 9, 18, 20, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(toEventView(e))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "2026-09-18T20:00:00Z", decoded["startsAt"])
	for _, key := range []string{"endsAt", "doorTime", "rsvpDeadline", "venueId", "notes", "cancelledAt", "latitude", "description"} {
		v, ok := decoded[key]
		require.True(t, ok, "key %s must be present", key)
		assert.Nil(t, v, "key %s must be an explicit null", key)
	}
}

func TestEarningViewFixedTwoDecimals(t *testing.T) {
	e := earning.Earning{
		ID:           "earning-1",
		BandID:       "band-1",
		RecordedByID: "user-1",
		TotalAmount:  decimal.RequireFromString("150"),
		Currency:     "USD",
		Splits: []earning.Split{
			{ID: "split-1", EarningID: "earning-1", MemberID: "m1", Amount: decimal.RequireFromString("75.5"), Status: earning.SplitPending},
		},
	}

	view := toEarningView(e)
	assert.Equal(t, "150.00", view.TotalAmount)
	require.Len(t, view.Splits, 1)
	assert.Equal(t, "75.50", view.Splits[0].Amount)
	assert.Nil(t, view.EventID)
	assert.Nil(t, view.PaidAt)
}

func TestEarningViewEmptySplitsSerializesAsArray(t *testing.T) {
	raw, err := json.Marshal(toEarningView(earning.Earning{TotalAmount: decimal.Zero}))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"splits":[]`)
}

func TestSongIdeaViewTagsNeverNull(t *testing.T) {
	raw, err := json.Marshal(toSongIdeaView(songidea.Idea{ID: "idea-1", Status: songidea.StatusDraft}))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"tags":[]`)
	assert.Contains(t, string(raw), `"sharedAt":null`)
}
