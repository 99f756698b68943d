package setlist

import "time"

// Visibility controls who can see a setlist.
type Visibility string

const (
	VisibilityPrivate Visibility = "PRIVATE"
	VisibilityBand    Visibility = "BAND"
	VisibilityPublic  Visibility = "PUBLIC"
)

// Setlist is an ordered performance program owned by a band.
type Setlist struct {
	ID          string
	BandID      string
	CreatedByID string
	Title       string
	Description string
	Visibility  Visibility
	ArchivedAt  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Song is one entry in a setlist. Position is zero-based; when a song is
// added without an explicit position it is appended at the current count.
// Positions are not recomputed afterwards.
type Song struct {
	ID           string
	SetlistID    string
	Title        string
	Artist       string
	KeySignature string
	Tempo        *int
	Position     int
	DurationSec  *int
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EventLink associates a setlist with an event at a display position.
// At most one link exists per (EventID, SetlistID) pair; attaching again
// updates the position of the existing link.
type EventLink struct {
	ID        string
	EventID   string
	SetlistID string
	Position  int
}
