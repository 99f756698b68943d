package event

import "time"

// Type classifies an event.
type Type string

const (
	TypeShow      Type = "SHOW"
	TypeRehearsal Type = "REHEARSAL"
	TypeMeeting   Type = "MEETING"
	TypeOther     Type = "OTHER"
)

// Status is the publication state of an event.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusCancelled Status = "CANCELLED"
)

// Event is a scheduled band activity. VenueID may reference a venue by id;
// the reference is not validated at creation time.
type Event struct {
	ID           string
	BandID       string
	CreatedByID  string
	Title        string
	Description  string
	Type         Type
	Status       Status
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
	StartsAt     time.Time
	EndsAt       time.Time
	DoorTime     time.Time
	RSVPDeadline time.Time
	Notes        string
	CancelledAt  time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
