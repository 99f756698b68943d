package songidea

import "time"

// Status is the lifecycle state of a song idea. Any transition is
// permitted; SharedAt is stamped the first time the status becomes
// SHARED and is never cleared afterwards.
type Status string

const (
	StatusDraft    Status = "DRAFT"
	StatusShared   Status = "SHARED"
	StatusArchived Status = "ARCHIVED"
)

// Idea is a captured creative fragment belonging to a band.
type Idea struct {
	ID        string
	BandID    string
	AuthorID  string
	Title     string
	Body      string
	Tags      []string
	Status    Status
	SharedAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
