package notification

import "time"

// Notification is a message addressed to a single user. ReadAt is set
// once on first mark-read and never changed afterwards.
type Notification struct {
	ID          string
	RecipientID string
	Type        string
	Title       string
	Body        string
	Payload     map[string]any
	ReadAt      time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
