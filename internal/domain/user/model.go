package user

import "time"

// User is an application account keyed by the identity provider's
// subject id. Email is unique and defaults to a synthesized placeholder
// when the provider supplies none.
type User struct {
	ID           string
	ClerkUserID  string
	Email        string
	DisplayName  string
	AvatarURL    string
	Instrument   string
	PrimaryGenre string
	City         string
	Country      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
