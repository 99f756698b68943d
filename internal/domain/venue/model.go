package venue

import "time"

// Venue is a performance location owned by a single band. Address and
// geo fields are all optional; PlaceID carries an external map provider
// reference when present.
type Venue struct {
	ID           string
	BandID       string
	Name         string
	Description  string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
	Latitude     *float64
	Longitude    *float64
	PlaceID      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
