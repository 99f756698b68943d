package earning

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitStatus is the payout state of a single split.
type SplitStatus string

const (
	SplitPending  SplitStatus = "PENDING"
	SplitPaid     SplitStatus = "PAID"
	SplitCanceled SplitStatus = "CANCELED"
)

// Earning is a recorded payout for a band, optionally tied to an event.
// TotalAmount is exact decimal; it is never represented as a binary
// float anywhere in the system.
type Earning struct {
	ID           string
	BandID       string
	EventID      string
	RecordedByID string
	TotalAmount  decimal.Decimal
	Currency     string
	Description  string
	PaidAt       time.Time
	Splits       []Split
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Split allocates part of an earning to a band member. The sum of split
// amounts is intentionally not reconciled against the earning total.
type Split struct {
	ID        string
	EarningID string
	MemberID  string
	Amount    decimal.Decimal
	Status    SplitStatus
	PaidAt    time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
