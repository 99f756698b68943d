// Package earnings manages recorded payouts and their member splits.
// All monetary values are exact decimals; binary floats never touch
// an amount.
package earnings

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chordline/backend/internal/apperr"
	"github.com/chordline/backend/internal/domain/earning"
	"github.com/chordline/backend/internal/metrics"
	"github.com/chordline/backend/internal/storage"
	"github.com/chordline/backend/pkg/logger"
)

// Service manages earnings and splits.
type Service struct {
	store storage.EarningStore
	log   *logger.Logger
}

// New constructs an earnings service.
func New(store storage.EarningStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("earnings")
	}
	return &Service{store: store, log: log}
}

var validSplitStatuses = map[earning.SplitStatus]bool{
	earning.SplitPending:  true,
	earning.SplitPaid:     true,
	earning.SplitCanceled: true,
}

// SplitInput carries one caller-supplied split. Amount is a decimal
// string.
type SplitInput struct {
	MemberID string
	Amount   string
	Status   string
}

// CreateInput carries the caller-supplied earning fields. TotalAmount
// is a required decimal string; PaidAt an optional RFC 3339 instant.
type CreateInput struct {
	EventID     string
	TotalAmount string
	Currency    string
	Description string
	PaidAt      string
	Splits      []SplitInput
}

// Create records an earning for bandID together with its splits, all in
// one transaction. The sum of split amounts is not reconciled against
// the total.
func (s *Service) Create(ctx context.Context, bandID, userID string, in CreateInput) (earning.Earning, error) {
	total, err := parseAmount("totalAmount", in.TotalAmount, true)
	if err != nil {
		return earning.Earning{}, err
	}

	var paidAt time.Time
	if in.PaidAt != "" {
		paidAt, err = time.Parse(time.RFC3339, in.PaidAt)
		if err != nil {
			return earning.Earning{}, apperr.Validation("paidAt must be an RFC 3339 instant")
		}
		paidAt = paidAt.UTC()
	}

	splits := make([]earning.Split, 0, len(in.Splits))
	for _, sp := range in.Splits {
		parsed, err := buildSplit(sp)
		if err != nil {
			return earning.Earning{}, err
		}
		splits = append(splits, parsed)
	}

	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}

	created, err := s.store.CreateEarning(ctx, earning.Earning{
		BandID:       bandID,
		EventID:      in.EventID,
		RecordedByID: userID,
		TotalAmount:  total,
		Currency:     currency,
		Description:  in.Description,
		PaidAt:       paidAt,
		Splits:       splits,
	})
	if err != nil {
		return earning.Earning{}, err
	}

	metrics.RecordEntityWrite("earning", "create")
	s.log.WithField("earning_id", created.ID).
		WithField("band_id", bandID).
		WithField("total_amount", created.TotalAmount.StringFixed(2)).
		Info("earning recorded")
	return created, nil
}

// ListForBand returns the earnings of a band, most recent first.
func (s *Service) ListForBand(ctx context.Context, bandID string) ([]earning.Earning, error) {
	return s.store.ListEarningsForBand(ctx, bandID)
}

// ListSplits returns the splits of an earning, oldest first.
func (s *Service) ListSplits(ctx context.Context, earningID string) ([]earning.Split, error) {
	return s.store.ListSplits(ctx, earningID)
}

// AddSplit records one additional split against an existing earning.
func (s *Service) AddSplit(ctx context.Context, earningID string, in SplitInput) (earning.Split, error) {
	sp, err := buildSplit(in)
	if err != nil {
		return earning.Split{}, err
	}
	sp.EarningID = earningID

	created, err := s.store.AddSplit(ctx, sp)
	if errors.Is(err, storage.ErrNotFound) {
		return earning.Split{}, apperr.NotFound("earning %s not found", earningID)
	}
	if err != nil {
		return earning.Split{}, err
	}

	metrics.RecordEntityWrite("earning_split", "create")
	s.log.WithField("split_id", created.ID).
		WithField("earning_id", earningID).
		Info("split added")
	return created, nil
}

func buildSplit(in SplitInput) (earning.Split, error) {
	if in.MemberID == "" {
		return earning.Split{}, apperr.Validation("memberId is required")
	}
	amount, err := parseAmount("amount", in.Amount, true)
	if err != nil {
		return earning.Split{}, err
	}
	status := earning.SplitStatus(in.Status)
	if status == "" {
		status = earning.SplitPending
	}
	if !validSplitStatuses[status] {
		return earning.Split{}, apperr.Validation("unsupported split status %q", in.Status)
	}
	return earning.Split{MemberID: in.MemberID, Amount: amount, Status: status}, nil
}

func parseAmount(field, value string, required bool) (decimal.Decimal, error) {
	if value == "" {
		if required {
			return decimal.Decimal{}, apperr.Validation("%s is required", field)
		}
		return decimal.Decimal{}, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, apperr.Validation("%s must be a decimal string", field)
	}
	return d, nil
}
