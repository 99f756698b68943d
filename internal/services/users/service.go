// Package users manages application accounts synced from the identity
// provider.
package users

import (
	"context"

	"github.com/chordline/backend/internal/apperr"
	"github.com/chordline/backend/internal/domain/user"
	"github.com/chordline/backend/internal/metrics"
	"github.com/chordline/backend/internal/storage"
	"github.com/chordline/backend/pkg/logger"
)

// Service manages user accounts.
type Service struct {
	store storage.UserStore
	log   *logger.Logger
}

// New constructs a user service.
func New(store storage.UserStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("users")
	}
	return &Service{store: store, log: log}
}

// UpsertInput carries the identity-provider view of a user. Empty
// fields mean "not supplied" and never overwrite stored values.
type UpsertInput struct {
	ID           string
	ClerkUserID  string
	Email        string
	DisplayName  string
	AvatarURL    string
	Instrument   string
	PrimaryGenre string
	City         string
	Country      string
}

// GetOrCreate upserts a user keyed by id. The first call creates the
// account, synthesizing a placeholder email when none is supplied;
// later calls update only the supplied fields.
func (s *Service) GetOrCreate(ctx context.Context, in UpsertInput) (user.User, error) {
	if in.ID == "" {
		return user.User{}, apperr.Validation("id is required")
	}

	u, err := s.store.UpsertUser(ctx, user.User{
		ID:           in.ID,
		ClerkUserID:  in.ClerkUserID,
		Email:        in.Email,
		DisplayName:  in.DisplayName,
		AvatarURL:    in.AvatarURL,
		Instrument:   in.Instrument,
		PrimaryGenre: in.PrimaryGenre,
		City:         in.City,
		Country:      in.Country,
	})
	if err != nil {
		return user.User{}, err
	}

	metrics.RecordEntityWrite("user", "upsert")
	return u, nil
}
