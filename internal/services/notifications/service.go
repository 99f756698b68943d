// Package notifications manages per-user notification records.
package notifications

import (
	"context"
	"errors"
	"strings"

	"github.com/chordline/backend/internal/apperr"
	"github.com/chordline/backend/internal/domain/notification"
	"github.com/chordline/backend/internal/metrics"
	"github.com/chordline/backend/internal/storage"
	"github.com/chordline/backend/pkg/logger"
)

// Service manages notifications.
type Service struct {
	store storage.NotificationStore
	log   *logger.Logger
}

// New constructs a notification service.
func New(store storage.NotificationStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("notifications")
	}
	return &Service{store: store, log: log}
}

// CreateInput carries an internally produced notification. There is no
// HTTP route for creation; other services call this directly.
type CreateInput struct {
	RecipientID string
	Type        string
	Title       string
	Body        string
	Payload     map[string]any
}

// Create stores a notification for a recipient.
func (s *Service) Create(ctx context.Context, in CreateInput) (notification.Notification, error) {
	if in.RecipientID == "" {
		return notification.Notification{}, apperr.Validation("recipientId is required")
	}
	if strings.TrimSpace(in.Type) == "" {
		return notification.Notification{}, apperr.Validation("type is required")
	}

	created, err := s.store.CreateNotification(ctx, notification.Notification{
		RecipientID: in.RecipientID,
		Type:        in.Type,
		Title:       in.Title,
		Body:        in.Body,
		Payload:     in.Payload,
	})
	if err != nil {
		return notification.Notification{}, err
	}

	metrics.RecordEntityWrite("notification", "create")
	return created, nil
}

// ListForUser returns up to 100 most recent notifications for userID.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]notification.Notification, error) {
	return s.store.ListNotificationsForUser(ctx, userID)
}

// MarkRead stamps readAt on a notification owned by userID. Repeat
// calls return the row unchanged. A notification belonging to another
// recipient reports NotFound.
func (s *Service) MarkRead(ctx context.Context, id, userID string) (notification.Notification, error) {
	updated, err := s.store.MarkNotificationRead(ctx, id, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return notification.Notification{}, apperr.NotFound("notification %s not found", id)
	}
	if err != nil {
		return notification.Notification{}, err
	}

	metrics.RecordEntityWrite("notification", "mark_read")
	return updated, nil
}
