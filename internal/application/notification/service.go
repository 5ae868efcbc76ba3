package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	domain "github.com/campus-hub/campus-hub/internal/domain/notification"
	"github.com/campus-hub/campus-hub/internal/infrastructure/email"
)

// Service creates in-portal notifications and mirrors high-priority ones to
// e-mail when a sender is configured.
type Service struct {
	repo   domain.Repository
	sender email.Sender
	logger zerolog.Logger
}

func NewService(repo domain.Repository, sender email.Sender, logger zerolog.Logger) *Service {
	if sender == nil {
		sender = email.NopSender{}
	}
	return &Service{
		repo:   repo,
		sender: sender,
		logger: logger.With().Str("service", "notification").Logger(),
	}
}

// Notify stores a notification. Failure to notify is logged, never fatal to
// the caller's operation.
func (s *Service) Notify(ctx context.Context, userID uuid.UUID, typ domain.Type, title, message string, priority domain.Priority) {
	n := domain.New(userID, typ, title, message, priority)
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("store notification")
	}
}

// NotifyWithEmail stores a notification and sends it to the user's mailbox.
func (s *Service) NotifyWithEmail(ctx context.Context, userID uuid.UUID, name, addr string, typ domain.Type, title, message string, priority domain.Priority) {
	s.Notify(ctx, userID, typ, title, message, priority)
	if err := s.sender.Send(name, addr, title, message); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("send notification email")
	}
}

func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *Service) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	return s.repo.MarkRead(ctx, notificationID, userID)
}

func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}
