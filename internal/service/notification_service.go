package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/carenotes/internal/config"
	"github.com/spec-kit/carenotes/internal/events"
)

// NotificationService turns domain events into outbound notifications.
// Email and webhook delivery are stubbed: payloads are logged with the
// configured destination until a provider is wired up.
type NotificationService struct {
	cfg    config.NotificationConfig
	logger *zap.Logger
}

// NewNotificationService constructs the service.
func NewNotificationService(cfg config.NotificationConfig, logger *zap.Logger) *NotificationService {
	return &NotificationService{cfg: cfg, logger: logger}
}

// HandleEvent dispatches a single event to the delivery stubs.
func (s *NotificationService) HandleEvent(ctx context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("subject_id", event.SubjectID),
	}
	if event.Actor.StaffID != nil {
		fields = append(fields, zap.String("actor_staff_id", *event.Actor.StaffID))
	}

	switch event.Type {
	case events.EventPlacementCreated, events.EventPlacementStatusChanged:
		s.sendEmail(event, fields)
		s.sendWebhook(event, fields)
	case events.EventPlacementMatched:
		s.sendWebhook(event, fields)
	case events.EventTimeOffDecided, events.EventShiftSwapDecided:
		s.sendEmail(event, fields)
	case events.EventMedicationRecorded, events.EventPocketMoneyDisbursed:
		s.sendWebhook(event, fields)
	default:
		s.logger.Debug("no notification route for event", fields...)
	}
	return nil
}

func (s *NotificationService) sendEmail(event events.Event, fields []zap.Field) {
	s.logger.Info("notification email queued",
		append(fields, zap.String("from", s.cfg.EmailFrom))...)
}

func (s *NotificationService) sendWebhook(event events.Event, fields []zap.Field) {
	if s.cfg.WebhookURL == "" {
		s.logger.Debug("webhook url not configured, skipping", fields...)
		return
	}
	s.logger.Info("notification webhook queued",
		append(fields, zap.String("url", s.cfg.WebhookURL))...)
}
