package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/smart-entry/visitor-service/internal/events"
)

// NotificationService emits host notifications for visit lifecycle events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventVisitCreated, n.handleVisitCreated)
	n.dispatcher.Subscribe(events.EventVisitorCheckedIn, n.handleVisitorCheckedIn)
	n.dispatcher.Subscribe(events.EventVisitorCheckedOut, n.handleVisitorCheckedOut)
	n.dispatcher.Subscribe(events.EventVisitCancelled, n.handleVisitCancelled)
}

func (n *NotificationService) handleVisitCreated(_ context.Context, event events.Event) error {
	n.logger.Info("VisitCreated", zap.Int64("visit_id", event.VisitID), zap.Any("payload", event.Payload))
	return nil
}

// handleVisitorCheckedIn is where the host gets told their visitor arrived.
func (n *NotificationService) handleVisitorCheckedIn(_ context.Context, event events.Event) error {
	n.logger.Info("VisitorCheckedIn", zap.Int64("visit_id", event.VisitID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleVisitorCheckedOut(_ context.Context, event events.Event) error {
	n.logger.Info("VisitorCheckedOut", zap.Int64("visit_id", event.VisitID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleVisitCancelled(_ context.Context, event events.Event) error {
	n.logger.Info("VisitCancelled", zap.Int64("visit_id", event.VisitID), zap.Any("payload", event.Payload))
	return nil
}
