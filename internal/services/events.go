package services

import (
	"context"

	"go.uber.org/zap"
)

// Routing keys of the domain events published after successful writes.
const (
	EventUserRegistered = "user.registered"
	EventRecipeCreated  = "recipe.created"
)

// EventPublisher delivers domain events to the notification collaborator.
// A nil publisher disables events.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// publish runs after the write committed, so a delivery failure is logged
// and never returned to the caller.
func publish(ctx context.Context, p EventPublisher, logger *zap.Logger, key string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, key, payload); err != nil {
		logger.Warn("failed to publish event", zap.String("routing_key", key), zap.Error(err))
	}
}
