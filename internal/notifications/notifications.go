// Package notifications consumes domain events and hands them to the
// delivery collaborator.
package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"resep/internal/services"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// UserRegistered is the payload of a user.registered event.
type UserRegistered struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// RecipeCreated is the payload of a recipe.created event.
type RecipeCreated struct {
	RecipeID uint   `json:"recipe_id"`
	OwnerID  string `json:"owner_id"`
	Name     string `json:"name"`
}

// Notifier delivers notifications to users.
type Notifier interface {
	Welcome(ctx context.Context, evt UserRegistered) error
}

// LogNotifier writes notifications to the log instead of delivering them.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Welcome logs the welcome message for a new user.
func (n *LogNotifier) Welcome(_ context.Context, evt UserRegistered) error {
	n.logger.Info("welcome notification",
		zap.String("user_id", evt.UserID),
		zap.String("email", evt.Email))
	return nil
}

// Handler dispatches deliveries by routing key.
type Handler struct {
	notifier Notifier
	logger   *zap.Logger
}

// NewHandler creates a new Handler.
func NewHandler(notifier Notifier, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		notifier: notifier,
		logger:   logger.Named("notifications"),
	}
}

// Handle processes one event. A malformed payload is an error so the
// delivery is rejected; unknown routing keys are skipped.
func (h *Handler) Handle(ctx context.Context, routingKey string, body []byte) error {
	switch routingKey {
	case services.EventUserRegistered:
		var evt UserRegistered
		if err := decode(body, &evt); err != nil {
			return err
		}
		if evt.Email == "" {
			return errors.New("user.registered event without email")
		}
		if err := h.notifier.Welcome(ctx, evt); err != nil {
			return fmt.Errorf("failed to send welcome to %s: %w", evt.UserID, err)
		}
	case services.EventRecipeCreated:
		var evt RecipeCreated
		if err := decode(body, &evt); err != nil {
			return err
		}
		h.logger.Debug("recipe created", zap.Uint("recipe_id", evt.RecipeID), zap.String("owner_id", evt.OwnerID))
	default:
		h.logger.Debug("skipping event", zap.String("routing_key", routingKey))
	}
	return nil
}

// Delivery adapts Handle to the RabbitMQ consumer callback.
func (h *Handler) Delivery(ctx context.Context) func(amqp.Delivery) error {
	return func(d amqp.Delivery) error {
		return h.Handle(ctx, d.RoutingKey, d.Body)
	}
}

func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode event: %w", err)
	}
	return nil
}
