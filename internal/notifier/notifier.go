package notifier

import (
	"context"
	"log/slog"

	"github.com/zamirguliyev/e-commerce-api/internal/domain"
	"github.com/zamirguliyev/e-commerce-api/internal/event"
)

// Notifier dispatches account notifications. Delivery is best-effort:
// callers log failures and never propagate them as lifecycle errors.
type Notifier interface {
	// SendWelcome dispatches a welcome notification to a newly registered user.
	SendWelcome(ctx context.Context, user *domain.User) error

	// SendPasswordReset dispatches a password reset code to the user.
	SendPasswordReset(ctx context.Context, user *domain.User, code string) error
}

// EventNotifier implements Notifier by publishing events to Kafka, where an
// external notification worker picks them up for delivery.
type EventNotifier struct {
	producer *event.Producer
}

// NewEventNotifier creates a Kafka-event-backed notifier.
func NewEventNotifier(producer *event.Producer) *EventNotifier {
	return &EventNotifier{producer: producer}
}

// SendWelcome publishes a user.registered event.
func (n *EventNotifier) SendWelcome(ctx context.Context, user *domain.User) error {
	return n.producer.PublishUserRegistered(ctx, user)
}

// SendPasswordReset publishes a user.password_reset event carrying the code.
func (n *EventNotifier) SendPasswordReset(ctx context.Context, user *domain.User, code string) error {
	return n.producer.PublishUserPasswordReset(ctx, user.ID, user.Email, code)
}

// LogNotifier implements Notifier by logging the notification. Used in
// development and tests where no broker is available.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a logging notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// SendWelcome logs the welcome notification.
func (n *LogNotifier) SendWelcome(ctx context.Context, user *domain.User) error {
	n.logger.InfoContext(ctx, "welcome notification",
		slog.String("email", user.Email),
		slog.String("name", user.Name),
	)
	return nil
}

// SendPasswordReset logs the reset notification. The code itself is not
// logged.
func (n *LogNotifier) SendPasswordReset(ctx context.Context, user *domain.User, _ string) error {
	n.logger.InfoContext(ctx, "password reset notification",
		slog.String("email", user.Email),
	)
	return nil
}
