package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zamirguliyev/e-commerce-api/internal/domain"
	pkgkafka "github.com/zamirguliyev/e-commerce-api/pkg/kafka"
)

// Kafka topic constants for domain events.
const (
	TopicUserRegistered    = "shop.user.registered"
	TopicUserPasswordReset = "shop.user.password_reset"
	TopicProductCreated    = "shop.product.created"
	TopicProductDeleted    = "shop.product.deleted"
)

// Aggregate type constants.
const (
	AggregateTypeUser    = "user"
	AggregateTypeProduct = "product"
)

// Source identifier for events originating from this service.
const Source = "e-commerce-api"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Username string `json:"username"`
}

// UserPasswordResetData is the payload for a user.password_reset event.
// The reset code rides in the event so the notification worker can deliver it.
type UserPasswordResetData struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Code   string `json:"code"`
}

// ProductChangedData is the payload for product.created and product.deleted events.
type ProductChangedData struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id,omitempty"`
}

// Producer publishes domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer. A nil kafka producer makes
// every publish a no-op, which is how the service runs with Kafka disabled.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	if p.kafka == nil {
		return nil
	}

	data := UserRegisteredData{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Surname:  user.Surname,
		Username: user.Username,
	}

	event, err := pkgkafka.NewEvent(TopicUserRegistered, user.ID, AggregateTypeUser, Source, data)
	if err != nil {
		return fmt.Errorf("create user.registered event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserRegistered, event); err != nil {
		return fmt.Errorf("publish user.registered event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.registered event",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return nil
}

// PublishUserPasswordReset publishes a user.password_reset event.
func (p *Producer) PublishUserPasswordReset(ctx context.Context, userID, email, code string) error {
	if p.kafka == nil {
		return nil
	}

	data := UserPasswordResetData{
		UserID: userID,
		Email:  email,
		Code:   code,
	}

	event, err := pkgkafka.NewEvent(TopicUserPasswordReset, userID, AggregateTypeUser, Source, data)
	if err != nil {
		return fmt.Errorf("create user.password_reset event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserPasswordReset, event); err != nil {
		return fmt.Errorf("publish user.password_reset event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.password_reset event",
		slog.String("user_id", userID),
	)

	return nil
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	return p.publishProductEvent(ctx, TopicProductCreated, product)
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Producer) PublishProductDeleted(ctx context.Context, product *domain.Product) error {
	return p.publishProductEvent(ctx, TopicProductDeleted, product)
}

func (p *Producer) publishProductEvent(ctx context.Context, topic string, product *domain.Product) error {
	if p.kafka == nil {
		return nil
	}

	data := ProductChangedData{
		ID:         product.ID,
		Name:       product.Name,
		CategoryID: product.CategoryID,
	}

	event, err := pkgkafka.NewEvent(topic, product.ID, AggregateTypeProduct, Source, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published product event",
		slog.String("topic", topic),
		slog.String("product_id", product.ID),
	)

	return nil
}
