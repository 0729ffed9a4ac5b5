package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

const (
	TypePostCreated  = "post.created"
	TypePostUpdated  = "post.updated"
	TypePostDeleted  = "post.deleted"
	TypeSkillSaved   = "skill.saved"
	TypeSkillDeleted = "skill.deleted"
)

// Event is the message published to the broker after a successful mutation.
type Event struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	PostID     string    `json:"post_id"`
	SkillID    string    `json:"skill_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Broker is the publishing surface of the RabbitMQ client.
type Broker interface {
	Publish(ctx context.Context, body []byte, contentType string) error
}

// Publisher emits mutation events. Publishing is strictly fire-and-forget:
// a broker failure is logged and never fails the originating request.
type Publisher struct {
	broker Broker
	logger *slog.Logger
}

func NewPublisher(broker Broker, logger *slog.Logger) *Publisher {
	return &Publisher{
		broker: broker,
		logger: logger,
	}
}

// Emit publishes one event. Safe to call on a nil Publisher or one built
// without a broker, which turns it into a no-op.
func (p *Publisher) Emit(ctx context.Context, eventType, userID, postID, skillID string) {
	if p == nil || p.broker == nil {
		return
	}

	event := Event{
		Type:       eventType,
		UserID:     userID,
		PostID:     postID,
		SkillID:    skillID,
		OccurredAt: time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to encode event",
			slog.String("type", eventType),
			slog.Any("error", err),
		)
		return
	}

	if err := p.broker.Publish(ctx, body, "application/json"); err != nil {
		p.logger.Error("Failed to publish event",
			slog.String("type", eventType),
			slog.Any("error", err),
		)
		return
	}

	p.logger.Debug("Event published",
		slog.String("type", eventType),
		slog.String("post_id", postID),
	)
}
