package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/openlance/vouch/ports"
)

// LoginTopic carries wallet login events for the analytics sync consumers.
const LoginTopic = "auth.login"

// LoginEvent notifies downstream consumers that a wallet login happened.
type LoginEvent struct {
	UserID   string    `json:"user_id"`
	Address  string    `json:"address"`
	Verified bool      `json:"verified"`
	At       time.Time `json:"at"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill.
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewWatermillPublisher creates a new Watermill-backed publisher.
func NewWatermillPublisher(publisher message.Publisher) *WatermillPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		topic:     LoginTopic,
	}
}

// PublishLogin publishes a login event.
func (p *WatermillPublisher) PublishLogin(ctx context.Context, userID, address string, verified bool) error {
	event := LoginEvent{
		UserID:   userID,
		Address:  address,
		Verified: verified,
		At:       time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), payload)
	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("publishing event: %w", err)
	}
	return nil
}

var _ ports.EventPublisher = (*WatermillPublisher)(nil)
