package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub/v2"
)

// PubSubSink publishes event records to a Pub/Sub topic consumed by the
// notification service.
type PubSubSink struct {
	client *pubsub.Client
	topic  string
}

func NewPubSubSink(ctx context.Context, projectID, topic string) (*PubSubSink, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("pubsub client: %w", err)
	}
	return &PubSubSink{client: client, topic: topic}, nil
}

func (s *PubSubSink) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	publisher := s.client.Publisher(s.topic)
	res := publisher.Publish(ctx, &pubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"type":     ev.Type,
			"priority": string(ev.Priority),
		},
	})
	if _, err := res.Get(ctx); err != nil {
		return fmt.Errorf("publish to %s: %w", s.topic, err)
	}
	return nil
}

func (s *PubSubSink) Close() error { return s.client.Close() }
