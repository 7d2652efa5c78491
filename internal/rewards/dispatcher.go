package rewards

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/pmackar/gamifyit/internal/pubsub"
)

type pubsubDispatcher struct {
	ps    pubsub.PubSubClient
	topic string
}

// NewDispatcher creates a Dispatcher that publishes reward grants to the
// given Pub/Sub topic as msgpack payloads.
func NewDispatcher(ps pubsub.PubSubClient, topic string) Dispatcher {
	return &pubsubDispatcher{ps: ps, topic: topic}
}

func (d *pubsubDispatcher) Dispatch(userID, source string, reward Descriptor) error {
	msg := Dispatch{
		UserID:    userID,
		Source:    source,
		Reward:    reward,
		DedupeKey: fmt.Sprintf("%s|%s|%s", userID, reward.Code, source),
	}
	if err := d.ps.SendMessage(d.topic, msg); err != nil {
		return fmt.Errorf("failed to dispatch reward: %w", err)
	}
	log.Info("Dispatched reward", "userID", userID, "type", reward.Type, "source", source)
	return nil
}
