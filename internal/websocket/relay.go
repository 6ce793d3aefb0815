package websocket

import (
	"context"
	"encoding/json"

	"realtime-chat/pkg/events"
	"realtime-chat/pkg/logger"
)

// Relay bridges broker events onto hub channels. Message events are
// routed to the chat channel named in the payload so only members of
// that chat receive them.
type Relay struct {
	subscriber events.Subscriber
	hub        *Hub
}

func NewRelay(subscriber events.Subscriber, hub *Hub) *Relay {
	return &Relay{subscriber: subscriber, hub: hub}
}

// Run subscribes to the given broker channel. Delivery is best effort:
// events that cannot be routed are logged and dropped.
func (r *Relay) Run(ctx context.Context, channel string) error {
	return r.subscriber.Subscribe(ctx, channel, func(ctx context.Context, event events.Event) error {
		payload, ok := event.Payload.(map[string]interface{})
		if !ok {
			return nil
		}
		chatID, ok := payload["chat_id"].(string)
		if !ok || chatID == "" {
			return nil
		}

		data, err := json.Marshal(event)
		if err != nil {
			if l := logger.GetGlobalLogger(); l != nil {
				l.Errorf("relay: failed to marshal event: %v", err)
			}
			return nil
		}

		r.hub.Broadcast("chat:"+chatID, data)
		return nil
	})
}
