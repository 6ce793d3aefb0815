package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubSubscribeAndBroadcast(t *testing.T) {
	hub := NewHub()
	client := NewClient(nil, uuid.New().String())
	channel := ChatChannel(uuid.New())

	// Exercise the internal handlers directly; Run only dispatches to them.
	hub.addClient(client)
	hub.subscribeToChannel(client, channel)
	require.True(t, client.IsSubscribed(channel))

	hub.Broadcast(channel, []byte(`{"type":"message.sent"}`))

	select {
	case msg := <-client.Send:
		assert.JSONEq(t, `{"type":"message.sent"}`, string(msg))
	case <-time.After(time.Second):
		t.Fatal("expected broadcast delivery")
	}
}

func TestHubBroadcastSkipsOtherChannels(t *testing.T) {
	hub := NewHub()
	client := NewClient(nil, uuid.New().String())

	hub.addClient(client)
	hub.subscribeToChannel(client, ChatChannel(uuid.New()))

	hub.Broadcast(ChatChannel(uuid.New()), []byte("payload"))

	select {
	case <-client.Send:
		t.Fatal("client received payload for a channel it never joined")
	default:
	}
}

func TestHubRemoveClientCleansSubscriptions(t *testing.T) {
	hub := NewHub()
	client := NewClient(nil, uuid.New().String())
	channel := ChatChannel(uuid.New())

	hub.addClient(client)
	hub.subscribeToChannel(client, channel)
	hub.removeClient(client)

	assert.Equal(t, 0, hub.ClientCount())
	assert.Empty(t, hub.channels)

	_, open := <-client.Send
	assert.False(t, open)
}

func TestHubBroadcastToUser(t *testing.T) {
	hub := NewHub()
	userID := uuid.New().String()
	mine := NewClient(nil, userID)
	theirs := NewClient(nil, uuid.New().String())

	hub.addClient(mine)
	hub.addClient(theirs)

	hub.BroadcastToUser(userID, []byte("direct"))

	select {
	case msg := <-mine.Send:
		assert.Equal(t, "direct", string(msg))
	case <-time.After(time.Second):
		t.Fatal("expected delivery to the user's client")
	}
	select {
	case <-theirs.Send:
		t.Fatal("unrelated client received the payload")
	default:
	}
}
