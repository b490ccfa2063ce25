package realtime

import (
	"testing"

	"github.com/google/uuid"

	"github.com/campushare/campushare-backend/internal/pkg/logger"
)

func newTestHub(t *testing.T) *SSEHub {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return NewSSEHub(log)
}

func TestBroadcastReachesSubscribedClients(t *testing.T) {
	hub := newTestHub(t)
	subscriber := hub.NewSSEClient(uuid.New())
	bystander := hub.NewSSEClient(uuid.New())
	hub.AddChannel(subscriber, "institution:a")
	hub.AddChannel(bystander, "institution:b")

	hub.Broadcast(SSEMessage{Channel: "institution:a", Event: SSEEventResourceChanged})

	select {
	case msg := <-subscriber.Outbound:
		if msg.Event != SSEEventResourceChanged {
			t.Fatalf("unexpected event %q", msg.Event)
		}
	default:
		t.Fatalf("subscriber did not receive the broadcast")
	}
	select {
	case msg := <-bystander.Outbound:
		t.Fatalf("bystander on another channel received %+v", msg)
	default:
	}
}

func TestBroadcastDropsWhenOutboundIsFull(t *testing.T) {
	hub := newTestHub(t)
	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, "institution:a")

	overflow := cap(client.Outbound) + 5
	for i := 0; i < overflow; i++ {
		hub.Broadcast(SSEMessage{Channel: "institution:a", Event: SSEEventReportChanged})
	}

	if got := len(client.Outbound); got != cap(client.Outbound) {
		t.Fatalf("slow client must saturate its buffer, got %d of %d", got, cap(client.Outbound))
	}
}

func TestRemoveChannelStopsDelivery(t *testing.T) {
	hub := newTestHub(t)
	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, "institution:a")
	hub.RemoveChannel(client, "institution:a")

	hub.Broadcast(SSEMessage{Channel: "institution:a", Event: SSEEventResourceChanged})

	if len(client.Outbound) != 0 {
		t.Fatalf("unsubscribed client must not receive broadcasts")
	}
	if client.Channels["institution:a"] {
		t.Fatalf("channel must be cleared from the client's set")
	}
}

func TestRemoveClientClearsAllSubscriptions(t *testing.T) {
	hub := newTestHub(t)
	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, "institution:a")
	hub.AddChannel(client, "institution:b")

	hub.RemoveClient(client)

	hub.Broadcast(SSEMessage{Channel: "institution:a", Event: SSEEventResourceChanged})
	hub.Broadcast(SSEMessage{Channel: "institution:b", Event: SSEEventReportChanged})
	if len(client.Outbound) != 0 {
		t.Fatalf("removed client must not receive broadcasts")
	}
	if len(client.Channels) != 0 {
		t.Fatalf("removed client must keep no channel subscriptions")
	}
}

func TestAddChannelIgnoresBlankNames(t *testing.T) {
	hub := newTestHub(t)
	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, "   ")

	if len(client.Channels) != 0 {
		t.Fatalf("blank channel names must be ignored")
	}
}
