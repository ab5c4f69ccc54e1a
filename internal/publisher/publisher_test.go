package publisher

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subplane/subplane/internal/config"
	"github.com/subplane/subplane/internal/events"
	"github.com/subplane/subplane/internal/logger"
	"github.com/subplane/subplane/internal/pubsub/memory"
	"github.com/subplane/subplane/internal/types"
)

func TestEventPublisherRoundTrip(t *testing.T) {
	cfg := config.GetDefaultConfig()
	log, err := logger.NewLogger(cfg)
	require.NoError(t, err)

	ps := memory.NewPubSub(log)
	pub := NewEventPublisher(ps, cfg, log)
	defer pub.Close()

	ctx := types.SetTenantID(context.Background(), "tenant_pub")
	msgs, err := ps.Subscribe(ctx, cfg.Event.Topic)
	require.NoError(t, err)

	ev := &events.SubscriptionCancelled{
		SubscriptionID:      "subs_pub",
		EditionID:           "edition_pub",
		SubscriptionEndDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		CancelledAt:         time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		CancellationReason:  "test",
	}
	require.NoError(t, pub.Publish(ctx, ev))

	select {
	case msg := <-msgs:
		assert.Equal(t, events.EventSubscriptionCancelled, msg.Metadata.Get("event_name"))
		assert.Equal(t, "tenant_pub", msg.Metadata.Get("tenant_id"))

		var got events.SubscriptionCancelled
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, "subs_pub", got.SubscriptionID)
		assert.Equal(t, "test", got.CancellationReason)
		msg.Ack()
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}
