package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"ai-assistant-client/internal/pkg/logger"
	"ai-assistant-client/pkg/events"
	pktNats "ai-assistant-client/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loopbackStream stands in for the shared NATS stream: whatever is mirrored is handed to
// the registered handler, as another device's subscriber would see it.
type loopbackStream struct {
	mu       sync.Mutex
	mirrored []events.Event
	handler  pktNats.EventHandler
	durable  string
}

func (l *loopbackStream) Publish(ctx context.Context, event events.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mirrored = append(l.mirrored, event)
	return nil
}

func (l *loopbackStream) Subscribe(ctx context.Context, subject, durable string, handler pktNats.EventHandler) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler = handler
	l.durable = durable
	return nil
}

func (l *loopbackStream) Mirrored() []events.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]events.Event(nil), l.mirrored...)
}

func TestSyncMirrorsLocalAndAppliesForeignEvents(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()
	local := NewPublisherService("client.events", pubSub, logger.NewNopLogger())
	stream := &loopbackStream{}

	dashboard := &countingTrigger{}
	reconciler := NewReconcilerService(pubSub, "client.events", Refreshers{Dashboard: dashboard}, logger.NewNopLogger())
	svc := NewSyncService(pubSub, "client.events", local, stream, stream, "origin-a", "laptop", logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, reconciler.Consume(ctx))
	require.NoError(t, svc.Start(ctx))
	assert.Equal(t, "assistant-laptop", stream.durable)

	// Local mutation: mirrored once, stamped with our origin.
	require.NoError(t, local.Publish(ctx, events.New(events.NoteDeleted, map[string]interface{}{events.KeyEntityId: "n1"})))
	require.Eventually(t, func() bool { return len(stream.Mirrored()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "origin-a", events.StringField(stream.Mirrored()[0], events.KeyOrigin))

	// Our own event echoed back by the stream is ignored.
	require.NoError(t, stream.handler(ctx, stream.Mirrored()[0]))

	// Another device's event reaches the reconciler but is not mirrored again.
	foreign := events.New(events.ReminderDeleted, map[string]interface{}{events.KeyOrigin: "origin-b"})
	require.NoError(t, stream.handler(ctx, foreign))

	require.Eventually(t, func() bool { return dashboard.Count() == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, stream.Mirrored(), 1)
}
