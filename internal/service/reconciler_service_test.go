package service

import (
	"context"
	"testing"
	"time"

	"ai-assistant-client/internal/pkg/logger"
	"ai-assistant-client/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcilerApplyMapsEventsToReloads(t *testing.T) {
	tests := []struct {
		event                       string
		notes, reminders, dashboard int
	}{
		{events.NoteCreated, 1, 0, 1},
		{events.NoteToggled, 1, 0, 1},
		{events.ReminderCreated, 0, 1, 1},
		{events.ReminderToggled, 0, 1, 1},
		{events.NoteDeleted, 0, 0, 1},
		{events.ReminderDeleted, 0, 0, 1},
		{events.ActivityDeleted, 0, 0, 1},
		{events.ChatTurnCompleted, 0, 0, 1},
		{events.SearchCompleted, 0, 0, 1},
		{events.CodeAnalyzed, 0, 0, 1},
		{"SOMETHING_ELSE", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.event, func(t *testing.T) {
			notes, reminders, dashboard := &countingTrigger{}, &countingTrigger{}, &countingTrigger{}
			rs := &reconcilerService{
				refreshers: Refreshers{Notes: notes, Reminders: reminders, Dashboard: dashboard},
				logger:     logger.NewNopLogger(),
			}

			rs.Apply(events.New(tt.event, nil))

			assert.Equal(t, tt.notes, notes.Count())
			assert.Equal(t, tt.reminders, reminders.Count())
			assert.Equal(t, tt.dashboard, dashboard.Count())
		})
	}
}

func TestReconcilerConsumesFromBus(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	notes, reminders, dashboard := &countingTrigger{}, &countingTrigger{}, &countingTrigger{}
	rs := NewReconcilerService(pubSub, "client.events", Refreshers{
		Notes:     notes,
		Reminders: reminders,
		Dashboard: dashboard,
	}, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, rs.Consume(ctx))

	publisher := NewPublisherService("client.events", pubSub, logger.NewNopLogger())
	require.NoError(t, publisher.Publish(ctx, events.New(events.NoteCreated, map[string]interface{}{
		events.KeyEntityId: "n1",
	})))
	// Malformed payloads are acked and skipped.
	require.NoError(t, pubSub.Publish("client.events", message.NewMessage(watermill.NewUUID(), []byte("{"))))
	require.NoError(t, publisher.Publish(ctx, events.New(events.ReminderDeleted, nil)))

	require.Eventually(t, func() bool { return dashboard.Count() == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, notes.Count())
	assert.Equal(t, 0, reminders.Count())
}
