package messaging_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"crew-service/internal/messaging"
	"crew-service/internal/metrics"
	"crew-service/testing/fixtures"
	"crew-service/testing/testnats"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducer_PublishView(t *testing.T) {
	natsContainer := testnats.SetupSharedNATS(t)
	defer natsContainer.Cleanup(t)

	const subject = "crew.views.test"
	sub := natsContainer.Subscribe(t, subject)

	clock := fixtures.Clock()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	producer, err := messaging.NewProducer(natsContainer.URL, subject, clock, logger, metrics.NewMock())
	require.NoError(t, err)
	defer producer.Close()

	producer.PublishView(context.Background(), messaging.KindAstronaut, 3)

	msg, err := sub.NextMsg(5 * time.Second)
	require.NoError(t, err)

	var event messaging.ViewEvent
	require.NoError(t, json.Unmarshal(msg.Data, &event))

	assert.Equal(t, messaging.KindAstronaut, event.Kind)
	assert.Equal(t, 3, event.EntityID)
	assert.True(t, clock.Now().Equal(event.ViewedAt))
	_, err = uuid.Parse(event.EventID)
	assert.NoError(t, err)
}

func TestNopPublisher(t *testing.T) {
	var publisher messaging.ViewPublisher = messaging.NopPublisher{}
	assert.NotPanics(t, func() {
		publisher.PublishView(context.Background(), messaging.KindExpedition, 1)
	})
}
