package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"crew-service/internal/metrics"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/nats-io/nats.go"
)

const (
	KindAstronaut  = "astronaut"
	KindExpedition = "expedition"
)

// ViewEvent is published after a successful detail lookup.
type ViewEvent struct {
	EventID  string    `json:"event_id"`
	Kind     string    `json:"kind"`
	EntityID int       `json:"entity_id"`
	ViewedAt time.Time `json:"viewed_at"`
}

// ViewPublisher reports detail lookups. Implementations must not fail the
// request they are called from.
type ViewPublisher interface {
	PublishView(ctx context.Context, kind string, id int)
}

// NopPublisher drops every event; used when NATS is not configured.
type NopPublisher struct{}

func (NopPublisher) PublishView(context.Context, string, int) {}

type Producer struct {
	conn    *nats.Conn
	subject string
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewProducer(url string, subject string, clock clockwork.Clock, logger *slog.Logger, m *metrics.Metrics) (*Producer, error) {
	nc, err := nats.Connect(url,
		nats.Name("crew-service"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, err
	}

	logger.Info("NATS producer initialized", "url", url, "subject", subject)

	return &Producer{
		conn:    nc,
		subject: subject,
		clock:   clock,
		logger:  logger,
		metrics: m,
	}, nil
}

func (p *Producer) PublishView(ctx context.Context, kind string, id int) {
	event := ViewEvent{
		EventID:  uuid.NewString(),
		Kind:     kind,
		EntityID: id,
		ViewedAt: p.clock.Now().UTC(),
	}
	if err := p.SendMessage(ctx, event); err != nil {
		p.logger.WarnContext(ctx, "failed to publish view event", "kind", kind, "id", id, "error", err)
	}
}

func (p *Producer) SendMessage(ctx context.Context, value interface{}) error {
	valueBytes, err := json.Marshal(value)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to marshal message", "error", err)
		return err
	}

	start := time.Now()
	err = p.conn.Publish(p.subject, valueBytes)
	p.metrics.Messaging.RecordPublish(ctx, p.subject, time.Since(start), err)
	if err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "message sent to NATS", "subject", p.subject)
	return nil
}

func (p *Producer) Close() error {
	return p.conn.Drain()
}
