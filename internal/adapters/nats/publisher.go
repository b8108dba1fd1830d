package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/restofinder/internal/core/domain"
)

// Subjects published by this service.
const (
	SubjectSearch     = "restaurants.search"
	SubjectDetailView = "restaurants.detail"
)

// Publisher implements ports.EventPublisher using core NATS publish.
// Messages are fire-and-forget; nothing is stored by the broker.
type Publisher struct {
	conn *nats.Conn
}

// NewPublisher connects to NATS.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("restofinder-api"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Publisher{conn: conn}, nil
}

func (p *Publisher) PublishSearch(ctx context.Context, event *domain.SearchEvent) error {
	return p.publish(SubjectSearch, event)
}

func (p *Publisher) PublishDetailView(ctx context.Context, event *domain.DetailViewEvent) error {
	return p.publish(SubjectDetailView, event)
}

func (p *Publisher) publish(subject string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.conn.Publish(subject, data)
}

// Conn exposes the underlying connection for readiness checks.
func (p *Publisher) Conn() *nats.Conn {
	return p.conn
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}
