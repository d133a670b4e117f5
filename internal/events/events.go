// Package events publishes match notifications for downstream consumers
// (push notifications, chat bootstrap). Delivery is fire-and-forget.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/nats-io/nats.go"
)

// DefaultSubject is where match events go unless configured otherwise.
const DefaultSubject = "match.found"

// MatchEvent is published once per vote that completes or refreshes a match.
// UserID is the voter, TargetID the user they matched with.
type MatchEvent struct {
	UserID    string    `json:"user_id"`
	TargetID  string    `json:"target_id"`
	MatchedAt time.Time `json:"matched_at"`
}

// NewMatchEvent builds the payload with ids in their wire form.
func NewMatchEvent(userID, targetID uint64, at time.Time) MatchEvent {
	return MatchEvent{
		UserID:    strconv.FormatUint(userID, 10),
		TargetID:  strconv.FormatUint(targetID, 10),
		MatchedAt: at.UTC(),
	}
}

// Publisher sends match events somewhere.
type Publisher interface {
	PublishMatch(ctx context.Context, ev MatchEvent) error
	Close()
}

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// NATSPublisher publishes match events as JSON on a single subject.
type NATSPublisher struct {
	conn    Conn
	subject string
}

// NewNATSPublisher wraps an existing connection.
func NewNATSPublisher(conn Conn, subject string) *NATSPublisher {
	if subject == "" {
		subject = DefaultSubject
	}
	return &NATSPublisher{conn: conn, subject: subject}
}

// Connect dials NATS at url with reconnects enabled and returns a publisher on subject.
func Connect(url, subject string, log *slog.Logger) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("muzz-match"),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("nats disconnected", "err", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	log.Info("nats connected", "url", nc.ConnectedUrl(), "subject", subject)

	return NewNATSPublisher(nc, subject), nil
}

func (p *NATSPublisher) PublishMatch(_ context.Context, ev MatchEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal match event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	_ = p.conn.Drain()
}

// Noop drops every event. Used when no NATS URL is configured.
type Noop struct{}

func (Noop) PublishMatch(context.Context, MatchEvent) error { return nil }
func (Noop) Close()                                         {}
