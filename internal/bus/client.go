// Package bus wraps the NATS connection and JetStream context every other
// component is built against, adapted from packages/go-core/natsclient so
// the engine gets the same connect/drain discipline without depending on
// a package named after the teacher's own unrelated domain.
package bus

import (
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Client owns one NATS connection and its JetStream context.
type Client struct {
	Conn *nats.Conn
	JS   nats.JetStreamContext
	Log  *zap.Logger
}

// NewClient connects to url with infinite reconnect attempts, matching
// natsclient.NewClient's resilience posture for a long-lived service.
func NewClient(url string, log *zap.Logger) (*Client, error) {
	nc, err := nats.Connect(url, nats.RetryOnFailedConnect(true), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("bus: connect: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("bus: jetstream context: %w", err)
	}

	log.Info("nats jetstream connected", zap.String("url", url))
	return &Client{Conn: nc, JS: js, Log: log}, nil
}

// Close drains in-flight publishes and subscriptions before closing the
// connection, falling back to a hard close if the drain itself fails.
func (c *Client) Close() {
	if c.Conn == nil {
		return
	}
	if err := c.Conn.Drain(); err != nil {
		c.Conn.Close()
	}
}
