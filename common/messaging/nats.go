package messaging

import (
	"fmt"

	"github.com/coastlabs/coast-crawler/common/config"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// NatsBroker wraps the NATS connection used for crawl event publishing
type NatsBroker struct {
	conn *nats.Conn
	cfg  config.Config
}

// SetupNatsBroker connects to NATS using the application configuration
func SetupNatsBroker(cfg config.Config) (*NatsBroker, error) {
	broker := &NatsBroker{cfg: cfg}
	if err := broker.connect(); err != nil {
		return nil, err
	}
	return broker, nil
}

func (b *NatsBroker) connect() error {
	opts := []nats.Option{
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn().Err(err).Msg("Disconnected from NATS")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("server", nc.ConnectedUrl()).Msg("Reconnected to NATS")
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Info().Msg("NATS connection closed")
		}),
	}

	if b.cfg.Nats.Username != "" && b.cfg.Nats.Password != "" {
		opts = append(opts, nats.UserInfo(b.cfg.Nats.Username, b.cfg.Nats.Password))
	}

	conn, err := nats.Connect(b.cfg.Nats.URL(), opts...)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	b.conn = conn

	log.Info().Str("server", conn.ConnectedUrl()).Msg("Connected to NATS")
	return nil
}

// Close drains the connection
func (b *NatsBroker) Close() error {
	if b.conn != nil && b.conn.IsConnected() {
		return b.conn.Drain()
	}
	return nil
}

// Publish publishes a message to a subject
func (b *NatsBroker) Publish(subject string, data []byte) error {
	if b.conn == nil || !b.conn.IsConnected() {
		return fmt.Errorf("not connected to NATS")
	}
	return b.conn.Publish(subject, data)
}
