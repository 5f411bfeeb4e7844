package nats_common

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/ZanzyTHEbar/firedragon-ledger/interfaces"
	"github.com/ZanzyTHEbar/firedragon-ledger/internal"
)

// Publisher announces ledger events on NATS. With a stream configured the
// events go through JetStream and are deduplicated by event ID.
type Publisher struct {
	conn   *nats.Conn
	js     jetstream.JetStream
	config NATSConfig
	logger *internal.Logger
}

// NewPublisher connects to the NATS server and, in JetStream mode, makes sure
// the stream exists
func NewPublisher(ctx context.Context, config NATSConfig, logger *internal.Logger) (*Publisher, error) {
	p := &Publisher{config: config, logger: logger}
	if err := p.connect(); err != nil {
		return nil, err
	}

	if config.StreamName != "" {
		js, err := jetstream.New(p.conn)
		if err != nil {
			p.conn.Close()
			return nil, fmt.Errorf("failed to create JetStream context: %w", err)
		}

		subjects := []string{EventSubject(config.SubjectPrefix, ">")}
		_, err = EnsureStreamExists(ctx, js, config.StreamName, subjects, jetstream.StreamConfig{
			MaxAge:     30 * 24 * time.Hour,
			Duplicates: 2 * time.Minute,
		})
		if err != nil {
			p.conn.Close()
			return nil, err
		}
		p.js = js
		logger.Info(internal.ComponentNATS, "Publishing to JetStream stream %s", config.StreamName)
	}

	return p, nil
}

func (p *Publisher) connect() error {
	p.logger.Debug(internal.ComponentNATS, "Connecting to NATS at %s", p.config.ServerURL)

	opts := []nats.Option{
		nats.Name(p.config.ClientID),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			p.logger.Error(internal.ComponentNATS, "NATS error: %v", err)
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				p.logger.Warn(internal.ComponentNATS, "Disconnected from NATS server: %v", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			p.logger.Info(internal.ComponentNATS, "Reconnected to NATS server")
		}),
	}
	if p.config.ConnectTimeout > 0 {
		opts = append(opts, nats.Timeout(p.config.ConnectTimeout))
	}
	opts = append(opts, ApplyNATSAuthOptions(p.config.Username, p.config.Password, p.config.Token)...)

	nc, err := nats.Connect(p.config.ServerURL, opts...)
	if err != nil {
		return fmt.Errorf("NATS connection failed: %w", err)
	}

	p.conn = nc
	p.logger.Info(internal.ComponentNATS, "Connected to NATS server")
	return nil
}

// Publish implements interfaces.EventPublisher
func (p *Publisher) Publish(ctx context.Context, event *interfaces.Event) error {
	if !p.announces(event.Type) {
		return nil
	}
	subject := EventSubject(p.config.SubjectPrefix, event.Type)

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event.ID, err)
	}

	if p.js != nil {
		if _, err := p.js.Publish(ctx, subject, data, jetstream.WithMsgID(event.ID)); err != nil {
			return fmt.Errorf("failed to publish %s to stream: %w", subject, err)
		}
		return nil
	}

	msg := nats.NewMsg(subject)
	msg.Header.Set(nats.MsgIdHdr, event.ID)
	msg.Data = data
	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	return p.conn.FlushWithContext(ctx)
}

// announces reports whether events of eventType pass the configured patterns
func (p *Publisher) announces(eventType interfaces.EventType) bool {
	return matchesAny(p.config.Events, string(eventType))
}

func matchesAny(patterns []string, subject string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pattern := range patterns {
		if MatchSubject(pattern, subject) {
			return true
		}
	}
	return false
}

// Close drains pending messages and closes the connection
func (p *Publisher) Close() error {
	if p.conn == nil {
		return nil
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}
	return nil
}

var _ interfaces.EventPublisher = (*Publisher)(nil)
