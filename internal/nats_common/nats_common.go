package nats_common

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/ZanzyTHEbar/firedragon-ledger/interfaces"
	"github.com/ZanzyTHEbar/firedragon-ledger/internal"
)

type NATSConfig struct {
	ServerURL     string
	SubjectPrefix string
	StreamName    string
	// Events are subject patterns relative to SubjectPrefix. Empty announces everything.
	Events         []string
	ClientID       string
	Username       string
	Password       string
	Token          string
	ConnectTimeout time.Duration
}

// NATSConfigFromConfig extracts the NATS settings from the loaded configuration
func NATSConfigFromConfig(cfg *internal.Config) NATSConfig {
	return NATSConfig{
		ServerURL:      cfg.NATS.URL,
		SubjectPrefix:  cfg.NATS.SubjectPrefix,
		StreamName:     cfg.NATS.Stream,
		Events:         cfg.NATS.Events,
		ClientID:       internal.GenerateClientID(),
		Username:       cfg.NATS.Username,
		Password:       cfg.NATS.Password,
		Token:          cfg.NATS.Token,
		ConnectTimeout: 5 * time.Second,
	}
}

// EventSubject is the subject an event of eventType is published on
func EventSubject(prefix string, eventType interfaces.EventType) string {
	return strings.TrimSuffix(prefix, ".") + "." + string(eventType)
}

// MatchSubject returns whether a subject matches a pattern with wildcard support.
// "*" matches exactly one token and ">" matches one or more trailing tokens.
func MatchSubject(pattern, subject string) bool {
	if pattern == subject {
		return true
	}

	patternTokens := strings.Split(pattern, ".")
	subjectTokens := strings.Split(subject, ".")

	for i, token := range patternTokens {
		if token == ">" {
			return i == len(patternTokens)-1 && len(subjectTokens) > i
		}
		if i >= len(subjectTokens) {
			return false
		}
		if token != "*" && token != subjectTokens[i] {
			return false
		}
	}

	return len(patternTokens) == len(subjectTokens)
}

// EnsureStreamExists checks if a stream exists, and if not, creates it with the given configuration.
// It sets the stream name and subjects in the configuration and calls CreateOrUpdateStream.
func EnsureStreamExists(ctx context.Context, js jetstream.JetStream, streamName string, subjects []string, config jetstream.StreamConfig) (jetstream.Stream, error) {
	config.Name = streamName
	config.Subjects = subjects

	if config.Storage == 0 {
		config.Storage = jetstream.FileStorage
	}
	if config.Retention == 0 {
		config.Retention = jetstream.LimitsPolicy
	}

	stream, err := js.CreateOrUpdateStream(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure stream exists: %w", err)
	}
	return stream, nil
}

// ApplyNATSAuthOptions picks username/password over token authentication
func ApplyNATSAuthOptions(username, password, token string) []nats.Option {
	opts := []nats.Option{}
	logger := internal.GetLogger()
	if username != "" && password != "" {
		opts = append(opts, nats.UserInfo(username, password))
		logger.Info(internal.ComponentNATS, "Using username/password authentication for NATS")
	} else if token != "" {
		opts = append(opts, nats.Token(token))
		logger.Info(internal.ComponentNATS, "Using token authentication for NATS")
	} else {
		logger.Warn(internal.ComponentNATS, "No authentication provided for NATS connection")
	}
	return opts
}
