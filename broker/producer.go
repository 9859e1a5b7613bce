package broker

import (
	"encoding/json"
	"time"

	"cornelius-notes/cornelius/logger"

	"github.com/nats-io/nats.go"
)

var conn *nats.Conn

// InitProducer connects to NATS. Publishing stays a no-op when the
// broker is unreachable so the API keeps serving without it.
func InitProducer(url string) error {
	nc, err := nats.Connect(url,
		nats.Timeout(5*time.Second),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return err
	}
	conn = nc
	logger.Log.Info().Str("url", url).Msg("NATS producer initialized")
	return nil
}

// Publish sends an event to the given subject, best effort. Failures
// are logged and never propagated to the caller.
func Publish(topic string, event Event) {
	if conn == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Log.Error().Err(err).Str("topic", topic).Msg("failed to encode event")
		return
	}

	if err := conn.Publish(topic, payload); err != nil {
		logger.Log.Error().Err(err).Str("topic", topic).Msg("failed to publish event")
		return
	}
	logger.Log.Debug().Str("topic", topic).Str("type", string(event.Type)).Msg("published event")
}

func CloseProducer() {
	if conn != nil {
		conn.Drain()
		conn = nil
	}
}
