// Package jetstream holds the helpers shared by publishers and consumers.
package jetstream

import (
	"time"

	"github.com/nats-io/nats.go"
)

// MessageID is the dedupe id of an event; JetStream drops a republished
// message with the same id inside the stream's duplicate window.
func MessageID(kind, id string) string {
	return kind + ":" + id
}

// Latency is the time the message spent in the stream before delivery.
// It is zero when the message carries no JetStream metadata.
func Latency(msg *nats.Msg, now time.Time) time.Duration {
	meta, err := msg.Metadata()
	if err != nil {
		return 0
	}
	return now.Sub(meta.Timestamp)
}
