package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/coastlabs/coast-crawler/common/crawler"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const eventSubjectPrefix = "crawler.events."

// CrawlEventMessage is the wire format for crawl lifecycle events
type CrawlEventMessage struct {
	MessageID string                 `json:"message_id"`
	Type      string                 `json:"type"`
	Host      string                 `json:"host"`
	URL       string                 `json:"url,omitempty"`
	Message   string                 `json:"message,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// CrawlEventSink publishes crawl events over NATS. Delivery is best-effort;
// a publish failure is logged and never propagated to the crawl.
type CrawlEventSink struct {
	broker *NatsBroker
}

// NewCrawlEventSink creates a NATS-backed event sink
func NewCrawlEventSink(broker *NatsBroker) *CrawlEventSink {
	return &CrawlEventSink{broker: broker}
}

// CrawlEvent implements crawler.EventSink
func (s *CrawlEventSink) CrawlEvent(ctx context.Context, event crawler.Event) {
	msg := CrawlEventMessage{
		MessageID: uuid.New().String(),
		Type:      event.Type,
		Host:      event.Host,
		URL:       event.URL,
		Message:   event.Message,
		Details:   event.Details,
		Timestamp: time.Now().UTC(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal crawl event")
		return
	}

	if err := s.broker.Publish(eventSubjectPrefix+event.Type, data); err != nil {
		log.Warn().Str("type", event.Type).Err(err).Msg("Failed to publish crawl event")
	}
}
