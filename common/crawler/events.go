package crawler

import "context"

// Crawl lifecycle event types
const (
	EventDomainStarted   = "domain.started"
	EventDomainCompleted = "domain.completed"
	EventPageStored      = "page.stored"
	EventURLBlocked      = "url.blocked"
	EventFetchFailed     = "fetch.failed"
)

// Event is a crawl lifecycle event
type Event struct {
	Type    string                 `json:"type"`
	Host    string                 `json:"host"`
	URL     string                 `json:"url,omitempty"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// EventSink receives crawl lifecycle events. Implementations must be
// best-effort: the crawl never fails or blocks on event delivery.
type EventSink interface {
	CrawlEvent(ctx context.Context, event Event)
}

type multiSink []EventSink

// NewMultiSink fans events out to every non-nil sink
func NewMultiSink(sinks ...EventSink) EventSink {
	var out multiSink
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (m multiSink) CrawlEvent(ctx context.Context, event Event) {
	for _, s := range m {
		s.CrawlEvent(ctx, event)
	}
}
