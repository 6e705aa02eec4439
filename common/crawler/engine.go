package crawler

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// BlockReasonPolicyDenied is recorded for URLs the permission oracle rejects
const BlockReasonPolicyDenied = "policy-denied"

const (
	// progressLogInterval controls how often the frontier counters are logged
	progressLogInterval = 50

	storeRetryAttempts = 3
	storeRetryDelay    = 250 * time.Millisecond
)

// Engine drives a single domain's crawl to completion. Processing is strictly
// sequential per domain: one URL in flight at a time, every queue operation
// round-tripping through the durable store. That round-trip is what makes a
// crawl resumable after a crash.
//
// Fetch failures follow the skip-on-failure policy: the URL is marked visited
// without content so the frontier always drains. A temporary outage is
// indistinguishable from a permanent miss; forward progress wins over
// completeness here.
type Engine struct {
	store     FrontierStore
	fetcher   Fetcher
	extractor LinkExtractor
	policies  PolicyLoader

	archiver PageArchiver
	events   EventSink
}

// NewEngine creates a frontier engine
func NewEngine(store FrontierStore, fetcher Fetcher, extractor LinkExtractor, policies PolicyLoader) *Engine {
	return &Engine{
		store:     store,
		fetcher:   fetcher,
		extractor: extractor,
		policies:  policies,
	}
}

// SetArchiver sets the optional raw HTML archiver
func (e *Engine) SetArchiver(archiver PageArchiver) {
	e.archiver = archiver
}

// SetEventSink sets the optional crawl event sink
func (e *Engine) SetEventSink(events EventSink) {
	e.events = events
}

// RunDomain crawls one domain until its pending queue is observed empty.
// Returned errors are persistent store failures; everything scoped to a
// single URL (fetch failure, policy denial, parse failure) is handled inside
// the loop and never aborts the domain.
func (e *Engine) RunDomain(ctx context.Context, host, rootURL string) error {
	// Seeding is idempotent: the enqueue is ignored if the root is already
	// pending, visited, or blocked from a previous session.
	if err := e.retryStore(ctx, func() error {
		_, err := e.store.Enqueue(ctx, host, rootURL)
		return err
	}); err != nil {
		return fmt.Errorf("seeding %s: %w", host, err)
	}

	oracle := e.policies.Load(ctx, rootURL)

	log.Info().Str("host", host).Str("root", rootURL).Msg("Crawling domain")
	e.emit(ctx, Event{Type: EventDomainStarted, Host: host, URL: rootURL})

	processed := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var (
			current string
			ok      bool
		)
		if err := e.retryStore(ctx, func() error {
			var err error
			current, ok, err = e.store.Dequeue(ctx, host)
			return err
		}); err != nil {
			return fmt.Errorf("dequeue for %s: %w", host, err)
		}
		if !ok {
			break
		}

		// The URL is already out of the queue at this point, so a failure in
		// any later step can never re-process it forever.
		if err := e.processURL(ctx, host, current, oracle); err != nil {
			return err
		}

		processed++
		if processed%progressLogInterval == 0 {
			e.logProgress(ctx, host)
		}
	}

	log.Info().Str("host", host).Int("processed", processed).Msg("Domain frontier drained")
	e.emit(ctx, Event{Type: EventDomainCompleted, Host: host, Details: map[string]interface{}{
		"processed": processed,
	}})
	return nil
}

func (e *Engine) processURL(ctx context.Context, host, rawURL string, oracle PermissionOracle) error {
	if !oracle.Allows(rawURL) {
		log.Info().Str("host", host).Str("url", rawURL).Msg("URL denied by policy")
		if err := e.retryStore(ctx, func() error {
			return e.store.MarkBlocked(ctx, host, rawURL, BlockReasonPolicyDenied)
		}); err != nil {
			return fmt.Errorf("marking %s blocked: %w", rawURL, err)
		}
		e.emit(ctx, Event{Type: EventURLBlocked, Host: host, URL: rawURL, Message: BlockReasonPolicyDenied})
		return nil
	}

	doc, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		log.Warn().Str("host", host).Str("url", rawURL).Err(err).Msg("Fetch failed, skipping URL")
		if err := e.retryStore(ctx, func() error {
			_, err := e.store.MarkVisited(ctx, host, rawURL)
			return err
		}); err != nil {
			return fmt.Errorf("marking %s visited: %w", rawURL, err)
		}
		e.emit(ctx, Event{Type: EventFetchFailed, Host: host, URL: rawURL, Message: err.Error()})
		return nil
	}

	// Visited is marked before the extracted links go in. The order matters:
	// a page linking to itself must see its own URL in the visited set when
	// the link is enqueued, or it would re-enter the queue it was just
	// dequeued from.
	var firstVisit bool
	if err := e.retryStore(ctx, func() error {
		var err error
		firstVisit, err = e.store.MarkVisited(ctx, host, rawURL)
		return err
	}); err != nil {
		return fmt.Errorf("marking %s visited: %w", rawURL, err)
	}
	if !firstVisit {
		return nil
	}

	for _, link := range e.scopeLinks(host, e.extractor.ExtractLinks(doc)) {
		if err := e.retryStore(ctx, func() error {
			_, err := e.store.Enqueue(ctx, host, link)
			return err
		}); err != nil {
			return fmt.Errorf("enqueueing %s: %w", link, err)
		}
	}

	archiveLink := ""
	if e.archiver != nil {
		archiveLink, err = e.archiver.ArchivePage(ctx, host, rawURL, doc.Body)
		if err != nil {
			log.Warn().Str("url", rawURL).Err(err).Msg("Page archival failed, storing without archive link")
			archiveLink = ""
		}
	}

	if err := e.retryStore(ctx, func() error {
		return e.store.StorePage(ctx, host, rawURL, string(doc.Body), archiveLink)
	}); err != nil {
		return fmt.Errorf("storing page %s: %w", rawURL, err)
	}

	e.emit(ctx, Event{Type: EventPageStored, Host: host, URL: rawURL, Details: map[string]interface{}{
		"bytes": len(doc.Body),
	}})
	return nil
}

// scopeLinks keeps only links whose host matches exactly. Scheme and path may
// differ; subdomains are a different host and stay out.
func (e *Engine) scopeLinks(host string, links []string) []string {
	return lo.Filter(lo.Uniq(links), func(link string, _ int) bool {
		u, err := url.Parse(link)
		if err != nil {
			return false
		}
		return u.Hostname() == host
	})
}

// retryStore retries a store mutation a few times. Every store write is
// insert-if-absent, so replaying a partially observed operation is safe.
func (e *Engine) retryStore(ctx context.Context, op func() error) error {
	var err error
	for attempt := 0; attempt < storeRetryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(storeRetryDelay):
			}
		}
		if err = op(); err == nil {
			return nil
		}
		log.Warn().Int("attempt", attempt+1).Err(err).Msg("Store operation failed")
	}
	return err
}

func (e *Engine) logProgress(ctx context.Context, host string) {
	stats, err := e.store.Stats(ctx, host)
	if err != nil {
		return
	}
	log.Info().
		Str("host", host).
		Int64("toCrawl", stats.Pending).
		Int64("crawled", stats.Crawled).
		Int64("blocked", stats.Blocked).
		Msg("Crawl progress")
}

func (e *Engine) emit(ctx context.Context, event Event) {
	if e.events == nil {
		return
	}
	e.events.CrawlEvent(ctx, event)
}
