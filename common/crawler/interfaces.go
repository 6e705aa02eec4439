package crawler

import (
	"context"

	"github.com/coastlabs/coast-crawler/common/models"
)

// Document is a successfully fetched page. URL is the final URL after
// redirects and is the base for resolving relative links.
type Document struct {
	URL  string
	Body []byte
}

// Fetcher retrieves a URL's content or returns a classified *FetchError.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Document, error)
}

// LinkExtractor parses a document into the set of absolute hyperlink targets.
// Malformed markup degrades to a best-effort subset, never an error.
type LinkExtractor interface {
	ExtractLinks(doc Document) []string
}

// PermissionOracle answers whether this agent may fetch a URL on the oracle's
// host. Loaded once per domain run and immutable afterwards.
type PermissionOracle interface {
	Allows(url string) bool
}

// PolicyLoader acquires the permission oracle for the host of rootURL.
// Implementations degrade to an allow-all oracle on any failure; a missing
// policy resource is not a crawl-blocking condition.
type PolicyLoader interface {
	Load(ctx context.Context, rootURL string) PermissionOracle
}

// DomainRecord is a registered seed domain.
type DomainRecord struct {
	Host    string
	RootURL string
	Status  models.DomainStatus
}

// FrontierStats holds the per-domain frontier counters.
type FrontierStats struct {
	Pending int64
	Crawled int64
	Blocked int64
	Pages   int64
}

// FrontierStore is the durable frontier contract. Every mutation is
// insert-if-absent at the store boundary so retries never create duplicates,
// Dequeue is atomic under concurrent workers, and MarkVisited is an atomic
// check-and-mark reporting whether this call was the first visit.
type FrontierStore interface {
	// RegisterDomain registers a seed host as PENDING. A pre-existing host,
	// including one already CRAWLED, is left untouched.
	RegisterDomain(ctx context.Context, host, rootURL string) error

	// PendingDomains lists domains whose frontier has not been drained yet.
	PendingDomains(ctx context.Context) ([]DomainRecord, error)

	// MarkDomainCrawled transitions a domain PENDING -> CRAWLED.
	MarkDomainCrawled(ctx context.Context, host string) error

	// Enqueue adds a URL to the pending queue unless it is already pending,
	// visited, or blocked. Reports whether the URL was actually enqueued.
	Enqueue(ctx context.Context, host, url string) (bool, error)

	// Dequeue atomically removes and returns the oldest pending URL for the
	// host. The second return is false when the queue is empty.
	Dequeue(ctx context.Context, host string) (string, bool, error)

	// MarkVisited records a URL in the visited set. Reports whether this call
	// created the record, i.e. whether the URL had not been visited before.
	MarkVisited(ctx context.Context, host, url string) (bool, error)

	// MarkBlocked records a policy-denied URL with a reason. Blocked URLs are
	// treated as seen for dedup and are never re-enqueued.
	MarkBlocked(ctx context.Context, host, url, reason string) error

	// StorePage stores fetched page content. Duplicate inserts are ignored.
	StorePage(ctx context.Context, host, url, html, archiveLink string) error

	// Stats returns the frontier counters for a host.
	Stats(ctx context.Context, host string) (FrontierStats, error)
}

// PageArchiver copies raw HTML to blob storage and returns an archive link.
type PageArchiver interface {
	ArchivePage(ctx context.Context, host, url string, html []byte) (string, error)
}
