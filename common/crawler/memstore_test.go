package crawler

import (
	"context"
	"sync"

	"github.com/coastlabs/coast-crawler/common/models"
)

// memStore is an in-memory FrontierStore with the same semantics as the
// PostgreSQL implementation: idempotent inserts, atomic dequeue, atomic
// check-and-mark for visited. It also verifies the disjointness invariant on
// every mutation so tests fail the moment a URL is both pending and visited.
type memStore struct {
	mu sync.Mutex

	domains map[string]*DomainRecord
	queues  map[string][]string
	pending map[string]bool
	visited map[string]bool
	blocked map[string]string
	pages   map[string]string

	invariantViolations []string
}

func newMemStore() *memStore {
	return &memStore{
		domains: make(map[string]*DomainRecord),
		queues:  make(map[string][]string),
		pending: make(map[string]bool),
		visited: make(map[string]bool),
		blocked: make(map[string]string),
		pages:   make(map[string]string),
	}
}

func (s *memStore) checkInvariantLocked() {
	for url := range s.pending {
		if s.visited[url] {
			s.invariantViolations = append(s.invariantViolations, url)
		}
	}
}

func (s *memStore) RegisterDomain(_ context.Context, host, rootURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.domains[host]; exists {
		return nil
	}
	s.domains[host] = &DomainRecord{Host: host, RootURL: rootURL, Status: models.DomainStatusPending}
	return nil
}

func (s *memStore) PendingDomains(context.Context) ([]DomainRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []DomainRecord
	for _, d := range s.domains {
		if d.Status == models.DomainStatusPending {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (s *memStore) MarkDomainCrawled(_ context.Context, host string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.domains[host]; ok {
		d.Status = models.DomainStatusCrawled
	}
	return nil
}

func (s *memStore) Enqueue(_ context.Context, host, url string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending[url] || s.visited[url] {
		return false, nil
	}
	if _, isBlocked := s.blocked[url]; isBlocked {
		return false, nil
	}
	s.pending[url] = true
	s.queues[host] = append(s.queues[host], url)
	s.checkInvariantLocked()
	return true, nil
}

func (s *memStore) Dequeue(_ context.Context, host string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	queue := s.queues[host]
	if len(queue) == 0 {
		return "", false, nil
	}
	url := queue[0]
	s.queues[host] = queue[1:]
	delete(s.pending, url)
	return url, true, nil
}

func (s *memStore) MarkVisited(_ context.Context, host, url string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.visited[url] {
		return false, nil
	}
	s.visited[url] = true
	s.checkInvariantLocked()
	return true, nil
}

func (s *memStore) MarkBlocked(_ context.Context, host, url, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.blocked[url]; !exists {
		s.blocked[url] = reason
	}
	return nil
}

func (s *memStore) StorePage(_ context.Context, host, url, html, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.pages[url]; !exists {
		s.pages[url] = html
	}
	return nil
}

func (s *memStore) Stats(_ context.Context, host string) (FrontierStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FrontierStats{
		Pending: int64(len(s.queues[host])),
		Crawled: int64(len(s.visited)),
		Blocked: int64(len(s.blocked)),
		Pages:   int64(len(s.pages)),
	}, nil
}

func (s *memStore) hasPage(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pages[url]
	return ok
}

func (s *memStore) isVisited(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visited[url]
}

func (s *memStore) blockReason(url string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reason, ok := s.blocked[url]
	return reason, ok
}

func (s *memStore) queueLen(host string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queues[host])
}

func (s *memStore) domainStatus(host string) models.DomainStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.domains[host]; ok {
		return d.Status
	}
	return -1
}

// seedState lets tests pre-populate store state as if a previous crawl
// session wrote it.
func (s *memStore) seedState(host string, pending []string, visited []string, pages map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, url := range pending {
		s.pending[url] = true
		s.queues[host] = append(s.queues[host], url)
	}
	for _, url := range visited {
		s.visited[url] = true
	}
	for url, html := range pages {
		s.pages[url] = html
	}
}

// stubFetcher serves canned documents and records every fetch call.
type stubFetcher struct {
	mu    sync.Mutex
	docs  map[string]string
	fails map[string]error
	calls []string
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{
		docs:  make(map[string]string),
		fails: make(map[string]error),
	}
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (Document, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()

	if err, ok := f.fails[url]; ok {
		return Document{}, err
	}
	if html, ok := f.docs[url]; ok {
		return Document{URL: url, Body: []byte(html)}, nil
	}
	return Document{}, &FetchError{Kind: FetchNonSuccessStatus, URL: url, StatusCode: 404}
}

func (f *stubFetcher) fetchCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == url {
			n++
		}
	}
	return n
}

func (f *stubFetcher) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// stubOracle denies exactly the listed URLs.
type stubOracle struct {
	denied map[string]bool
}

func (o *stubOracle) Allows(url string) bool {
	return !o.denied[url]
}

// stubPolicyLoader hands out a fixed oracle and counts loads.
type stubPolicyLoader struct {
	mu     sync.Mutex
	oracle PermissionOracle
	loads  int
}

func newStubPolicyLoader(oracle PermissionOracle) *stubPolicyLoader {
	if oracle == nil {
		oracle = &stubOracle{}
	}
	return &stubPolicyLoader{oracle: oracle}
}

func (l *stubPolicyLoader) Load(context.Context, string) PermissionOracle {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loads++
	return l.oracle
}
