package crawler

import (
	"context"
	"testing"

	"github.com/coastlabs/coast-crawler/common/models"
)

func TestCoordinatorRunCrawlsSeedDomains(t *testing.T) {
	store := newMemStore()
	fetcher := newStubFetcher()
	fetcher.docs[testRoot] = `<html><body><a href="/a">a</a></body></html>`
	fetcher.docs["http://site.test/a"] = `<html></html>`

	coordinator := NewCoordinator(store, newTestEngine(store, fetcher, nil), 1)
	if err := coordinator.Run(context.Background(), []string{testRoot}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if got := store.domainStatus(testHost); got != models.DomainStatusCrawled {
		t.Errorf("expected domain status CRAWLED, got %s", got)
	}
	if !store.hasPage(testRoot) || !store.hasPage("http://site.test/a") {
		t.Error("expected both pages to be stored")
	}
}

func TestCoordinatorRunSkipsCrawledDomain(t *testing.T) {
	store := newMemStore()
	if err := store.RegisterDomain(context.Background(), testHost, testRoot); err != nil {
		t.Fatal(err)
	}
	if err := store.MarkDomainCrawled(context.Background(), testHost); err != nil {
		t.Fatal(err)
	}

	fetcher := newStubFetcher()
	coordinator := NewCoordinator(store, newTestEngine(store, fetcher, nil), 1)
	if err := coordinator.Run(context.Background(), []string{testRoot}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if got := fetcher.totalCalls(); got != 0 {
		t.Errorf("a CRAWLED domain must not be re-crawled, saw %d fetches", got)
	}
	if got := store.domainStatus(testHost); got != models.DomainStatusCrawled {
		t.Errorf("expected domain status to stay CRAWLED, got %s", got)
	}
}

func TestCoordinatorRunResumesPendingDomainWithoutSeeds(t *testing.T) {
	store := newMemStore()
	if err := store.RegisterDomain(context.Background(), testHost, testRoot); err != nil {
		t.Fatal(err)
	}
	// Mid-crawl state left behind by a crashed session.
	store.seedState(testHost,
		[]string{"http://site.test/a"},
		[]string{testRoot},
		map[string]string{testRoot: "<html></html>"},
	)

	fetcher := newStubFetcher()
	fetcher.docs["http://site.test/a"] = `<html></html>`

	coordinator := NewCoordinator(store, newTestEngine(store, fetcher, nil), 1)
	if err := coordinator.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if got := fetcher.fetchCount(testRoot); got != 0 {
		t.Errorf("resume must not re-fetch visited URLs, saw %d fetches of the root", got)
	}
	if !store.hasPage("http://site.test/a") {
		t.Error("expected the leftover pending URL to be crawled")
	}
	if got := store.domainStatus(testHost); got != models.DomainStatusCrawled {
		t.Errorf("expected domain status CRAWLED after resume, got %s", got)
	}
}

func TestCoordinatorRegisterSeedsSkipsUnusable(t *testing.T) {
	store := newMemStore()
	coordinator := NewCoordinator(store, newTestEngine(store, newStubFetcher(), nil), 1)

	seeds := []string{"not a url at all", "/relative/only", testRoot}
	if err := coordinator.RegisterSeeds(context.Background(), seeds); err != nil {
		t.Fatalf("RegisterSeeds returned error: %v", err)
	}

	pending, err := store.PendingDomains(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].Host != testHost {
		t.Errorf("expected only %s to be registered, got %v", testHost, pending)
	}
}

func TestCoordinatorRegisterSeedsIdempotent(t *testing.T) {
	store := newMemStore()
	coordinator := NewCoordinator(store, newTestEngine(store, newStubFetcher(), nil), 1)

	if err := coordinator.RegisterSeeds(context.Background(), []string{testRoot, testRoot}); err != nil {
		t.Fatalf("RegisterSeeds returned error: %v", err)
	}

	pending, err := store.PendingDomains(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 {
		t.Errorf("expected a single registration for %s, got %d", testHost, len(pending))
	}
}

func TestCoordinatorRunParallelDomains(t *testing.T) {
	store := newMemStore()
	fetcher := newStubFetcher()
	fetcher.docs["http://alpha.test/"] = `<html><body><a href="/a">a</a></body></html>`
	fetcher.docs["http://alpha.test/a"] = `<html></html>`
	fetcher.docs["http://beta.test/"] = `<html><body><a href="/b">b</a></body></html>`
	fetcher.docs["http://beta.test/b"] = `<html></html>`

	coordinator := NewCoordinator(store, newTestEngine(store, fetcher, nil), 4)
	seeds := []string{"http://alpha.test/", "http://beta.test/"}
	if err := coordinator.Run(context.Background(), seeds); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	for _, host := range []string{"alpha.test", "beta.test"} {
		if got := store.domainStatus(host); got != models.DomainStatusCrawled {
			t.Errorf("expected %s to be CRAWLED, got %s", host, got)
		}
	}
	for _, url := range []string{"http://alpha.test/a", "http://beta.test/b"} {
		if !store.hasPage(url) {
			t.Errorf("expected a stored page for %s", url)
		}
	}
	if len(store.invariantViolations) > 0 {
		t.Errorf("pending/visited overlap detected for: %v", store.invariantViolations)
	}
}
