package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/coastlabs/coast-crawler/common/crawler"
	"github.com/coastlabs/coast-crawler/common/db"
	"github.com/coastlabs/coast-crawler/common/models"
	"github.com/coastlabs/coast-crawler/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog/log"
	"github.com/samber/mo"
)

// FrontierStore is the PostgreSQL implementation of crawler.FrontierStore.
// Uniqueness lives in the schema (primary keys on URL columns) so every
// mutation here is a single idempotent statement; there are no find-then-
// insert sequences to race on. When Redis is configured it is consulted as a
// seen-set fast path, written strictly after the durable write so the cache
// is always a subset of the truth.
type FrontierStore struct {
	db *db.DB
}

// NewFrontierStore creates a frontier store backed by the given database
func NewFrontierStore(database *db.DB) *FrontierStore {
	return &FrontierStore{db: database}
}

// RegisterDomain registers a host as PENDING; existing hosts are untouched
func (s *FrontierStore) RegisterDomain(ctx context.Context, host, rootURL string) error {
	rows, err := s.db.Queries.CreateDomain(ctx, repository.CreateDomainParams{
		Host:    host,
		Status:  int16(models.DomainStatusPending),
		RootUrl: rootURL,
	})
	if err != nil {
		return fmt.Errorf("registering domain %s: %w", host, err)
	}
	if rows == 0 {
		log.Debug().Str("host", host).Msg("Domain already registered")
	}
	return nil
}

// PendingDomains lists domains still awaiting a full crawl
func (s *FrontierStore) PendingDomains(ctx context.Context) ([]crawler.DomainRecord, error) {
	domains, err := s.db.Queries.ListDomainsByStatus(ctx, int16(models.DomainStatusPending))
	if err != nil {
		return nil, fmt.Errorf("listing pending domains: %w", err)
	}
	records := make([]crawler.DomainRecord, 0, len(domains))
	for _, d := range domains {
		records = append(records, crawler.DomainRecord{
			Host:    d.Host,
			RootURL: d.RootUrl,
			Status:  models.DomainStatus(d.Status),
		})
	}
	return records, nil
}

// MarkDomainCrawled flips a domain to CRAWLED
func (s *FrontierStore) MarkDomainCrawled(ctx context.Context, host string) error {
	err := s.db.Queries.UpdateDomainStatus(ctx, repository.UpdateDomainStatusParams{
		Host:   host,
		Status: int16(models.DomainStatusCrawled),
	})
	if err != nil {
		return fmt.Errorf("marking domain %s crawled: %w", host, err)
	}
	return nil
}

// Enqueue adds a URL to the pending queue unless already pending, visited,
// or blocked. The exclusion check and the insert are one statement, so
// concurrent enqueues of the same URL cannot both succeed.
func (s *FrontierStore) Enqueue(ctx context.Context, host, url string) (bool, error) {
	if s.db.Redis != nil {
		seen, err := s.db.Redis.WasSeen(ctx, url)
		if err == nil && seen {
			return false, nil
		}
	}

	rows, err := s.db.Queries.EnqueueFrontierUrl(ctx, repository.EnqueueFrontierUrlParams{
		Url:  url,
		Host: host,
	})
	if err != nil {
		return false, fmt.Errorf("enqueueing %s: %w", url, err)
	}
	return rows > 0, nil
}

// Dequeue pops the oldest pending URL for a host
func (s *FrontierStore) Dequeue(ctx context.Context, host string) (string, bool, error) {
	url, err := s.db.Queries.DequeueFrontierUrl(ctx, host)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("dequeueing for %s: %w", host, err)
	}
	return url, true, nil
}

// MarkVisited records a URL as visited, reporting whether it was the first visit
func (s *FrontierStore) MarkVisited(ctx context.Context, host, url string) (bool, error) {
	rows, err := s.db.Queries.MarkUrlCrawled(ctx, repository.MarkUrlCrawledParams{
		Url:  url,
		Host: host,
	})
	if err != nil {
		return false, fmt.Errorf("marking %s visited: %w", url, err)
	}
	s.cacheSeen(ctx, url)
	return rows > 0, nil
}

// MarkBlocked records a policy-denied URL
func (s *FrontierStore) MarkBlocked(ctx context.Context, host, url, reason string) error {
	_, err := s.db.Queries.CreateBlockedUrl(ctx, repository.CreateBlockedUrlParams{
		Url:    url,
		Host:   host,
		Reason: reason,
	})
	if err != nil {
		return fmt.Errorf("marking %s blocked: %w", url, err)
	}
	s.cacheSeen(ctx, url)
	return nil
}

// StorePage stores fetched page content; duplicate inserts are ignored
func (s *FrontierStore) StorePage(ctx context.Context, host, url, html, archiveLink string) error {
	link := pgtype.Text{String: archiveLink, Valid: archiveLink != ""}
	_, err := s.db.Queries.CreatePage(ctx, repository.CreatePageParams{
		Url:         url,
		Host:        host,
		Html:        html,
		ArchiveLink: link,
	})
	if err != nil {
		return fmt.Errorf("storing page %s: %w", url, err)
	}
	return nil
}

// Stats returns the frontier counters for a host
func (s *FrontierStore) Stats(ctx context.Context, host string) (crawler.FrontierStats, error) {
	var stats crawler.FrontierStats
	var err error

	if stats.Pending, err = s.db.Queries.CountFrontierUrls(ctx, host); err != nil {
		return stats, fmt.Errorf("counting frontier for %s: %w", host, err)
	}
	if stats.Crawled, err = s.db.Queries.CountCrawledUrls(ctx, host); err != nil {
		return stats, fmt.Errorf("counting crawled for %s: %w", host, err)
	}
	if stats.Blocked, err = s.db.Queries.CountBlockedUrls(ctx, host); err != nil {
		return stats, fmt.Errorf("counting blocked for %s: %w", host, err)
	}
	if stats.Pages, err = s.db.Queries.CountPages(ctx, host); err != nil {
		return stats, fmt.Errorf("counting pages for %s: %w", host, err)
	}
	return stats, nil
}

// GetDomain looks up a domain record; None when the host is unknown
func (s *FrontierStore) GetDomain(ctx context.Context, host string) (mo.Option[repository.Domain], error) {
	domain, err := s.db.Queries.GetDomain(ctx, host)
	if errors.Is(err, pgx.ErrNoRows) {
		return mo.None[repository.Domain](), nil
	}
	if err != nil {
		return mo.None[repository.Domain](), fmt.Errorf("getting domain %s: %w", host, err)
	}
	return mo.Some(domain), nil
}

// ListDomains lists every registered domain
func (s *FrontierStore) ListDomains(ctx context.Context) ([]repository.Domain, error) {
	return s.db.Queries.ListDomains(ctx)
}

func (s *FrontierStore) cacheSeen(ctx context.Context, url string) {
	if s.db.Redis == nil {
		return
	}
	if err := s.db.Redis.MarkSeen(ctx, url); err != nil {
		log.Debug().Str("url", url).Err(err).Msg("Failed to update seen cache")
	}
}
