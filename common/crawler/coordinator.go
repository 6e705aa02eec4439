package crawler

import (
	"context"
	"fmt"
	"net/url"

	"github.com/coastlabs/coast-crawler/common/work"
	"github.com/rs/zerolog/log"
)

// Coordinator registers seed domains and drives every PENDING domain's
// frontier to completion. This is the resumability seam: a process restart
// re-enters Run, finds any domain still PENDING (including one that died
// mid-crawl, since per-URL state lives in the store) and resumes its frontier
// instead of restarting it.
type Coordinator struct {
	store   FrontierStore
	engine  *Engine
	workers int
}

// NewCoordinator creates a crawl coordinator. workers controls how many
// domains are crawled in parallel; distinct domains share no mutable state
// beyond the store, so they need no extra coordination. Each domain itself is
// still crawled sequentially.
func NewCoordinator(store FrontierStore, engine *Engine, workers int) *Coordinator {
	if workers < 1 {
		workers = 1
	}
	return &Coordinator{
		store:   store,
		engine:  engine,
		workers: workers,
	}
}

// RegisterSeeds registers each seed URL's host as a PENDING domain.
// Registration is idempotent: a host that already exists, in whatever status,
// is left untouched, so re-running with the same seeds never re-crawls a
// completed domain.
func (c *Coordinator) RegisterSeeds(ctx context.Context, seeds []string) error {
	for _, seed := range seeds {
		u, err := url.Parse(seed)
		if err != nil || u.Hostname() == "" {
			log.Warn().Str("seed", seed).Msg("Skipping seed with no usable host")
			continue
		}
		if err := c.store.RegisterDomain(ctx, u.Hostname(), seed); err != nil {
			return fmt.Errorf("registering seed %s: %w", seed, err)
		}
	}
	return nil
}

// Run registers the seeds and crawls until no PENDING domain remains. A
// domain whose crawl fails is logged and skipped for the rest of this run; it
// stays PENDING in the store and will be picked up again on the next start.
func (c *Coordinator) Run(ctx context.Context, seeds []string) error {
	if err := c.RegisterSeeds(ctx, seeds); err != nil {
		return err
	}

	failed := make(map[string]bool)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		pending, err := c.store.PendingDomains(ctx)
		if err != nil {
			return fmt.Errorf("listing pending domains: %w", err)
		}

		var runnable []DomainRecord
		for _, d := range pending {
			if !failed[d.Host] {
				runnable = append(runnable, d)
			}
		}
		if len(runnable) == 0 {
			break
		}

		for host, runErr := range c.runBatch(ctx, runnable) {
			if runErr != nil {
				failed[host] = true
				log.Error().Str("host", host).Err(runErr).Msg("Domain crawl failed, leaving PENDING")
				continue
			}
			if err := c.store.MarkDomainCrawled(ctx, host); err != nil {
				failed[host] = true
				log.Error().Str("host", host).Err(err).Msg("Failed to mark domain crawled")
				continue
			}
			log.Info().Str("host", host).Msg("Domain crawled")
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d domain(s) left pending after crawl", len(failed))
	}
	return nil
}

// runBatch crawls the given domains, fanning out over the worker pool when
// more than one worker is configured.
func (c *Coordinator) runBatch(ctx context.Context, domains []DomainRecord) map[string]error {
	results := make(map[string]error, len(domains))

	if c.workers == 1 || len(domains) == 1 {
		for _, d := range domains {
			results[d.Host] = c.engine.RunDomain(ctx, d.Host, d.RootURL)
		}
		return results
	}

	pool, err := work.NewPool(c.workers, len(domains))
	if err != nil {
		// Fall back to sequential crawling on a bad pool configuration.
		for _, d := range domains {
			results[d.Host] = c.engine.RunDomain(ctx, d.Host, d.RootURL)
		}
		return results
	}

	pool.Start(ctx, "domain-crawl")
	defer pool.Stop()

	for _, d := range domains {
		domain := d
		if err := pool.Submit(ctx, work.Job{
			ID: domain.Host,
			Run: func(ctx context.Context) error {
				return c.engine.RunDomain(ctx, domain.Host, domain.RootURL)
			},
		}); err != nil {
			results[domain.Host] = err
		}
	}

	for len(results) < len(domains) {
		select {
		case <-ctx.Done():
			for _, d := range domains {
				if _, ok := results[d.Host]; !ok {
					results[d.Host] = ctx.Err()
				}
			}
			return results
		case res := <-pool.Results():
			results[res.JobID] = res.Err
		}
	}
	return results
}
