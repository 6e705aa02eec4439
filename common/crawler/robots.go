package crawler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/coastlabs/coast-crawler/common"
	"github.com/rs/zerolog/log"
	"github.com/temoto/robotstxt"
)

// RobotsPolicyLoader loads the robots.txt policy for a host. Any failure to
// fetch or parse the policy resource yields an allow-all oracle: a missing or
// broken robots.txt must never block a crawl.
type RobotsPolicyLoader struct {
	client    *http.Client
	userAgent string
}

// NewRobotsPolicyLoader creates a policy loader from the crawl configuration
func NewRobotsPolicyLoader(cfg Config) *RobotsPolicyLoader {
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().FetchTimeout
	}
	return &RobotsPolicyLoader{
		client:    &http.Client{Timeout: timeout},
		userAgent: cfg.UserAgent,
	}
}

// Load fetches robots.txt from the origin of rootURL once. The returned
// oracle is immutable and reused for every URL of the domain's crawl session.
func (l *RobotsPolicyLoader) Load(ctx context.Context, rootURL string) PermissionOracle {
	root, err := url.Parse(rootURL)
	if err != nil || root.Host == "" {
		log.Warn().Str("url", rootURL).Msg("Cannot derive robots.txt origin, allowing all")
		return allowAllOracle{}
	}

	robotsURL := root.Scheme + "://" + root.Host + common.RobotsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return allowAllOracle{}
	}
	if l.userAgent != "" {
		req.Header.Set("User-Agent", l.userAgent)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		log.Debug().Str("robots", robotsURL).Err(err).Msg("robots.txt unreachable, allowing all")
		return allowAllOracle{}
	}
	defer resp.Body.Close()

	// Anything but a parseable 2xx counts as a missing policy resource, and a
	// missing policy allows everything.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debug().Str("robots", robotsURL).Int("status", resp.StatusCode).Msg("No robots.txt policy, allowing all")
		return allowAllOracle{}
	}

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		log.Debug().Str("robots", robotsURL).Err(err).Msg("robots.txt unparseable, allowing all")
		return allowAllOracle{}
	}

	log.Info().Str("host", root.Host).Msg("Loaded robots.txt policy")
	return &robotsOracle{data: data, agent: l.userAgent}
}

type robotsOracle struct {
	data  *robotstxt.RobotsData
	agent string
}

func (o *robotsOracle) Allows(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return true
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	return o.data.TestAgent(path, o.agent)
}

type allowAllOracle struct{}

func (allowAllOracle) Allows(string) bool { return true }
