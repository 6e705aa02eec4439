package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func robotsServer(t *testing.T, robotsBody string, robotsStatus int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(robotsStatus)
		w.Write([]byte(robotsBody))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRobotsPolicyDeniesListedPaths(t *testing.T) {
	srv := robotsServer(t, "User-agent: *\nDisallow: /private/\n", http.StatusOK)

	loader := NewRobotsPolicyLoader(DefaultConfig())
	oracle := loader.Load(context.Background(), srv.URL+"/")

	if !oracle.Allows(srv.URL + "/public/page") {
		t.Error("expected /public/page to be allowed")
	}
	if oracle.Allows(srv.URL + "/private/page") {
		t.Error("expected /private/page to be denied")
	}
}

func TestRobotsPolicyMissingAllowsAll(t *testing.T) {
	srv := robotsServer(t, "not found", http.StatusNotFound)

	loader := NewRobotsPolicyLoader(DefaultConfig())
	oracle := loader.Load(context.Background(), srv.URL+"/")

	if !oracle.Allows(srv.URL + "/anything") {
		t.Error("a missing robots.txt must allow everything")
	}
}

func TestRobotsPolicyServerErrorAllowsAll(t *testing.T) {
	srv := robotsServer(t, "boom", http.StatusInternalServerError)

	loader := NewRobotsPolicyLoader(DefaultConfig())
	oracle := loader.Load(context.Background(), srv.URL+"/")

	if !oracle.Allows(srv.URL + "/anything") {
		t.Error("a failing robots.txt endpoint must allow everything")
	}
}

func TestRobotsPolicyUnreachableHostAllowsAll(t *testing.T) {
	loader := NewRobotsPolicyLoader(DefaultConfig())
	oracle := loader.Load(context.Background(), "http://127.0.0.1:1/")

	if !oracle.Allows("http://127.0.0.1:1/page") {
		t.Error("an unreachable robots.txt must allow everything")
	}
}

func TestRobotsPolicyBadRootURLAllowsAll(t *testing.T) {
	loader := NewRobotsPolicyLoader(DefaultConfig())
	oracle := loader.Load(context.Background(), "::not-a-url")

	if !oracle.Allows("http://site.test/page") {
		t.Error("an unusable root URL must fall back to allow-all")
	}
}

func TestRobotsPolicyAgentSpecificRules(t *testing.T) {
	srv := robotsServer(t, "User-agent: coast-crawler\nDisallow: /internal/\n\nUser-agent: *\nDisallow:\n", http.StatusOK)

	cfg := DefaultConfig()
	cfg.UserAgent = "coast-crawler/1.0"
	loader := NewRobotsPolicyLoader(cfg)
	oracle := loader.Load(context.Background(), srv.URL+"/")

	if oracle.Allows(srv.URL + "/internal/secret") {
		t.Error("expected agent-specific disallow to apply")
	}
	if !oracle.Allows(srv.URL + "/open") {
		t.Error("expected paths outside the disallow to be allowed")
	}
}
