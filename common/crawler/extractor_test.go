package crawler

import (
	"testing"

	"github.com/samber/lo"
)

func extract(t *testing.T, pageURL, html string) []string {
	t.Helper()
	return NewHTMLLinkExtractor().ExtractLinks(Document{URL: pageURL, Body: []byte(html)})
}

func TestExtractLinksResolvesRelative(t *testing.T) {
	links := extract(t, "http://site.test/dir/page", `<html><body>
		<a href="/abs">abs</a>
		<a href="sibling">sibling</a>
		<a href="../up">up</a>
		<a href="http://other.test/x">external</a>
	</body></html>`)

	want := []string{
		"http://site.test/abs",
		"http://site.test/dir/sibling",
		"http://site.test/up",
		"http://other.test/x",
	}
	if len(links) != len(want) {
		t.Fatalf("expected %d links, got %d: %v", len(want), len(links), links)
	}
	for _, w := range want {
		if !lo.Contains(links, w) {
			t.Errorf("expected %s in extracted links %v", w, links)
		}
	}
}

func TestExtractLinksStripsFragments(t *testing.T) {
	links := extract(t, "http://site.test/", `<html><body>
		<a href="/page#top">top</a>
		<a href="/page#bottom">bottom</a>
		<a href="#here">same page</a>
	</body></html>`)

	if len(links) != 1 || links[0] != "http://site.test/page" {
		t.Errorf("expected fragment variants to dedup to one link, got %v", links)
	}
}

func TestExtractLinksSkipsNonHTTPSchemes(t *testing.T) {
	links := extract(t, "http://site.test/", `<html><body>
		<a href="mailto:someone@site.test">mail</a>
		<a href="javascript:void(0)">js</a>
		<a href="tel:+123456">call</a>
		<a href="ftp://files.site.test/a">ftp</a>
		<a href="/ok">ok</a>
	</body></html>`)

	if len(links) != 1 || links[0] != "http://site.test/ok" {
		t.Errorf("expected only the http link, got %v", links)
	}
}

func TestExtractLinksMalformedHTML(t *testing.T) {
	links := extract(t, "http://site.test/", `<html><body><a href="/a">unterminated<div><a href="/b"`)

	if !lo.Contains(links, "http://site.test/a") {
		t.Errorf("expected best-effort extraction from malformed markup, got %v", links)
	}
}

func TestExtractLinksEmptyDocument(t *testing.T) {
	if links := extract(t, "http://site.test/", ""); len(links) != 0 {
		t.Errorf("expected no links from an empty document, got %v", links)
	}
}

func TestExtractLinksBadDocumentURL(t *testing.T) {
	if links := extract(t, "::broken", `<a href="/a">a</a>`); links != nil {
		t.Errorf("expected nil for an unparseable document URL, got %v", links)
	}
}
