package crawler

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// HTMLLinkExtractor extracts anchor targets from HTML documents, resolving
// relative references against the document URL.
type HTMLLinkExtractor struct{}

// NewHTMLLinkExtractor creates a link extractor
func NewHTMLLinkExtractor() *HTMLLinkExtractor {
	return &HTMLLinkExtractor{}
}

// ExtractLinks returns the set of absolute http(s) URLs linked from the
// document. Fragments are stripped so anchors on the same page dedup to one
// URL. Malformed markup yields whatever goquery could still parse.
func (x *HTMLLinkExtractor) ExtractLinks(doc Document) []string {
	base, err := url.Parse(doc.URL)
	if err != nil {
		log.Debug().Str("url", doc.URL).Err(err).Msg("Unparseable document URL, skipping extraction")
		return nil
	}

	parsed, err := goquery.NewDocumentFromReader(bytes.NewReader(doc.Body))
	if err != nil {
		log.Debug().Str("url", doc.URL).Err(err).Msg("Failed to parse document, no links extracted")
		return nil
	}

	var links []string
	parsed.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "tel:") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return
		}
		abs.Fragment = ""
		links = append(links, abs.String())
	})

	return lo.Uniq(links)
}
