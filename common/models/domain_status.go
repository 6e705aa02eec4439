package models

// DomainStatus represents the crawl status of a seed domain
type DomainStatus int16

const (
	// DomainStatusPending indicates the domain is registered but its frontier
	// has not been drained yet
	DomainStatusPending DomainStatus = 0
	// DomainStatusCrawled indicates the domain's frontier has been fully drained
	DomainStatusCrawled DomainStatus = 1
)

// String returns the human-readable name of the status
func (s DomainStatus) String() string {
	switch s {
	case DomainStatusPending:
		return "PENDING"
	case DomainStatusCrawled:
		return "CRAWLED"
	default:
		return "UNKNOWN"
	}
}
