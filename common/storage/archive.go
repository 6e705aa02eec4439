package storage

import (
	"context"
	"crypto/sha256"
	"fmt"
)

// PageArchive stores raw page HTML in blob storage, one object per URL. The
// object name hashes the URL so arbitrary paths cannot produce invalid or
// colliding object keys.
type PageArchive struct {
	storage StorageService
	bucket  string
}

// NewPageArchive creates a page archive writing to the given bucket
func NewPageArchive(storage StorageService, bucket string) *PageArchive {
	return &PageArchive{
		storage: storage,
		bucket:  bucket,
	}
}

// ArchivePage implements crawler.PageArchiver
func (a *PageArchive) ArchivePage(ctx context.Context, host, url string, html []byte) (string, error) {
	objectName := fmt.Sprintf("pages/%s/%x.html", host, sha256.Sum256([]byte(url)))
	link, err := a.storage.Upload(ctx, a.bucket, objectName, html, "text/html; charset=utf-8")
	if err != nil {
		return "", fmt.Errorf("archiving page %s: %w", url, err)
	}
	return link, nil
}
