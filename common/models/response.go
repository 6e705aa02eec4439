package models

import "time"

// BaseResponse is the envelope for all successful API responses
type BaseResponse struct {
	Data interface{} `json:"data"`
}

// ErrorResponse is the envelope for all error API responses
type ErrorResponse struct {
	Error string `json:"error"`
	Msg   string `json:"msg"`
}

// DomainStats holds the per-domain frontier counters
type DomainStats struct {
	Pending int64 `json:"pending"`
	Crawled int64 `json:"crawled"`
	Blocked int64 `json:"blocked"`
	Pages   int64 `json:"pages"`
}

// DomainResponse is the API representation of a seed domain
type DomainResponse struct {
	Host      string       `json:"host"`
	Status    string       `json:"status"`
	RootUrl   string       `json:"root_url"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Stats     *DomainStats `json:"stats,omitempty"`
}
