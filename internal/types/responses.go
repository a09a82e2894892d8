// Package types holds the request and response shapes shared across the API
// surface.
package types

import "github.com/emotu/micro-cloud/internal/api/query"

// ListResponse is the standard envelope returned by generated list
// endpoints.
type ListResponse struct {
	FilterBy map[string]query.FilterClause `json:"filter_by"`
	Query    string                        `json:"query,omitempty"`
	View     string                        `json:"view,omitempty"`
	SortBy   []query.SortByEntry           `json:"sort_by"`
	PageBy   query.PageByEntry             `json:"page_by"`
	Results  interface{}                   `json:"results"`
}

// StatusResponse is the acknowledgment returned by delete and other
// fire-and-forget operations.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// APIInfo describes the running service on the root endpoint.
type APIInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
