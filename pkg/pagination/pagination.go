// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination parses page/limit query parameters and builds the
// "meta" block of list responses.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the offer list page size when the query names none.
	DefaultLimit = 60

	// MaxLimit caps a single page.
	MaxLimit = 100

	// DefaultPage is the first page; pages are 1-indexed.
	DefaultPage = 1
)

// Params is a resolved page request.
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of rows skipped before the page starts.
func (p Params) Offset() int {
	return max(p.Page-1, 0) * p.Limit
}

// Meta describes a page inside the full result set.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta derives TotalPages from total and limit.
func NewMeta(page, limit, total int) Meta {
	meta := Meta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		meta.TotalPages = (total + limit - 1) / limit
	}
	return meta
}

// FromRequest reads "page" and "limit".
//
// A missing or malformed page falls back to [DefaultPage]. A missing or
// malformed limit falls back to [DefaultLimit]; a limit above [MaxLimit] is
// clamped to it.
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit, err := strconv.Atoi(query.Get("limit"))
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: min(limit, MaxLimit)}
}
