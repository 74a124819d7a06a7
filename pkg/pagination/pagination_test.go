// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/sixcities/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"", 1, pagination.DefaultLimit, 0},
		{"?page=3&limit=10", 3, 10, 20},
		{"?page=0&limit=-4", 1, pagination.DefaultLimit, 0},
		{"?page=two&limit=ten", 1, pagination.DefaultLimit, 0},
		{"?page=2&limit=5000", 2, pagination.MaxLimit, pagination.MaxLimit},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			params := pagination.FromRequest(httptest.NewRequest("GET", "/offers"+tc.query, nil))
			assert.Equal(t, tc.wantPage, params.Page)
			assert.Equal(t, tc.wantLimit, params.Limit)
			assert.Equal(t, tc.wantOffset, params.Offset())
		})
	}
}

func TestNewMeta(t *testing.T) {
	assert.Equal(t, pagination.Meta{Page: 1, Limit: 60, Total: 121, TotalPages: 3}, pagination.NewMeta(1, 60, 121))
	assert.Equal(t, 0, pagination.NewMeta(1, 60, 0).TotalPages)
}
