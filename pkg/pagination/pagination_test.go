// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rolodex-app/rolodex/pkg/pagination"
)

/*
TestFromRequest_Defaults verifies that missing query parameters fall back
to the documented defaults.
*/
func TestFromRequest_Defaults(t *testing.T) {
	request := httptest.NewRequest("GET", "/contacts", nil)

	params := pagination.FromRequest(request)

	assert.Equal(t, pagination.DefaultPage, params.Page)
	assert.Equal(t, pagination.DefaultLimit, params.Limit)
}

/*
TestFromRequest_Clamping verifies that out-of-range values are clamped.
*/
func TestFromRequest_Clamping(t *testing.T) {
	request := httptest.NewRequest("GET", "/contacts?page=-3&limit=5000", nil)

	params := pagination.FromRequest(request)

	assert.Equal(t, pagination.DefaultPage, params.Page)
	assert.Equal(t, pagination.DefaultLimit, params.Limit)
}

/*
TestOffset verifies SQL offset derivation from page and limit.
*/
func TestOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, pagination.Params{Page: 3, Limit: 20}.Offset())
}

/*
TestNewMeta verifies total-page arithmetic including partial last pages.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 20, 41)

	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 41, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
}
