// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

package api_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolodex-app/rolodex/internal/api"
)

// countingRecorder counts WriteHeader calls so tests can prove the status
// line is committed exactly once.
type countingRecorder struct {
	*httptest.ResponseRecorder
	headerWrites int
}

func (recorder *countingRecorder) WriteHeader(statusCode int) {
	recorder.headerWrites++
	recorder.ResponseRecorder.WriteHeader(statusCode)
}

type readinessBody struct {
	Data struct {
		Status string `json:"status"`
		Checks []struct {
			Name  string `json:"name"`
			IsOK  bool   `json:"ok"`
			Error string `json:"error,omitempty"`
		} `json:"checks"`
	} `json:"data"`
}

/*
TestReadiness_AllHealthy verifies that passing dependency checks yield a
200 with the ready status.
*/
func TestReadiness_AllHealthy(t *testing.T) {
	_, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error { return nil },
		CheckCache:    func() error { return nil },
	}, slog.New(slog.DiscardHandler))

	recorder := &countingRecorder{ResponseRecorder: httptest.NewRecorder()}
	readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 1, recorder.headerWrites)

	var body readinessBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Data.Status)
	assert.Len(t, body.Data.Checks, 2)
}

/*
TestReadiness_DegradedDependency verifies that a failing dependency check
yields a 503 with the degraded status, and that the status line is written
exactly once.
*/
func TestReadiness_DegradedDependency(t *testing.T) {
	_, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error { return nil },
		CheckCache:    func() error { return errors.New("connection refused") },
	}, slog.New(slog.DiscardHandler))

	recorder := &countingRecorder{ResponseRecorder: httptest.NewRecorder()}
	readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, 1, recorder.headerWrites)

	var body readinessBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Data.Status)

	require.Len(t, body.Data.Checks, 2)
	assert.True(t, body.Data.Checks[0].IsOK)
	assert.False(t, body.Data.Checks[1].IsOK)
	assert.Equal(t, "redis", body.Data.Checks[1].Name)
}
