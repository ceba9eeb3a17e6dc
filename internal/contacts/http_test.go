// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

package contacts_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolodex-app/rolodex/internal/contacts"
	"github.com/rolodex-app/rolodex/internal/platform/ctxutil"
	"github.com/rolodex-app/rolodex/internal/platform/sec"
)

// # Helpers

func newContactRouter() http.Handler {
	service, _ := newContactService()
	return contacts.NewHandler(service).Routes()
}

// authedRequest builds a request carrying an authenticated identity, the way
// the bearer middleware would have left it.
func authedRequest(method, target, body string) *http.Request {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")

	identity := &sec.Identity{
		UserID:    "user-1",
		Username:  "wade@example.com",
		Role:      sec.RoleUser,
		Confirmed: true,
	}
	return request.WithContext(ctxutil.WithIdentity(request.Context(), identity))
}

type contactBody struct {
	Data struct {
		ID       string     `json:"id"`
		Phone    string     `json:"phone"`
		Birthday *time.Time `json:"birthday"`
	} `json:"data"`
}

func decodeContact(t *testing.T, recorder *httptest.ResponseRecorder) contactBody {
	t.Helper()
	var body contactBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

// # Tests

/*
TestUpdateContact_BirthdayWireSemantics verifies the three birthday cases of a
partial update over the wire: an absent field keeps the stored value, an
explicit empty string clears it, and a malformed date is rejected.
*/
func TestUpdateContact_BirthdayWireSemantics(t *testing.T) {
	router := newContactRouter()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodPost, "/",
		`{"first_name":"Peter","last_name":"Parker","email":"peter.parker@example.com","birthday":"1962-08-10"}`))
	require.Equal(t, http.StatusCreated, recorder.Code)

	created := decodeContact(t, recorder)
	require.NotNil(t, created.Data.Birthday)
	contactPath := "/" + created.Data.ID

	// Absent field keeps the stored birthday.
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodPut, contactPath, `{"phone":"+1-555-0199"}`))
	require.Equal(t, http.StatusOK, recorder.Code)

	updated := decodeContact(t, recorder)
	assert.Equal(t, "+1-555-0199", updated.Data.Phone)
	require.NotNil(t, updated.Data.Birthday)
	assert.Equal(t, "1962-08-10", updated.Data.Birthday.Format("2006-01-02"))

	// Explicit empty string clears it.
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodPut, contactPath, `{"birthday":""}`))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, decodeContact(t, recorder).Data.Birthday)

	// Malformed date is rejected.
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodPut, contactPath, `{"birthday":"10/08/1962"}`))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
