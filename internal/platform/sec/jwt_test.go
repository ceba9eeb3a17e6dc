// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

package sec_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolodex-app/rolodex/internal/platform/sec"
)

func newTokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService("test-secret-key", "HS256", "rolodex.test")
	require.NoError(t, err)
	return service
}

/*
TestTokenService_Constructor verifies the configuration guardrails: an empty
secret and a non-HMAC algorithm identifier are both rejected.
*/
func TestTokenService_Constructor(t *testing.T) {
	_, err := sec.NewTokenService("", "HS256", "rolodex.test")
	assert.Error(t, err)

	_, err = sec.NewTokenService("secret", "RS256", "rolodex.test")
	assert.Error(t, err)

	_, err = sec.NewTokenService("secret", "none", "rolodex.test")
	assert.Error(t, err)

	_, err = sec.NewTokenService("secret", "HS512", "rolodex.test")
	assert.NoError(t, err)
}

/*
TestTokenService_Roundtrip verifies that a freshly issued token returns its
claim fields when verified immediately.
*/
func TestTokenService_Roundtrip(t *testing.T) {
	service := newTokenService(t)

	token, err := service.IssueToken("deadpool", sec.PurposeSession, 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token, sec.PurposeSession)
	require.NoError(t, err)

	assert.Equal(t, "deadpool", claims.Subject)
	assert.Equal(t, sec.PurposeSession, claims.Purpose)
	assert.Equal(t, "rolodex.test", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

/*
TestTokenService_Expired verifies that a token past its lifetime fails with
the expiry diagnostic.
*/
func TestTokenService_Expired(t *testing.T) {
	service := newTokenService(t)

	token, err := service.IssueToken("deadpool", sec.PurposeSession, -1*time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token, sec.PurposeSession)
	assert.True(t, errors.Is(err, sec.ErrTokenExpired))
}

/*
TestTokenService_Tampered verifies that flipping any character of an issued
token causes verification to fail.
*/
func TestTokenService_Tampered(t *testing.T) {
	service := newTokenService(t)

	token, err := service.IssueToken("deadpool", sec.PurposeSession, 15*time.Minute)
	require.NoError(t, err)

	for _, position := range []int{0, len(token) / 2, len(token) - 1} {
		mutated := []byte(token)
		if mutated[position] == 'A' {
			mutated[position] = 'B'
		} else {
			mutated[position] = 'A'
		}

		_, err = service.VerifyToken(string(mutated), sec.PurposeSession)
		assert.True(t, errors.Is(err, sec.ErrTokenInvalid) || errors.Is(err, sec.ErrTokenExpired),
			"tampered token at position %d must not verify", position)
	}
}

/*
TestTokenService_WrongSecret verifies that a token signed by one service does
not verify against another secret.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	service := newTokenService(t)

	other, err := sec.NewTokenService("another-secret", "HS256", "rolodex.test")
	require.NoError(t, err)

	token, err := service.IssueToken("deadpool", sec.PurposeSession, 15*time.Minute)
	require.NoError(t, err)

	_, err = other.VerifyToken(token, sec.PurposeSession)
	assert.True(t, errors.Is(err, sec.ErrTokenInvalid))
}

/*
TestTokenService_PurposeMismatch verifies that a session token is rejected by
a verification call expecting a confirmation token, and vice versa.
*/
func TestTokenService_PurposeMismatch(t *testing.T) {
	service := newTokenService(t)

	sessionToken, err := service.IssueToken("deadpool", sec.PurposeSession, 15*time.Minute)
	require.NoError(t, err)

	confirmToken, err := service.IssueToken("deadpool", sec.PurposeEmailConfirm, 7*24*time.Hour)
	require.NoError(t, err)

	_, err = service.VerifyToken(sessionToken, sec.PurposeEmailConfirm)
	assert.True(t, errors.Is(err, sec.ErrTokenInvalid))

	_, err = service.VerifyToken(confirmToken, sec.PurposeSession)
	assert.True(t, errors.Is(err, sec.ErrTokenInvalid))
}

/*
TestTokenService_AlgorithmPinned verifies that a token signed with a different
HMAC variant is rejected by a service pinned to HS256.
*/
func TestTokenService_AlgorithmPinned(t *testing.T) {
	hs256 := newTokenService(t)

	hs512, err := sec.NewTokenService("test-secret-key", "HS512", "rolodex.test")
	require.NoError(t, err)

	token, err := hs512.IssueToken("deadpool", sec.PurposeSession, 15*time.Minute)
	require.NoError(t, err)

	_, err = hs256.VerifyToken(token, sec.PurposeSession)
	assert.True(t, errors.Is(err, sec.ErrTokenInvalid))
}
