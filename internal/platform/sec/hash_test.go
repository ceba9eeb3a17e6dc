// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolodex-app/rolodex/internal/platform/sec"
)

/*
TestHashPassword_Roundtrip verifies that a hashed password verifies against
its own plaintext and nothing else.
*/
func TestHashPassword_Roundtrip(t *testing.T) {
	digest, err := sec.HashPassword("12345678")
	require.NoError(t, err)

	// The digest must never contain the plaintext
	assert.NotContains(t, digest, "12345678")

	// 1. Correct password matches
	assert.True(t, sec.CheckPasswordHash("12345678", digest))

	// 2. Any other password does not
	assert.False(t, sec.CheckPasswordHash("12345679", digest))
	assert.False(t, sec.CheckPasswordHash("", digest))
}

/*
TestHashPassword_Salted verifies that two hashes of the same plaintext differ
(random salt) yet both verify.
*/
func TestHashPassword_Salted(t *testing.T) {
	first, err := sec.HashPassword("hunter22")
	require.NoError(t, err)

	second, err := sec.HashPassword("hunter22")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, sec.CheckPasswordHash("hunter22", first))
	assert.True(t, sec.CheckPasswordHash("hunter22", second))
}

/*
TestCheckPasswordHash_MalformedDigest verifies that verification over a
malformed digest returns false instead of panicking.
*/
func TestCheckPasswordHash_MalformedDigest(t *testing.T) {
	assert.False(t, sec.CheckPasswordHash("12345678", "not-a-bcrypt-digest"))
	assert.False(t, sec.CheckPasswordHash("12345678", ""))
}
