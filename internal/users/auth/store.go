// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

package auth

import (
	"context"
	"time"

	"github.com/rolodex-app/rolodex/internal/platform/sec"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures (including unique constraint conflicts)
	*/
	Create(context context.Context, user *User) error

	/*
		MarkConfirmed flips the account's confirmed flag to true.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - error: Persistence failures
	*/
	MarkConfirmed(context context.Context, username string) error
}

// # Session Cache Access

// SessionCacheRepository defines the contract for the volatile session cache.
//
// The cache stores identity snapshots keyed by a fingerprint of the bearer
// token. Entries expire on their own; a hit spares the service a durable
// round trip on every authenticated request.
type SessionCacheRepository interface {

	/*
		Put stores the identity snapshot for a bearer token with a TTL.

		Description: Overwrites any existing entry under the same token.

		Parameters:
		  - context: context.Context
		  - token: string (raw bearer token, fingerprinted internally)
		  - identity: *sec.Identity
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Put(context context.Context, token string, identity *sec.Identity, ttl time.Duration) error

	/*
		Get retrieves the identity snapshot for a bearer token.

		Description: Returns apperr.NotFound if the entry is absent or expired.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - *sec.Identity: Cached snapshot
		  - error: apperr.NotFound or connectivity errors
	*/
	Get(context context.Context, token string) (*sec.Identity, error)
}

// # Security Contracts

// TokenProvider defines the contract for issuing and verifying signed tokens.
type TokenProvider interface {

	// IssueToken creates a signed token for the subject, scoped to a purpose.
	IssueToken(subject string, purpose sec.TokenPurpose, timeToLive time.Duration) (string, error)

	// VerifyToken checks signature, expiry, and purpose of a token string.
	VerifyToken(tokenString string, purpose sec.TokenPurpose) (*sec.AuthClaims, error)
}

// ConfirmationSender delivers the email-confirmation link after signup.
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, username, address, token string) error
}
