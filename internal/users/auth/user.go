// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

/*
Package auth implements the user identity and session management layer.

It defines the core domain entity (User) and the logic for registration,
credential verification, email confirmation, and bearer-token resolution
backed by a Redis session cache.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/rolodex-app/rolodex/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account on the Rolodex platform.
//
// The username doubles as the email address confirmation mail is sent to.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	Confirmed    bool         `json:"confirmed"`
	AvatarURL    string       `json:"avatar_url,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Snapshot returns the cache-safe public view of the account.
//
// The snapshot is what gets stored in the session cache and attached to the
// request context; it carries no secret material.
func (user *User) Snapshot() *sec.Identity {
	return &sec.Identity{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Confirmed: user.Confirmed,
		AvatarURL: user.AvatarURL,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername    = "username"
	FieldPassword    = "password"
	FieldToken       = "token"
	FieldNewUser     = "new_user"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresIn   = "expires_in"
	FieldMessage     = "message"
)
