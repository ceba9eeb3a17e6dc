// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

/*
Package account implements the authenticated self-service profile surface.

It covers the read side of an account (the /me endpoint) and profile
mutations that do not touch credentials, currently avatar uploads backed by
object storage.

# Architecture

Credential and session logic stays in the auth package; this package only
ever operates on the already-authenticated bearer taken from the request
context.
*/
package account

import "time"

// # Domain Entities

// Account is the profile view of a registered user.
type Account struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Confirmed bool      `json:"confirmed"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldAvatar    = "avatar"
	FieldAvatarURL = "avatar_url"
	FieldMessage   = "message"
)
