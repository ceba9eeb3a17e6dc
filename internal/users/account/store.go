// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

package account

import (
	"context"
	"io"
)

// # Account Data Access

// AccountRepository defines the data access contract for profile reads and
// non-credential mutations.
type AccountRepository interface {

	/*
		FindByUsername returns the profile view of an account.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *Account: Hydrated profile
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*Account, error)

	/*
		UpdateAvatar persists a new avatar URL on the account.

		Parameters:
		  - context: context.Context
		  - username: string
		  - avatarURL: string

		Returns:
		  - error: Persistence failures
	*/
	UpdateAvatar(context context.Context, username, avatarURL string) error
}

// # Storage Contracts

// AvatarUploader pushes avatar image bytes to object storage.
type AvatarUploader interface {

	// UploadAvatar stores the body under a per-user key and returns the
	// public URL of the uploaded object.
	UploadAvatar(ctx context.Context, username string, body io.Reader, contentType string) (string, error)
}
