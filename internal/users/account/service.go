// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

package account

import (
	"context"
	"fmt"
	"io"

	"github.com/rolodex-app/rolodex/internal/platform/apperr"
)

// errAvatarStorageDisabled is returned when no object storage is wired in.
var errAvatarStorageDisabled = apperr.ServiceUnavailable("Avatar storage is not configured")

// # Service Definition

// Service implements profile use cases for the authenticated account.
type Service struct {
	accountRepository AccountRepository
	avatarUploader    AvatarUploader
}

// NewService constructs a new [Service] with necessary dependencies.
//
// avatarUploader may be nil when no object storage is configured; avatar
// uploads then fail with a service-unavailable error while the rest of the
// profile surface keeps working.
func NewService(accountRepo AccountRepository, avatarUploader AvatarUploader) *Service {
	return &Service{
		accountRepository: accountRepo,
		avatarUploader:    avatarUploader,
	}
}

/*
GetProfile returns the durable profile view of the given account.

Description: Reads through to the database rather than trusting the cached
session snapshot, so a freshly uploaded avatar is visible immediately.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *Account: Hydrated profile
  - err: apperr.NotFound or database failures
*/
func (service *Service) GetProfile(context context.Context, username string) (*Account, error) {
	account, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	return account, nil
}

/*
UpdateAvatar uploads a new avatar image and persists its public URL.

Description: The object key is derived from the username, so re-uploading
replaces the previous avatar in storage.

Parameters:
  - context: context.Context
  - username: string
  - body: io.Reader (image bytes)
  - contentType: string

Returns:
  - string: Public URL of the uploaded avatar
  - err: Upload or persistence failures
*/
func (service *Service) UpdateAvatar(context context.Context, username string, body io.Reader, contentType string) (string, error) {
	if service.avatarUploader == nil {
		return "", errAvatarStorageDisabled
	}

	avatarURL, err := service.avatarUploader.UploadAvatar(context, username, body, contentType)
	if err != nil {
		return "", fmt.Errorf("account_service_avatar_upload_failed: %w", err)
	}

	if err := service.accountRepository.UpdateAvatar(context, username, avatarURL); err != nil {
		return "", fmt.Errorf("account_service_avatar_persist_failed: %w", err)
	}

	return avatarURL, nil
}
