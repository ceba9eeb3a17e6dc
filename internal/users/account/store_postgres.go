// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rolodex-app/rolodex/internal/platform/dberr"
)

// # Account Repository

// PostgresAccountRepository implements the AccountRepository interface using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of the AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

/*
FindByUsername retrieves the profile view of an account.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *Account: Hydrated profile
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAccountRepository) FindByUsername(context context.Context, username string) (*Account, error) {
	const query = `
		SELECT id, username, role, confirmed, COALESCE(avatar_url, ''), created_at
		FROM users.account
		WHERE username = $1`

	account := &Account{}
	err := repository.pool.QueryRow(context, query, username).Scan(
		&account.ID,
		&account.Username,
		&account.Role,
		&account.Confirmed,
		&account.AvatarURL,
		&account.CreatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err)
	}

	return account, nil
}

/*
UpdateAvatar persists a new avatar URL on the account.

Parameters:
  - context: context.Context
  - username: string
  - avatarURL: string

Returns:
  - error: apperr.NotFound if no row matched, or database errors
*/
func (repository *PostgresAccountRepository) UpdateAvatar(context context.Context, username, avatarURL string) error {
	const query = `
		UPDATE users.account
		SET avatar_url = $2, updated_at = NOW()
		WHERE username = $1`

	tag, err := repository.pool.Exec(context, query, username, avatarURL)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_avatar_failed: %w", dberr.Wrap(err))
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}
