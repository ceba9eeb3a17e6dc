// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

package contacts

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rolodex-app/rolodex/internal/platform/dberr"
)

// PostgresRepository implements the ContactRepository interface using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the ContactRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const contactColumns = `id, user_id, first_name, last_name, email, phone, birthday, additional_info, created_at, updated_at`

// List returns a filtered, paginated page of the user's contacts plus the total count.
func (repository *PostgresRepository) List(context context.Context, userID string, f Filter, limit, offset int) ([]*Contact, int, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contacts.contact
		WHERE user_id = $1`
	countQuery := `SELECT count(*) FROM contacts.contact WHERE user_id = $1`

	args := []any{userID}
	countArgs := []any{userID}

	if f.Name != "" {
		searchTerm := "%" + f.Name + "%"
		clause := ` AND (first_name ILIKE $` + itos(len(args)+1) + ` OR last_name ILIKE $` + itos(len(args)+1) + `)`
		query += clause
		countQuery += clause
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	if f.Email != "" {
		searchTerm := "%" + f.Email + "%"
		clause := ` AND email ILIKE $` + itos(len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += ` ORDER BY last_name ASC, first_name ASC LIMIT $` + itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_contact_repo_count_failed: %w", dberr.Wrap(err))
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_contact_repo_list_failed: %w", dberr.Wrap(err))
	}
	defer rows.Close()

	var entries []*Contact
	for rows.Next() {
		contact := &Contact{}
		if err := scanContact(rows.Scan, contact); err != nil {
			return nil, 0, fmt.Errorf("postgres_contact_repo_scan_failed: %w", err)
		}
		entries = append(entries, contact)
	}

	return entries, total, nil
}

// FindByID returns the owned contact with the given ID.
func (repository *PostgresRepository) FindByID(context context.Context, userID, id string) (*Contact, error) {
	const query = `
		SELECT ` + contactColumns + `
		FROM contacts.contact
		WHERE id = $1 AND user_id = $2`

	contact := &Contact{}
	err := repository.db.QueryRow(context, query, id, userID).Scan(
		&contact.ID, &contact.UserID, &contact.FirstName, &contact.LastName,
		&contact.Email, &contact.Phone, &contact.Birthday, &contact.AdditionalInfo,
		&contact.CreatedAt, &contact.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err)
	}

	return contact, nil
}

// Create persists a new contact row.
func (repository *PostgresRepository) Create(context context.Context, contact *Contact) error {
	const query = `
		INSERT INTO contacts.contact (
			id, user_id, first_name, last_name, email, phone, birthday, additional_info, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := repository.db.QueryRow(context, query,
		contact.ID,
		contact.UserID,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Phone,
		contact.Birthday,
		contact.AdditionalInfo,
	).Scan(&contact.CreatedAt, &contact.UpdatedAt)

	if err != nil {
		return fmt.Errorf("postgres_contact_repo_create_failed: %w", dberr.Wrap(err))
	}

	return nil
}

// Update persists mutable fields of an owned contact.
func (repository *PostgresRepository) Update(context context.Context, contact *Contact) error {
	const query = `
		UPDATE contacts.contact
		SET first_name = $3, last_name = $4, email = $5, phone = $6,
		    birthday = $7, additional_info = $8, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`

	err := repository.db.QueryRow(context, query,
		contact.ID,
		contact.UserID,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Phone,
		contact.Birthday,
		contact.AdditionalInfo,
	).Scan(&contact.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err)
	}

	return nil
}

// Delete removes an owned contact row.
func (repository *PostgresRepository) Delete(context context.Context, userID, id string) error {
	const query = `DELETE FROM contacts.contact WHERE id = $1 AND user_id = $2`

	cmd, err := repository.db.Exec(context, query, id, userID)
	if err != nil {
		return fmt.Errorf("postgres_contact_repo_delete_failed: %w", dberr.Wrap(err))
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// ListBirthdaysBetween returns owned contacts whose birthday falls inside the
// calendar window, comparing month and day only.
//
// The CASE handles windows that wrap over the year boundary (late December
// into January).
func (repository *PostgresRepository) ListBirthdaysBetween(context context.Context, userID string, from, to time.Time) ([]*Contact, error) {
	const query = `
		SELECT ` + contactColumns + `
		FROM contacts.contact
		WHERE user_id = $1
		  AND birthday IS NOT NULL
		  AND (
			CASE WHEN to_char($2::date, 'MMDD') <= to_char($3::date, 'MMDD')
			THEN to_char(birthday, 'MMDD') BETWEEN to_char($2::date, 'MMDD') AND to_char($3::date, 'MMDD')
			ELSE to_char(birthday, 'MMDD') >= to_char($2::date, 'MMDD')
			  OR to_char(birthday, 'MMDD') <= to_char($3::date, 'MMDD')
			END
		  )
		ORDER BY to_char(birthday, 'MMDD') ASC`

	rows, err := repository.db.Query(context, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("postgres_contact_repo_birthdays_failed: %w", dberr.Wrap(err))
	}
	defer rows.Close()

	var entries []*Contact
	for rows.Next() {
		contact := &Contact{}
		if err := scanContact(rows.Scan, contact); err != nil {
			return nil, fmt.Errorf("postgres_contact_repo_birthdays_scan_failed: %w", err)
		}
		entries = append(entries, contact)
	}

	return entries, nil
}

// scanContact maps one full-column row into a Contact.
func scanContact(scan func(dest ...any) error, contact *Contact) error {
	return scan(
		&contact.ID, &contact.UserID, &contact.FirstName, &contact.LastName,
		&contact.Email, &contact.Phone, &contact.Birthday, &contact.AdditionalInfo,
		&contact.CreatedAt, &contact.UpdatedAt,
	)
}

func itos(i int) string {
	return strconv.Itoa(i)
}
